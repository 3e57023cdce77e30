package flow

import (
	"github.com/kioskgym/kioskgym/internal/mission"
)

// cartStage reports whether the session currently accepts cart
// mutations: the menu stage of the cart storefronts, or the cinema's
// snack branch.
func (s *Session) cartStage() bool {
	return s.stage == StageMenu || s.stage == StageSnack
}

// StartPractice advances the guidance counter off its initial step.
// Practice mode only; the counter exists purely to pick instructional
// text.
func (s *Session) StartPractice() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.practice || s.practiceStep != 0 {
		return false
	}
	s.practiceStep = 1
	return true
}

// SelectCategory records the menu category the trainee is browsing.
func (s *Session) SelectCategory(category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cartStage() {
		return false
	}
	s.category = category
	if s.practice && s.practiceStep == 1 {
		s.practiceStep = 2
	}
	return true
}

// AddCartLine puts quantity units of an item with the selected
// modifiers into the cart, merging into an existing line when the item
// and modifier set already match one.
func (s *Session) AddCartLine(itemID string, quantity int, modifiers []string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cartStage() {
		return false, nil
	}
	if quantity < 1 {
		return false, ErrInvalidQuantity
	}
	item, ok := s.deps.Catalog.ItemByID(s.storefront, itemID)
	if !ok {
		return false, ErrUnknownItem
	}
	for _, name := range modifiers {
		if _, ok := item.Modifier(name); !ok {
			return false, ErrUnknownModifier
		}
	}
	s.order.AddLine(item, quantity, modifiers)
	if s.practice && s.practiceStep == 2 {
		s.practiceStep = 3
	}
	return true, nil
}

// ChangeCartLine adjusts an addressed line by delta; a result of zero
// or less removes the line.
func (s *Session) ChangeCartLine(key string, delta int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cartStage() {
		return false, nil
	}
	if !s.order.ChangeQuantity(key, delta) {
		return false, ErrUnknownLine
	}
	return true, nil
}

// ClearCart empties the cart.
func (s *Session) ClearCart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cartStage() {
		return false
	}
	s.order.Clear()
	return true
}

// Checkout finishes a cart-flow attempt: the cart is scored against the
// mission, the result record is handed off, and the session lands on
// RESULT. Practice mode skips scoring and always completes.
func (s *Session) Checkout() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageMenu || s.order.Empty() {
		return false
	}

	if s.practice || s.cartMission == nil {
		s.outcome = OutcomeComplete
		if s.practice && s.practiceStep == 3 {
			s.practiceStep = 4
		}
	} else {
		s.scoreCart()
	}

	s.stage = StageResult
	s.emitStage()
	return true
}

// FinishSnack completes a snack-stand order and returns to HOME. The
// snack branch is orthogonal to the mission, so nothing is scored.
func (s *Session) FinishSnack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageSnack {
		return false
	}
	s.order.Clear()
	s.stage = StageHome
	s.emitStage()
	return true
}

// scoreCart runs cart-mission scoring exactly once, building the
// immutable record with the submitted cart snapshot. Caller holds the
// lock.
func (s *Session) scoreCart() {
	if s.scored {
		return
	}
	s.scored = true

	success := mission.ScoreCart(*s.cartMission, s.order)
	if success {
		s.outcome = OutcomeSuccess
	} else {
		s.outcome = OutcomeFail
	}

	rec := mission.NewRecord(
		s.cartMission.Text,
		success,
		s.order.Snapshot(),
		"",
		s.deps.Now(),
	)
	if s.deps.Recorder != nil {
		s.deps.Recorder.Record(rec)
	}
	if s.deps.Sink != nil {
		s.deps.Sink.Scored(s.id, rec)
	}
}
