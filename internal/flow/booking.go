package flow

import (
	"github.com/kioskgym/kioskgym/internal/domain"
	"github.com/kioskgym/kioskgym/internal/mission"
)

// StartBooking enters the booking wizard from HOME.
func (s *Session) StartBooking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageHome {
		return false
	}
	s.stage = StageBooking
	s.bookingStep = StepMovie
	s.bumpPractice()
	s.emitStage()
	return true
}

// StartSnack enters the snack-stand branch from HOME. It bypasses
// booking and payment entirely.
func (s *Session) StartSnack() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageHome {
		return false
	}
	s.stage = StageSnack
	s.emitStage()
	return true
}

// StartPrint enters the ticket-print branch from HOME.
func (s *Session) StartPrint() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageHome {
		return false
	}
	s.stage = StagePrint
	s.emitStage()
	return true
}

// SelectMovie picks a movie and advances MOVIE -> TIME. Picking a
// different movie invalidates the chosen show time, since times are
// per-movie; the hall and headcounts survive.
func (s *Session) SelectMovie(movieID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageBooking {
		return false, nil
	}
	if _, ok := s.deps.Catalog.MovieByID(movieID); !ok {
		return false, ErrUnknownMovie
	}
	if movieID != s.selectedMovie {
		s.selectedTime = ""
	}
	s.selectedMovie = movieID
	s.bookingStep = StepTime
	s.bumpPractice()
	s.emitStage()
	return true, nil
}

// SelectTime picks a show time and advances TIME -> THEATER_PEOPLE.
// Guard: a movie must already be selected and must offer the time.
func (s *Session) SelectTime(showTime string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageBooking || s.selectedMovie == "" {
		return false, nil
	}
	movie, ok := s.deps.Catalog.MovieByID(s.selectedMovie)
	if !ok {
		return false, ErrUnknownMovie
	}
	if !movie.HasShowTime(showTime) {
		return false, ErrUnknownTime
	}
	s.selectedTime = showTime
	s.bookingStep = StepTheaterPeople
	s.bumpPractice()
	s.emitStage()
	return true, nil
}

// SelectTheater picks a hall. Switching halls invalidates any chosen
// seats, because the seat layout is hall-specific; the occupancy draw
// for the new hall happens lazily on the next read.
func (s *Session) SelectTheater(theaterID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageBooking || s.bookingStep != StepTheaterPeople {
		return false, nil
	}
	if _, ok := s.deps.Catalog.TheaterByID(theaterID); !ok {
		return false, ErrUnknownTheater
	}
	if theaterID != s.selectedTheater {
		s.selectedSeats = make(map[string]struct{})
	}
	s.selectedTheater = theaterID
	s.emitStage()
	return true, nil
}

// ChangeHeadcount adjusts one category by delta, clamped at zero and at
// the catalog's per-booking maximum.
func (s *Session) ChangeHeadcount(category domain.PersonCategory, delta int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageBooking || s.bookingStep != StepTheaterPeople {
		return false, nil
	}
	if !category.Valid() {
		return false, ErrUnknownCategory
	}

	var target *int
	switch category {
	case domain.CategoryAdult:
		target = &s.adult
	case domain.CategoryChild:
		target = &s.child
	case domain.CategorySenior:
		target = &s.senior
	}

	next := *target + delta
	if next < 0 {
		return false, nil
	}
	if s.totalHeadcount()+delta > s.deps.Catalog.MaxHeadcount() {
		return false, nil
	}
	*target = next
	return true, nil
}

// ProceedToSeats advances THEATER_PEOPLE -> SEAT. Guard: a hall is
// chosen and at least one person is booked.
func (s *Session) ProceedToSeats() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageBooking || s.bookingStep != StepTheaterPeople {
		return false
	}
	if s.selectedTheater == "" || s.totalHeadcount() == 0 {
		return false
	}
	s.stage = StageSeat
	s.bumpPractice()
	s.emitStage()
	return true
}

// ToggleSeat flips one seat of the selected hall. Occupied seats are
// refused with seating.ErrSlotOccupied; selecting more seats than
// people is a silent no-op.
func (s *Session) ToggleSeat(slot string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageSeat {
		return false, nil
	}
	theater, ok := s.deps.Catalog.TheaterByID(s.selectedTheater)
	if !ok {
		return false, ErrUnknownTheater
	}
	return s.deps.Inventory.Toggle(theater, slot, s.selectedSeats, s.totalHeadcount())
}

// ConfirmSeats advances SEAT -> PAYMENT. Guard: exactly one seat per
// booked person.
func (s *Session) ConfirmSeats() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StageSeat {
		return false
	}
	if len(s.selectedSeats) != s.totalHeadcount() || s.totalHeadcount() == 0 {
		return false
	}
	s.stage = StagePayment
	s.paymentStep = StepMethodSelect
	s.bumpPractice()
	s.emitStage()
	return true
}

// ChoosePayment picks the channel and starts the timed payment
// sequence: METHOD_SELECT -> CARD_INSERT|QR_SCAN -> PROCESSING ->
// SUCCESS. The delays are fire-and-forget; once PROCESSING is entered
// the advance to SUCCESS is guaranteed.
func (s *Session) ChoosePayment(channel domain.PaymentChannel) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stage != StagePayment || s.paymentStep != StepMethodSelect {
		return false, nil
	}
	if !channel.Valid() {
		return false, ErrInvalidChannel
	}

	s.payment = channel
	if channel == domain.PaymentCard {
		s.paymentStep = StepCardInsert
	} else {
		s.paymentStep = StepQRScan
	}
	s.bumpPractice()
	s.emitStage()

	insertStep := s.paymentStep
	s.after(s.cfg.InsertDelay, func() {
		if s.stage != StagePayment || s.paymentStep != insertStep {
			return
		}
		s.enterProcessing()
	})
	return true, nil
}

// enterProcessing performs scoring exactly once and schedules the final
// auto-advance. Caller holds the lock.
func (s *Session) enterProcessing() {
	s.paymentStep = StepProcessing
	s.emitStage()
	s.scoreBooking()

	s.after(s.cfg.ProcessDelay, func() {
		if s.stage != StagePayment || s.paymentStep != StepProcessing {
			return
		}
		s.paymentStep = StepSuccess
		if s.practice {
			s.outcome = OutcomeComplete
		} else if s.resultText == mission.BookingResultText(true) {
			s.outcome = OutcomeSuccess
		} else {
			s.outcome = OutcomeFail
		}
		s.emitStage()
	})
}

// scoreBooking compares the assembled booking against the mission,
// builds the immutable result record and hands it to the persistence
// collaborator. Caller holds the lock. In practice mode scoring is
// bypassed entirely.
func (s *Session) scoreBooking() {
	if s.scored || s.practice || s.bookingMission == nil {
		return
	}
	s.scored = true

	sub := mission.BookingSubmission{
		MovieID:   s.selectedMovie,
		Time:      s.selectedTime,
		TheaterID: s.selectedTheater,
		Adult:     s.adult,
		Child:     s.child,
		Senior:    s.senior,
		Payment:   s.payment,
	}
	success := mission.ScoreBooking(*s.bookingMission, sub)
	s.resultText = mission.BookingResultText(success)

	rec := mission.NewRecord(
		s.bookingMission.Text,
		success,
		[]domain.RequiredItem{},
		s.resultText,
		s.deps.Now(),
	)
	if s.deps.Recorder != nil {
		s.deps.Recorder.Record(rec)
	}
	if s.deps.Sink != nil {
		s.deps.Sink.Scored(s.id, rec)
	}
}

// Back is the unguarded backward transition. It never discards
// already-entered data; the trainee can re-pick a show time without
// losing headcounts. During the timed payment steps there is nothing to
// go back to and the call is refused.
func (s *Session) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.stage {
	case StageBooking:
		switch s.bookingStep {
		case StepTheaterPeople:
			s.bookingStep = StepTime
		case StepTime:
			s.bookingStep = StepMovie
		default:
			s.stage = StageHome
		}
	case StageSeat:
		s.stage = StageBooking
		s.bookingStep = StepTheaterPeople
	case StagePayment:
		if s.paymentStep != StepMethodSelect {
			return false
		}
		s.stage = StageSeat
	case StageSnack, StagePrint:
		s.stage = StageHome
	default:
		return false
	}
	s.emitStage()
	return true
}

// Home jumps back to the entry stage without resetting selections; a
// full reset only happens on Restart.
func (s *Session) Home() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.storefront.UsesBookingFlow() || s.stage == StageHome {
		return false
	}
	if s.stage == StagePayment && s.paymentStep != StepMethodSelect && s.paymentStep != StepSuccess {
		// mid-payment auto-transition; presentation disables this anyway
		return false
	}
	s.stage = StageHome
	s.emitStage()
	return true
}
