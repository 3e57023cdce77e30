// Package flow runs one trainee's guided kiosk session: the staged
// booking wizard for the cinema storefront and the menu+cart flow for
// the others. Forward transitions are guarded; a refused transition is
// not an error, the stage simply does not change and the caller is told
// so. Backward transitions are always available and keep
// already-entered data, except that re-picking a hall invalidates
// chosen seats.
package flow

import (
	"sort"
	"sync"
	"time"

	"github.com/kioskgym/kioskgym/internal/cart"
	"github.com/kioskgym/kioskgym/internal/catalog"
	"github.com/kioskgym/kioskgym/internal/domain"
	"github.com/kioskgym/kioskgym/internal/mission"
	"github.com/kioskgym/kioskgym/internal/pricing"
	"github.com/kioskgym/kioskgym/internal/seating"
)

// Stage is the top-level node of the flow state machine.
type Stage string

const (
	StageHome    Stage = "HOME"
	StageBooking Stage = "BOOKING"
	StageSeat    Stage = "SEAT"
	StagePayment Stage = "PAYMENT"
	StageSnack   Stage = "SNACK"
	StagePrint   Stage = "PRINT"

	// Cart-flow storefronts use a two-node machine.
	StageMenu   Stage = "MENU"
	StageResult Stage = "RESULT"
)

// BookingStep is the sub-step inside StageBooking.
type BookingStep string

const (
	StepMovie         BookingStep = "MOVIE"
	StepTime          BookingStep = "TIME"
	StepTheaterPeople BookingStep = "THEATER_PEOPLE"
)

// PaymentStep is the sub-step inside StagePayment. CARD_INSERT, QR_SCAN
// and PROCESSING auto-advance on fixed delays.
type PaymentStep string

const (
	StepMethodSelect PaymentStep = "METHOD_SELECT"
	StepCardInsert   PaymentStep = "CARD_INSERT"
	StepQRScan       PaymentStep = "QR_SCAN"
	StepProcessing   PaymentStep = "PROCESSING"
	StepSuccess      PaymentStep = "SUCCESS"
)

// Outcome of a finished attempt.
const (
	OutcomeSuccess  = "success"
	OutcomeFail     = "fail"
	OutcomeComplete = "complete" // practice mode always completes
)

// Recorder receives the immutable result record of every scoring call.
// Implementations must not block the flow; failures stay on their side.
type Recorder interface {
	Record(rec domain.HistoryRecord)
}

// EventSink receives flow events for external presentation consumers.
type EventSink interface {
	StageChanged(sessionID string, stage Stage, step string)
	Scored(sessionID string, rec domain.HistoryRecord)
}

// Config carries the payment auto-transition delays.
type Config struct {
	InsertDelay  time.Duration // CARD_INSERT / QR_SCAN -> PROCESSING
	ProcessDelay time.Duration // PROCESSING -> SUCCESS
}

func (c Config) withDefaults() Config {
	if c.InsertDelay <= 0 {
		c.InsertDelay = 2 * time.Second
	}
	if c.ProcessDelay <= 0 {
		c.ProcessDelay = 3 * time.Second
	}
	return c
}

// Deps are the constructor-injected collaborators of a session.
type Deps struct {
	Catalog   *catalog.Catalog
	Generator *mission.Generator
	Inventory *seating.Inventory
	Recorder  Recorder  // optional
	Sink      EventSink // optional
	Now       func() time.Time
}

// Session is one flow instance serving exactly one trainee. The mutex
// only guards against the payment timer goroutines; there is no
// concurrent multi-user mutation.
type Session struct {
	id         string
	storefront domain.StorefrontType
	practice   bool
	deps       Deps
	cfg        Config

	mu  sync.Mutex
	gen int // bumped on reset/exit to invalidate pending timers

	stage       Stage
	bookingStep BookingStep
	paymentStep PaymentStep

	cartMission    *domain.CartMission
	bookingMission *domain.BookingMission

	order *cart.Order

	selectedMovie        string
	selectedTime         string
	selectedTheater      string
	adult, child, senior int
	selectedSeats        map[string]struct{}
	payment              domain.PaymentChannel

	category     string
	practiceStep int
	scored       bool
	outcome      string
	resultText   string
}

// NewSession draws a mission (unless practicing) and places the trainee
// on the flow's entry stage.
func NewSession(id string, storefront domain.StorefrontType, practice bool, deps Deps, cfg Config) (*Session, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	s := &Session{
		id:         id,
		storefront: storefront,
		practice:   practice,
		deps:       deps,
		cfg:        cfg.withDefaults(),
	}
	if err := s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) ID() string                        { return s.id }
func (s *Session) Storefront() domain.StorefrontType { return s.storefront }
func (s *Session) Practice() bool                    { return s.practice }

// reset clears every selection, empties the cart, re-randomizes seat
// occupancy and draws a fresh mission. Caller holds the lock except at
// construction.
func (s *Session) reset() error {
	s.gen++
	s.order = cart.NewOrder()
	s.selectedMovie = ""
	s.selectedTime = ""
	s.selectedTheater = ""
	s.adult, s.child, s.senior = 0, 0, 0
	s.selectedSeats = make(map[string]struct{})
	s.payment = ""
	s.category = ""
	s.practiceStep = 0
	s.scored = false
	s.outcome = ""
	s.resultText = ""
	s.bookingStep = StepMovie
	s.paymentStep = StepMethodSelect
	s.deps.Inventory.Reset()

	if s.storefront.UsesBookingFlow() {
		s.stage = StageHome
	} else {
		s.stage = StageMenu
	}

	s.cartMission = nil
	s.bookingMission = nil
	if s.practice {
		return nil
	}

	if s.storefront.UsesBookingFlow() {
		m, err := s.deps.Generator.DrawBooking()
		if err != nil {
			return err
		}
		s.bookingMission = &m
	} else {
		m, err := s.deps.Generator.DrawCart(s.storefront)
		if err != nil {
			return err
		}
		s.cartMission = &m
	}
	return nil
}

// Restart returns to the entry stage with a clean slate and a newly
// drawn mission. Always available.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reset(); err != nil {
		return err
	}
	s.emitStage()
	return nil
}

// Exit invalidates any pending timers. The owner drops the session
// afterwards.
func (s *Session) Exit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
}

// MissionText is the active mission's display text, empty in practice
// mode.
func (s *Session) MissionText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.missionTextLocked()
}

func (s *Session) missionTextLocked() string {
	switch {
	case s.cartMission != nil:
		return s.cartMission.Text
	case s.bookingMission != nil:
		return s.bookingMission.Text
	}
	return ""
}

func (s *Session) totalHeadcount() int {
	return s.adult + s.child + s.senior
}

func (s *Session) emitStage() {
	if s.deps.Sink == nil {
		return
	}
	step := ""
	switch s.stage {
	case StageBooking:
		step = string(s.bookingStep)
	case StagePayment:
		step = string(s.paymentStep)
	}
	s.deps.Sink.StageChanged(s.id, s.stage, step)
}

func (s *Session) bumpPractice() {
	if s.practice {
		s.practiceStep++
	}
}

// Snapshot is the read-only view handed to the presentation layer.
type Snapshot struct {
	ID           string
	Storefront   domain.StorefrontType
	Practice     bool
	Stage        Stage
	BookingStep  BookingStep
	PaymentStep  PaymentStep
	PracticeStep int
	MissionText  string
	Category     string

	Lines         []cart.Line
	TotalPrice    int
	TotalQuantity int

	MovieID   string
	Time      string
	TheaterID string
	Adult     int
	Child     int
	Senior    int

	TicketPrice   int
	OccupiedSeats []string
	SelectedSeats []string
	Payment       domain.PaymentChannel

	Outcome    string
	ResultText string
}

// Snapshot derives the current state. The occupied set is only exposed
// once a hall is selected; ticket price is re-derived on every call so
// it can never lag a hall or headcount edit.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:            s.id,
		Storefront:    s.storefront,
		Practice:      s.practice,
		Stage:         s.stage,
		BookingStep:   s.bookingStep,
		PaymentStep:   s.paymentStep,
		PracticeStep:  s.practiceStep,
		MissionText:   s.missionTextLocked(),
		Category:      s.category,
		Lines:         s.order.Lines(),
		TotalPrice:    s.order.TotalPrice(),
		TotalQuantity: s.order.TotalQuantity(),
		MovieID:       s.selectedMovie,
		Time:          s.selectedTime,
		TheaterID:     s.selectedTheater,
		Adult:         s.adult,
		Child:         s.child,
		Senior:        s.senior,
		SelectedSeats: sortedSlots(s.selectedSeats),
		Payment:       s.payment,
		Outcome:       s.outcome,
		ResultText:    s.resultText,
	}

	if t, ok := s.deps.Catalog.TheaterByID(s.selectedTheater); ok {
		snap.TicketPrice = pricing.TicketPrice(t, s.adult, s.child, s.senior)
		snap.OccupiedSeats = sortedSlots(s.deps.Inventory.Occupied(t))
	}

	return snap
}

func sortedSlots(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for slot := range set {
		out = append(out, slot)
	}
	sort.Strings(out)
	return out
}

// after schedules a timer bound to the current generation; a reset or
// exit in the meantime turns the callback into a no-op. The timers are
// fire-and-forget on purpose: once PROCESSING is entered the advance to
// SUCCESS always happens.
func (s *Session) after(d time.Duration, fn func()) {
	gen := s.gen
	time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen != gen {
			return
		}
		fn()
	})
}
