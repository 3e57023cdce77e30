package flow

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kioskgym/kioskgym/internal/catalog"
	"github.com/kioskgym/kioskgym/internal/domain"
	"github.com/kioskgym/kioskgym/internal/mission"
	"github.com/kioskgym/kioskgym/internal/seating"
)

var fastCfg = Config{
	InsertDelay:  10 * time.Millisecond,
	ProcessDelay: 10 * time.Millisecond,
}

type recorderStub struct {
	mu   sync.Mutex
	recs []domain.HistoryRecord
}

func (r *recorderStub) Record(rec domain.HistoryRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recs = append(r.recs, rec)
}

func (r *recorderStub) records() []domain.HistoryRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.HistoryRecord, len(r.recs))
	copy(out, r.recs)
	return out
}

// newCinemaSession builds a mission session with deterministic
// randomness. A second generator with the same seed predicts the drawn
// mission.
func newCinemaSession(t *testing.T, seed int64, rec Recorder, cfg Config) (*Session, *catalog.Catalog, domain.BookingMission) {
	t.Helper()

	cat, err := catalog.New()
	require.NoError(t, err)

	expected, err := mission.NewGenerator(cat, seed).DrawBooking()
	require.NoError(t, err)

	s, err := NewSession("sess-test", domain.StorefrontCinema, false, Deps{
		Catalog:   cat,
		Generator: mission.NewGenerator(cat, seed),
		Inventory: seating.NewInventory(seed),
		Recorder:  rec,
		Now:       time.Now,
	}, cfg)
	require.NoError(t, err)
	require.Equal(t, expected.Text, s.MissionText())

	return s, cat, expected
}

// driveToSeatStage walks the wizard to the seat picker following the
// mission's targets.
func driveToSeatStage(t *testing.T, s *Session, m domain.BookingMission) {
	t.Helper()

	require.True(t, s.StartBooking())

	changed, err := s.SelectMovie(m.MovieID)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.SelectTime(m.Time)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.SelectTheater(m.TheaterID)
	require.NoError(t, err)
	require.True(t, changed)

	for cat, n := range map[domain.PersonCategory]int{
		domain.CategoryAdult:  m.Adult,
		domain.CategoryChild:  m.Child,
		domain.CategorySenior: m.Senior,
	} {
		for i := 0; i < n; i++ {
			changed, err := s.ChangeHeadcount(cat, 1)
			require.NoError(t, err)
			require.True(t, changed)
		}
	}

	require.True(t, s.ProceedToSeats())
}

// selectFreeSeats toggles the first n unoccupied seats of the selected
// hall.
func selectFreeSeats(t *testing.T, s *Session, cat *catalog.Catalog, n int) {
	t.Helper()

	snap := s.Snapshot()
	theater, ok := cat.TheaterByID(snap.TheaterID)
	require.True(t, ok)

	occupied := make(map[string]struct{}, len(snap.OccupiedSeats))
	for _, slot := range snap.OccupiedSeats {
		occupied[slot] = struct{}{}
	}

	picked := 0
	for _, slot := range seating.Grid(theater) {
		if picked == n {
			break
		}
		if _, busy := occupied[slot]; busy {
			continue
		}
		changed, err := s.ToggleSeat(slot)
		require.NoError(t, err)
		require.True(t, changed)
		picked++
	}
	require.Equal(t, n, picked)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestBookingHappyPath(t *testing.T) {
	rec := &recorderStub{}
	s, cat, m := newCinemaSession(t, 42, rec, fastCfg)

	driveToSeatStage(t, s, m)
	selectFreeSeats(t, s, cat, m.Adult+m.Child+m.Senior)
	require.True(t, s.ConfirmSeats())

	changed, err := s.ChoosePayment(m.Payment)
	require.NoError(t, err)
	require.True(t, changed)

	waitFor(t, 2*time.Second, func() bool {
		return s.Snapshot().PaymentStep == StepSuccess
	})

	snap := s.Snapshot()
	assert.Equal(t, OutcomeSuccess, snap.Outcome)
	assert.Equal(t, mission.BookingResultText(true), snap.ResultText)

	recs := rec.records()
	require.Len(t, recs, 1)
	assert.True(t, recs[0].Success)
	assert.Equal(t, m.Text, recs[0].MissionText)
	assert.Equal(t, mission.BookingResultText(true), recs[0].ResultText)
}

func TestBookingWrongChannelFails(t *testing.T) {
	rec := &recorderStub{}
	s, cat, m := newCinemaSession(t, 42, rec, fastCfg)

	driveToSeatStage(t, s, m)
	selectFreeSeats(t, s, cat, m.Adult+m.Child+m.Senior)
	require.True(t, s.ConfirmSeats())

	wrong := domain.PaymentCard
	if m.Payment == domain.PaymentCard {
		wrong = domain.PaymentQR
	}
	changed, err := s.ChoosePayment(wrong)
	require.NoError(t, err)
	require.True(t, changed)

	waitFor(t, 2*time.Second, func() bool {
		return s.Snapshot().PaymentStep == StepSuccess
	})

	snap := s.Snapshot()
	assert.Equal(t, OutcomeFail, snap.Outcome)
	assert.Equal(t, mission.BookingResultText(false), snap.ResultText)

	recs := rec.records()
	require.Len(t, recs, 1)
	assert.False(t, recs[0].Success)
}

func TestBookingCompletesWithoutRecorder(t *testing.T) {
	s, cat, m := newCinemaSession(t, 42, nil, fastCfg)

	driveToSeatStage(t, s, m)
	selectFreeSeats(t, s, cat, m.Adult+m.Child+m.Senior)
	require.True(t, s.ConfirmSeats())

	changed, err := s.ChoosePayment(m.Payment)
	require.NoError(t, err)
	require.True(t, changed)

	waitFor(t, 2*time.Second, func() bool {
		return s.Snapshot().PaymentStep == StepSuccess
	})
	assert.Equal(t, OutcomeSuccess, s.Snapshot().Outcome)
}

func TestStartBookingOnlyFromHome(t *testing.T) {
	s, _, _ := newCinemaSession(t, 1, nil, fastCfg)

	require.True(t, s.StartBooking())
	assert.False(t, s.StartBooking())
	assert.False(t, s.StartSnack())
	assert.False(t, s.StartPrint())
}

func TestSelectTimeRequiresMovie(t *testing.T) {
	s, _, _ := newCinemaSession(t, 1, nil, fastCfg)
	require.True(t, s.StartBooking())

	changed, err := s.SelectTime("10:30")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestSelectTimeUnknownForMovie(t *testing.T) {
	s, _, _ := newCinemaSession(t, 1, nil, fastCfg)
	require.True(t, s.StartBooking())

	changed, err := s.SelectMovie("m1")
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = s.SelectTime("23:59")
	assert.ErrorIs(t, err, ErrUnknownTime)
	assert.False(t, changed)
}

func TestMovieChangeClearsTime(t *testing.T) {
	s, _, _ := newCinemaSession(t, 1, nil, fastCfg)
	require.True(t, s.StartBooking())

	_, err := s.SelectMovie("m1")
	require.NoError(t, err)
	_, err = s.SelectTime("10:30")
	require.NoError(t, err)

	_, err = s.SelectMovie("m2")
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, "m2", snap.MovieID)
	assert.Empty(t, snap.Time)
	assert.Equal(t, StepTime, snap.BookingStep)
}

func TestTheaterChangeClearsSeats(t *testing.T) {
	s, cat, _ := newCinemaSession(t, 1, nil, fastCfg)
	m := domain.BookingMission{MovieID: "m1", Time: "10:30", TheaterID: "t1", Adult: 2}

	driveToSeatStage(t, s, m)
	selectFreeSeats(t, s, cat, 2)
	require.NotEmpty(t, s.Snapshot().SelectedSeats)

	require.True(t, s.Back())
	changed, err := s.SelectTheater("t2")
	require.NoError(t, err)
	require.True(t, changed)

	require.True(t, s.ProceedToSeats())
	assert.Empty(t, s.Snapshot().SelectedSeats)
}

func TestChangeHeadcountClamps(t *testing.T) {
	s, cat, _ := newCinemaSession(t, 1, nil, fastCfg)
	require.True(t, s.StartBooking())
	_, err := s.SelectMovie("m1")
	require.NoError(t, err)
	_, err = s.SelectTime("10:30")
	require.NoError(t, err)

	changed, err := s.ChangeHeadcount(domain.CategoryAdult, -1)
	require.NoError(t, err)
	assert.False(t, changed, "below zero refused")

	max := cat.MaxHeadcount()
	for i := 0; i < max; i++ {
		changed, err := s.ChangeHeadcount(domain.CategoryAdult, 1)
		require.NoError(t, err)
		require.True(t, changed)
	}

	changed, err = s.ChangeHeadcount(domain.CategoryChild, 1)
	require.NoError(t, err)
	assert.False(t, changed, "beyond per-booking maximum refused")
	assert.Equal(t, max, s.Snapshot().Adult)
}

func TestProceedToSeatsGuards(t *testing.T) {
	s, _, _ := newCinemaSession(t, 1, nil, fastCfg)
	require.True(t, s.StartBooking())
	_, err := s.SelectMovie("m1")
	require.NoError(t, err)
	_, err = s.SelectTime("10:30")
	require.NoError(t, err)

	assert.False(t, s.ProceedToSeats(), "no hall, no people")

	_, err = s.ChangeHeadcount(domain.CategoryAdult, 1)
	require.NoError(t, err)
	assert.False(t, s.ProceedToSeats(), "no hall")

	_, err = s.SelectTheater("t1")
	require.NoError(t, err)
	assert.True(t, s.ProceedToSeats())
}

func TestConfirmSeatsRequiresExactCount(t *testing.T) {
	s, cat, _ := newCinemaSession(t, 1, nil, fastCfg)
	m := domain.BookingMission{MovieID: "m1", Time: "10:30", TheaterID: "t1", Adult: 2}

	driveToSeatStage(t, s, m)
	selectFreeSeats(t, s, cat, 1)
	assert.False(t, s.ConfirmSeats(), "one seat short")

	selectFreeSeats(t, s, cat, 1)
	assert.True(t, s.ConfirmSeats())
}

func TestBackRetainsSelections(t *testing.T) {
	s, _, _ := newCinemaSession(t, 1, nil, fastCfg)
	m := domain.BookingMission{MovieID: "m1", Time: "10:30", TheaterID: "t1", Adult: 1}

	driveToSeatStage(t, s, m)

	require.True(t, s.Back())
	snap := s.Snapshot()
	assert.Equal(t, StageBooking, snap.Stage)
	assert.Equal(t, StepTheaterPeople, snap.BookingStep)
	assert.Equal(t, "t1", snap.TheaterID)
	assert.Equal(t, 1, snap.Adult)

	require.True(t, s.Back())
	require.True(t, s.Back())
	snap = s.Snapshot()
	assert.Equal(t, StepMovie, snap.BookingStep)
	assert.Equal(t, "m1", snap.MovieID)
	assert.Equal(t, "10:30", snap.Time)

	require.True(t, s.Back())
	assert.Equal(t, StageHome, s.Snapshot().Stage)
}

func TestHomeAndBackRefusedMidPayment(t *testing.T) {
	// long delays keep the session parked on CARD_INSERT
	s, cat, _ := newCinemaSession(t, 1, nil, Config{})
	m := domain.BookingMission{MovieID: "m1", Time: "10:30", TheaterID: "t1", Adult: 1}

	driveToSeatStage(t, s, m)
	selectFreeSeats(t, s, cat, 1)
	require.True(t, s.ConfirmSeats())

	changed, err := s.ChoosePayment(domain.PaymentCard)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, StepCardInsert, s.Snapshot().PaymentStep)

	assert.False(t, s.Back())
	assert.False(t, s.Home())
}

func TestRestartResets(t *testing.T) {
	s, _, _ := newCinemaSession(t, 1, nil, fastCfg)
	m := domain.BookingMission{MovieID: "m1", Time: "10:30", TheaterID: "t1", Adult: 2}

	driveToSeatStage(t, s, m)
	require.NoError(t, s.Restart())

	snap := s.Snapshot()
	assert.Equal(t, StageHome, snap.Stage)
	assert.Empty(t, snap.MovieID)
	assert.Empty(t, snap.Time)
	assert.Empty(t, snap.TheaterID)
	assert.Zero(t, snap.Adult+snap.Child+snap.Senior)
	assert.Empty(t, snap.SelectedSeats)
	assert.NotEmpty(t, snap.MissionText, "a fresh mission is drawn")
}

func TestRestartCancelsPaymentTimers(t *testing.T) {
	rec := &recorderStub{}
	s, cat, m := newCinemaSession(t, 42, rec, Config{InsertDelay: 30 * time.Millisecond, ProcessDelay: 30 * time.Millisecond})

	driveToSeatStage(t, s, m)
	selectFreeSeats(t, s, cat, m.Adult+m.Child+m.Senior)
	require.True(t, s.ConfirmSeats())

	changed, err := s.ChoosePayment(m.Payment)
	require.NoError(t, err)
	require.True(t, changed)

	require.NoError(t, s.Restart())
	time.Sleep(100 * time.Millisecond)

	snap := s.Snapshot()
	assert.Equal(t, StageHome, snap.Stage)
	assert.Empty(t, snap.Outcome)
	assert.Empty(t, rec.records(), "restart before PROCESSING skips scoring")
}

func TestTicketPriceInSnapshot(t *testing.T) {
	s, _, _ := newCinemaSession(t, 1, nil, fastCfg)
	m := domain.BookingMission{MovieID: "m1", Time: "10:30", TheaterID: "t3", Adult: 1, Child: 1}

	driveToSeatStage(t, s, m)

	snap := s.Snapshot()
	assert.Equal(t, 16000+14000, snap.TicketPrice, "IMAX adult plus discounted child")
	assert.Len(t, snap.OccupiedSeats, 84-33)
}

func TestPracticeBookingCompletes(t *testing.T) {
	cat, err := catalog.New()
	require.NoError(t, err)

	rec := &recorderStub{}
	s, err := NewSession("sess-practice", domain.StorefrontCinema, true, Deps{
		Catalog:   cat,
		Generator: mission.NewGenerator(cat, 1),
		Inventory: seating.NewInventory(1),
		Recorder:  rec,
		Now:       time.Now,
	}, fastCfg)
	require.NoError(t, err)
	assert.Empty(t, s.MissionText())

	m := domain.BookingMission{MovieID: "m1", Time: "10:30", TheaterID: "t1", Adult: 1}
	driveToSeatStage(t, s, m)
	selectFreeSeats(t, s, cat, 1)
	require.True(t, s.ConfirmSeats())

	changed, err := s.ChoosePayment(domain.PaymentCard)
	require.NoError(t, err)
	require.True(t, changed)

	waitFor(t, 2*time.Second, func() bool {
		return s.Snapshot().PaymentStep == StepSuccess
	})

	assert.Equal(t, OutcomeComplete, s.Snapshot().Outcome)
	assert.Empty(t, rec.records(), "practice attempts are never recorded")
}

func TestSnackBranch(t *testing.T) {
	rec := &recorderStub{}
	s, _, _ := newCinemaSession(t, 1, rec, fastCfg)

	require.True(t, s.StartSnack())
	changed, err := s.AddCartLine("sn1", 1, nil)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, 1, s.Snapshot().TotalQuantity)

	require.True(t, s.FinishSnack())

	snap := s.Snapshot()
	assert.Equal(t, StageHome, snap.Stage)
	assert.Zero(t, snap.TotalQuantity)
	assert.Empty(t, rec.records(), "snack orders are not scored")
}

func TestPrintBranch(t *testing.T) {
	s, _, _ := newCinemaSession(t, 1, nil, fastCfg)

	require.True(t, s.StartPrint())
	assert.Equal(t, StagePrint, s.Snapshot().Stage)
	require.True(t, s.Back())
	assert.Equal(t, StageHome, s.Snapshot().Stage)
}
