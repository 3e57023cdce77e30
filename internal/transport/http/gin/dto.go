package httpgin

import (
	"github.com/kioskgym/kioskgym/internal/domain"
	"github.com/kioskgym/kioskgym/internal/flow"
)

type CreateSessionRequest struct {
	Storefront string `json:"storefront" binding:"required"`
	Practice   bool   `json:"practice"`
}

type SelectMovieRequest struct {
	MovieID string `json:"movie_id" binding:"required"`
}

type SelectTimeRequest struct {
	Time string `json:"time" binding:"required"`
}

type SelectTheaterRequest struct {
	TheaterID string `json:"theater_id" binding:"required"`
}

type ChangeHeadcountRequest struct {
	Category string `json:"category" binding:"required"`
	Delta    int    `json:"delta" binding:"required"`
}

type ToggleSeatRequest struct {
	Slot string `json:"slot" binding:"required"`
}

type ChoosePaymentRequest struct {
	Channel string `json:"channel" binding:"required"`
}

type SelectCategoryRequest struct {
	Category string `json:"category" binding:"required"`
}

type AddLineRequest struct {
	ItemID    string   `json:"item_id" binding:"required"`
	Quantity  int      `json:"quantity" binding:"required,gt=0"`
	Modifiers []string `json:"modifiers"`
}

type ChangeLineRequest struct {
	Key   string `json:"key" binding:"required"`
	Delta int    `json:"delta" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// MutationResponse is the uniform reply to every session mutation.
// Changed=false means a guard refused the transition; the session view
// shows where the trainee actually is.
type MutationResponse struct {
	Changed bool        `json:"changed"`
	Session SessionView `json:"session"`
}

type LineView struct {
	Key       string   `json:"key"`
	ItemID    string   `json:"item_id"`
	Name      string   `json:"name"`
	Quantity  int      `json:"quantity"`
	Modifiers []string `json:"modifiers,omitempty"`
	Option    string   `json:"option,omitempty"`
	UnitPrice int      `json:"unit_price"`
	LineTotal int      `json:"line_total"`
}

type SessionView struct {
	ID           string `json:"id"`
	Storefront   string `json:"storefront"`
	Practice     bool   `json:"practice"`
	Stage        string `json:"stage"`
	BookingStep  string `json:"booking_step,omitempty"`
	PaymentStep  string `json:"payment_step,omitempty"`
	PracticeStep int    `json:"practice_step"`
	MissionText  string `json:"mission_text,omitempty"`
	Category     string `json:"category,omitempty"`

	Lines         []LineView `json:"lines"`
	TotalPrice    int        `json:"total_price"`
	TotalQuantity int        `json:"total_quantity"`

	MovieID   string `json:"movie_id,omitempty"`
	Time      string `json:"time,omitempty"`
	TheaterID string `json:"theater_id,omitempty"`
	Adult     int    `json:"adult"`
	Child     int    `json:"child"`
	Senior    int    `json:"senior"`

	TicketPrice   int      `json:"ticket_price"`
	OccupiedSeats []string `json:"occupied_seats,omitempty"`
	SelectedSeats []string `json:"selected_seats"`
	Payment       string   `json:"payment,omitempty"`

	Outcome    string `json:"outcome,omitempty"`
	ResultText string `json:"result_text,omitempty"`
}

func toSessionView(snap flow.Snapshot) SessionView {
	lines := make([]LineView, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, LineView{
			Key:       l.Key(),
			ItemID:    l.Item.ID,
			Name:      l.Item.Name,
			Quantity:  l.Quantity,
			Modifiers: l.Modifiers,
			Option:    l.OptionString(),
			UnitPrice: l.UnitPrice(),
			LineTotal: l.UnitPrice() * l.Quantity,
		})
	}

	return SessionView{
		ID:            snap.ID,
		Storefront:    string(snap.Storefront),
		Practice:      snap.Practice,
		Stage:         string(snap.Stage),
		BookingStep:   string(snap.BookingStep),
		PaymentStep:   string(snap.PaymentStep),
		PracticeStep:  snap.PracticeStep,
		MissionText:   snap.MissionText,
		Category:      snap.Category,
		Lines:         lines,
		TotalPrice:    snap.TotalPrice,
		TotalQuantity: snap.TotalQuantity,
		MovieID:       snap.MovieID,
		Time:          snap.Time,
		TheaterID:     snap.TheaterID,
		Adult:         snap.Adult,
		Child:         snap.Child,
		Senior:        snap.Senior,
		TicketPrice:   snap.TicketPrice,
		OccupiedSeats: snap.OccupiedSeats,
		SelectedSeats: snap.SelectedSeats,
		Payment:       string(snap.Payment),
		Outcome:       snap.Outcome,
		ResultText:    snap.ResultText,
	}
}

type ModifierView struct {
	Name       string `json:"name"`
	PriceDelta int    `json:"price_delta"`
}

type ModifierGroupView struct {
	Name      string         `json:"name"`
	Modifiers []ModifierView `json:"modifiers"`
}

type ItemView struct {
	ID       string              `json:"id"`
	Name     string              `json:"name"`
	Category string              `json:"category"`
	Price    int                 `json:"price"`
	Groups   []ModifierGroupView `json:"groups,omitempty"`
}

type MovieView struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	RunningTimeMin int      `json:"running_time_min"`
	ShowTimes      []string `json:"show_times"`
}

type TheaterView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Format         string `json:"format"`
	Rows           int    `json:"rows"`
	Cols           int    `json:"cols"`
	TotalSeats     int    `json:"total_seats"`
	RemainingSeats int    `json:"remaining_seats"`
}

func toItemView(it domain.Item) ItemView {
	groups := make([]ModifierGroupView, 0, len(it.Groups))
	for _, g := range it.Groups {
		mods := make([]ModifierView, 0, len(g.Modifiers))
		for _, m := range g.Modifiers {
			mods = append(mods, ModifierView{Name: m.Name, PriceDelta: m.PriceDelta})
		}
		groups = append(groups, ModifierGroupView{Name: g.Name, Modifiers: mods})
	}

	return ItemView{
		ID:       it.ID,
		Name:     it.Name,
		Category: it.Category,
		Price:    it.Price,
		Groups:   groups,
	}
}

func toMovieView(m domain.Movie) MovieView {
	return MovieView{
		ID:             m.ID,
		Title:          m.Title,
		RunningTimeMin: m.RunningTimeMin,
		ShowTimes:      m.ShowTimes,
	}
}

func toTheaterView(t domain.Theater) TheaterView {
	return TheaterView{
		ID:             t.ID,
		Name:           t.Name,
		Format:         string(t.Format),
		Rows:           t.Rows,
		Cols:           t.Cols,
		TotalSeats:     t.TotalSeats,
		RemainingSeats: t.RemainingSeats,
	}
}
