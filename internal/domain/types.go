package domain

// StorefrontType identifies which simulated kiosk a session runs.
type StorefrontType string

const (
	StorefrontBurger     StorefrontType = "burger"
	StorefrontCafe       StorefrontType = "cafe"
	StorefrontRestaurant StorefrontType = "restaurant"
	StorefrontCinema     StorefrontType = "cinema"
)

func (t StorefrontType) Valid() bool {
	switch t {
	case StorefrontBurger, StorefrontCafe, StorefrontRestaurant, StorefrontCinema:
		return true
	}
	return false
}

// UsesBookingFlow reports whether the storefront runs the staged
// booking wizard instead of the plain menu+cart flow.
func (t StorefrontType) UsesBookingFlow() bool {
	return t == StorefrontCinema
}

// PersonCategory is a ticket headcount category.
type PersonCategory string

const (
	CategoryAdult  PersonCategory = "adult"
	CategoryChild  PersonCategory = "child"
	CategorySenior PersonCategory = "senior"
)

func (c PersonCategory) Valid() bool {
	switch c {
	case CategoryAdult, CategoryChild, CategorySenior:
		return true
	}
	return false
}

// PaymentChannel is the closed set of simulated payment methods.
type PaymentChannel string

const (
	PaymentCard PaymentChannel = "CARD"
	PaymentQR   PaymentChannel = "QR"
)

func (p PaymentChannel) Valid() bool {
	return p == PaymentCard || p == PaymentQR
}

// Modifier is one selectable option on a menu item, with a price delta
// added on top of the item's base price.
type Modifier struct {
	Name       string
	PriceDelta int
}

// ModifierGroup is a named set of modifiers an item offers. A cart line
// may carry zero or many modifiers across an item's groups.
type ModifierGroup struct {
	Name      string
	Modifiers []Modifier
}

// Item is immutable reference data for one sellable menu entry.
type Item struct {
	ID       string
	Name     string
	Category string
	Price    int
	Groups   []ModifierGroup
}

// Modifier returns the named modifier across all groups of the item.
func (i Item) Modifier(name string) (Modifier, bool) {
	for _, g := range i.Groups {
		for _, m := range g.Modifiers {
			if m.Name == name {
				return m, true
			}
		}
	}
	return Modifier{}, false
}

// Movie is a bookable title with its daily show times.
type Movie struct {
	ID             string
	Title          string
	RunningTimeMin int
	ShowTimes      []string
}

func (m Movie) HasShowTime(t string) bool {
	for _, st := range m.ShowTimes {
		if st == t {
			return true
		}
	}
	return false
}

// TheaterFormat distinguishes standard halls from premium ones, which
// carry a higher ticket price.
type TheaterFormat string

const (
	Format2D   TheaterFormat = "2D"
	Format4DX  TheaterFormat = "4DX"
	FormatIMAX TheaterFormat = "IMAX"
)

func (f TheaterFormat) Premium() bool {
	return f == Format4DX || f == FormatIMAX
}

// Theater is a bookable hall. RemainingSeats is reference data supplied
// by the catalog, not derived; the seating inventory uses
// TotalSeats-RemainingSeats to size the randomly occupied subset.
type Theater struct {
	ID             string
	Name           string
	Format         TheaterFormat
	Rows           int // seat rows, labelled 'A'..
	Cols           int // seats per row, numbered 1..
	TotalSeats     int
	RemainingSeats int
}
