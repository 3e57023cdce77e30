package domain

import "strings"

// RequiredItem is one entry of a cart mission's target, and doubles as
// the per-line shape of a submitted-order snapshot in history records.
// Option is a comma-joined list of modifier names; it is compared as an
// unordered set, never as a literal string.
type RequiredItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Option   string `json:"option,omitempty"`
}

// OptionSet parses the comma-joined option string into a set of
// modifier names. "ICE, 샷 추가" and "샷 추가,ICE" yield the same set.
func (r RequiredItem) OptionSet() map[string]struct{} {
	return OptionSet(r.Option)
}

// OptionSet splits a comma-joined option string into a name set,
// trimming whitespace and dropping empty entries.
func OptionSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		if name := strings.TrimSpace(part); name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// JoinOptions renders a modifier-name set back into the comma-joined
// form used by mission text and history records. Names keep the order
// they are given in.
func JoinOptions(names []string) string {
	return strings.Join(names, ", ")
}

// CartMission is the target specification for the menu+cart
// storefronts: the trainee passes iff the final cart matches every
// required entry exactly and contains nothing else.
type CartMission struct {
	Text     string
	Required []RequiredItem
}

// TotalQuantity is the sum of required quantities across all entries.
func (m CartMission) TotalQuantity() int {
	total := 0
	for _, r := range m.Required {
		total += r.Quantity
	}
	return total
}

// BookingMission is the target specification for the cinema booking
// flow: movie, show time, hall, per-category headcounts and payment
// channel must all match exactly.
type BookingMission struct {
	ID        int
	Text      string
	MovieID   string
	Time      string
	TheaterID string
	Adult     int
	Child     int
	Senior    int
	Payment   PaymentChannel
}
