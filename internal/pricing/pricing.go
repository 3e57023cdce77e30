// Package pricing computes line and ticket prices. Everything here is a
// pure function of its inputs; callers re-derive after every edit
// instead of caching, so totals can never go stale.
package pricing

import "github.com/kioskgym/kioskgym/internal/domain"

const (
	// CategoryDiscount is the flat discount applied to child and senior
	// tickets and discounted menu categories.
	CategoryDiscount = 2000

	standardTicketPrice = 10000
	premiumTicketPrice  = 16000
)

// LinePrice is the price of one unit of an item with the selected
// modifiers. Discounted person categories pay the flat discount off the
// base price, floored at zero; modifier deltas are never discounted.
func LinePrice(item domain.Item, modifiers []string, category domain.PersonCategory) int {
	base := item.Price
	if category != domain.CategoryAdult {
		base = max(base-CategoryDiscount, 0)
	}
	for _, name := range modifiers {
		if m, ok := item.Modifier(name); ok {
			base += m.PriceDelta
		}
	}
	return base
}

// AdultTicketPrice is the full per-seat price for a hall; premium
// formats (4DX, IMAX) cost more.
func AdultTicketPrice(theater domain.Theater) int {
	if theater.Format.Premium() {
		return premiumTicketPrice
	}
	return standardTicketPrice
}

// TicketPrice is the weighted total across headcount categories: adults
// pay the full hall price, child and senior pay the flat discount off
// it, floored at zero.
func TicketPrice(theater domain.Theater, adult, child, senior int) int {
	full := AdultTicketPrice(theater)
	discounted := max(full-CategoryDiscount, 0)
	return adult*full + child*discounted + senior*discounted
}
