// Package cart implements the order model shared by every storefront:
// an insertion-ordered list of lines, each an (item, modifier-set)
// combination with a quantity. Two lines are the same line iff the item
// and the selected modifier set are equal; the modifier set is compared
// without regard to selection order.
package cart

import (
	"sort"
	"strings"

	"github.com/kioskgym/kioskgym/internal/domain"
	"github.com/kioskgym/kioskgym/internal/pricing"
)

// Line is one cart entry. Modifiers keeps the trainee's selection order
// for display; identity and matching use the unordered set.
type Line struct {
	Item      domain.Item
	Quantity  int
	Modifiers []string
}

// Key is a stable address for the line: item ID plus the sorted
// modifier names. Equal selections always yield equal keys.
func (l Line) Key() string {
	return LineKey(l.Item.ID, l.Modifiers)
}

func LineKey(itemID string, modifiers []string) string {
	if len(modifiers) == 0 {
		return itemID
	}
	names := append([]string(nil), modifiers...)
	sort.Strings(names)
	return itemID + "|" + strings.Join(names, ",")
}

// OptionString renders the selected modifiers in the comma-joined form
// used by mission text and history records.
func (l Line) OptionString() string {
	return domain.JoinOptions(l.Modifiers)
}

// UnitPrice is the price of one unit of the line: base price plus the
// selected modifiers' deltas.
func (l Line) UnitPrice() int {
	return pricing.LinePrice(l.Item, l.Modifiers, domain.CategoryAdult)
}

// Order is the trainee's in-progress cart. Totals are recomputed
// synchronously after every mutation; they are never stale.
type Order struct {
	lines         []Line
	totalPrice    int
	totalQuantity int
}

func NewOrder() *Order {
	return &Order{}
}

// AddLine merges the quantity into an existing line with the identical
// item and modifier set, or appends a new line. Quantity must be
// positive; callers enforce that.
func (o *Order) AddLine(item domain.Item, quantity int, modifiers []string) {
	key := LineKey(item.ID, modifiers)
	for i := range o.lines {
		if o.lines[i].Key() == key {
			o.lines[i].Quantity += quantity
			o.recompute()
			return
		}
	}
	o.lines = append(o.lines, Line{
		Item:      item,
		Quantity:  quantity,
		Modifiers: append([]string(nil), modifiers...),
	})
	o.recompute()
}

// ChangeQuantity adjusts the addressed line by delta. A result of zero
// or less removes the line entirely. Returns false when no line has the
// given key.
func (o *Order) ChangeQuantity(key string, delta int) bool {
	for i := range o.lines {
		if o.lines[i].Key() != key {
			continue
		}
		o.lines[i].Quantity += delta
		if o.lines[i].Quantity <= 0 {
			o.lines = append(o.lines[:i], o.lines[i+1:]...)
		}
		o.recompute()
		return true
	}
	return false
}

// Clear empties the cart and resets totals.
func (o *Order) Clear() {
	o.lines = nil
	o.recompute()
}

// Lines returns a copy of the cart in insertion order.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

func (o *Order) TotalPrice() int    { return o.totalPrice }
func (o *Order) TotalQuantity() int { return o.totalQuantity }
func (o *Order) Empty() bool        { return len(o.lines) == 0 }

// Snapshot converts the cart into the submitted-order shape stored in
// history records.
func (o *Order) Snapshot() []domain.RequiredItem {
	out := make([]domain.RequiredItem, 0, len(o.lines))
	for _, l := range o.lines {
		out = append(out, domain.RequiredItem{
			Name:     l.Item.Name,
			Quantity: l.Quantity,
			Option:   l.OptionString(),
		})
	}
	return out
}

func (o *Order) recompute() {
	price, qty := 0, 0
	for _, l := range o.lines {
		price += l.UnitPrice() * l.Quantity
		qty += l.Quantity
	}
	o.totalPrice = price
	o.totalQuantity = qty
}
