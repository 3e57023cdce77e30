// Package seating derives the addressable seat grid of a hall and
// simulates its pre-occupied seats. The occupied subset is drawn
// uniformly at random, sized so that exactly the hall's remaining-seat
// figure stays free, and memoized for as long as the same hall stays
// selected.
package seating

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/kioskgym/kioskgym/internal/domain"
)

// ErrSlotOccupied reports an attempt to select an already occupied
// seat. It is a distinct signal rather than a silent no-op because
// trainees hit it constantly.
var ErrSlotOccupied = errors.New("seat is already occupied")

// ErrUnknownSlot reports a seat label outside the hall's layout.
var ErrUnknownSlot = errors.New("seat does not exist in this hall")

// Grid enumerates every seat label of a hall, row letter then seat
// number: A1..A12, B1..
func Grid(theater domain.Theater) []string {
	slots := make([]string, 0, theater.Rows*theater.Cols)
	for r := 0; r < theater.Rows; r++ {
		for c := 1; c <= theater.Cols; c++ {
			slots = append(slots, fmt.Sprintf("%c%d", 'A'+r, c))
		}
	}
	return slots
}

// Inventory memoizes the occupied subset per selected hall. It is not
// safe for concurrent use; one flow owns one inventory.
type Inventory struct {
	rng       *rand.Rand
	theaterID string
	occupied  map[string]struct{}
}

// NewInventory seeds the occupancy draw. Tests pass a fixed seed for
// deterministic subsets.
func NewInventory(seed int64) *Inventory {
	return &Inventory{rng: rand.New(rand.NewSource(seed))}
}

// Occupied returns the occupied seats of the hall. The subset is drawn
// once per hall selection and returned unchanged on repeated calls;
// selecting a different hall (or Reset) triggers a fresh draw.
func (inv *Inventory) Occupied(theater domain.Theater) map[string]struct{} {
	if inv.occupied != nil && inv.theaterID == theater.ID {
		return inv.occupied
	}

	slots := Grid(theater)
	n := theater.TotalSeats - theater.RemainingSeats
	if n < 0 {
		n = 0
	}
	if n > len(slots) {
		n = len(slots)
	}

	inv.rng.Shuffle(len(slots), func(i, j int) {
		slots[i], slots[j] = slots[j], slots[i]
	})

	occupied := make(map[string]struct{}, n)
	for _, s := range slots[:n] {
		occupied[s] = struct{}{}
	}

	inv.theaterID = theater.ID
	inv.occupied = occupied
	return occupied
}

// Reset forgets the memoized draw; the next Occupied call re-randomizes.
func (inv *Inventory) Reset() {
	inv.theaterID = ""
	inv.occupied = nil
}

// Toggle flips a seat in the selected set. Selecting an occupied seat
// fails with ErrSlotOccupied; selecting beyond maxCount is a no-op.
// Returns whether the set changed.
func (inv *Inventory) Toggle(theater domain.Theater, slot string, selected map[string]struct{}, maxCount int) (bool, error) {
	if !slotInGrid(theater, slot) {
		return false, ErrUnknownSlot
	}
	if _, ok := selected[slot]; ok {
		delete(selected, slot)
		return true, nil
	}
	if _, ok := inv.Occupied(theater)[slot]; ok {
		return false, ErrSlotOccupied
	}
	if len(selected) >= maxCount {
		return false, nil
	}
	selected[slot] = struct{}{}
	return true, nil
}

func slotInGrid(theater domain.Theater, slot string) bool {
	if len(slot) < 2 {
		return false
	}
	row := int(slot[0] - 'A')
	if row < 0 || row >= theater.Rows {
		return false
	}
	col := 0
	for _, ch := range slot[1:] {
		if ch < '0' || ch > '9' {
			return false
		}
		col = col*10 + int(ch-'0')
	}
	return col >= 1 && col <= theater.Cols
}
