package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kioskgym/kioskgym/internal/domain"
)

var testHall = domain.Theater{
	ID: "t1", Name: "1관 2D", Format: domain.Format2D,
	Rows: 10, Cols: 12, TotalSeats: 120, RemainingSeats: 80,
}

func TestGridEnumeratesAllSeats(t *testing.T) {
	slots := Grid(testHall)
	require.Len(t, slots, 120)
	assert.Equal(t, "A1", slots[0])
	assert.Equal(t, "A12", slots[11])
	assert.Equal(t, "B1", slots[12])
	assert.Equal(t, "J12", slots[119])
}

func TestOccupiedSizeMatchesRemaining(t *testing.T) {
	inv := NewInventory(1)

	occupied := inv.Occupied(testHall)
	assert.Len(t, occupied, testHall.TotalSeats-testHall.RemainingSeats)

	grid := make(map[string]struct{})
	for _, s := range Grid(testHall) {
		grid[s] = struct{}{}
	}
	for slot := range occupied {
		_, ok := grid[slot]
		assert.True(t, ok, "occupied slot %q outside grid", slot)
	}
}

func TestOccupiedMemoizedPerHall(t *testing.T) {
	inv := NewInventory(1)

	first := inv.Occupied(testHall)
	second := inv.Occupied(testHall)
	assert.Equal(t, first, second)

	other := domain.Theater{ID: "t2", Format: domain.Format4DX, Rows: 8, Cols: 12, TotalSeats: 96, RemainingSeats: 86}
	assert.Len(t, inv.Occupied(other), 10)

	// switching back re-draws for the first hall
	assert.Len(t, inv.Occupied(testHall), 40)
}

func TestOccupiedClampsOversizedFigure(t *testing.T) {
	inv := NewInventory(1)

	full := domain.Theater{ID: "tx", Rows: 2, Cols: 2, TotalSeats: 4, RemainingSeats: 0}
	assert.Len(t, inv.Occupied(full), 4)

	inv.Reset()
	empty := domain.Theater{ID: "ty", Rows: 2, Cols: 2, TotalSeats: 4, RemainingSeats: 10}
	assert.Len(t, inv.Occupied(empty), 0)
}

func TestToggleSelectAndDeselect(t *testing.T) {
	inv := NewInventory(1)
	selected := make(map[string]struct{})

	var free string
	occupied := inv.Occupied(testHall)
	for _, s := range Grid(testHall) {
		if _, ok := occupied[s]; !ok {
			free = s
			break
		}
	}
	require.NotEmpty(t, free)

	changed, err := inv.Toggle(testHall, free, selected, 2)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, selected, free)

	changed, err = inv.Toggle(testHall, free, selected, 2)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Empty(t, selected)
}

func TestToggleOccupiedSeatRefused(t *testing.T) {
	inv := NewInventory(1)
	selected := make(map[string]struct{})

	var taken string
	for slot := range inv.Occupied(testHall) {
		taken = slot
		break
	}
	require.NotEmpty(t, taken)

	changed, err := inv.Toggle(testHall, taken, selected, 2)
	assert.ErrorIs(t, err, ErrSlotOccupied)
	assert.False(t, changed)
	assert.Empty(t, selected)
}

func TestToggleBeyondMaxIsNoOp(t *testing.T) {
	inv := NewInventory(1)
	selected := make(map[string]struct{})

	occupied := inv.Occupied(testHall)
	var free []string
	for _, s := range Grid(testHall) {
		if _, ok := occupied[s]; !ok {
			free = append(free, s)
		}
		if len(free) == 2 {
			break
		}
	}
	require.Len(t, free, 2)

	changed, err := inv.Toggle(testHall, free[0], selected, 1)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = inv.Toggle(testHall, free[1], selected, 1)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, selected, 1)
}

func TestSelectedNeverIntersectsOccupied(t *testing.T) {
	inv := NewInventory(3)
	selected := make(map[string]struct{})

	for _, slot := range Grid(testHall) {
		_, err := inv.Toggle(testHall, slot, selected, 10)
		if err != nil {
			assert.ErrorIs(t, err, ErrSlotOccupied)
		}
	}

	occupied := inv.Occupied(testHall)
	for slot := range selected {
		_, ok := occupied[slot]
		assert.False(t, ok, "selected slot %q is occupied", slot)
	}
}

func TestToggleUnknownSlot(t *testing.T) {
	inv := NewInventory(1)
	selected := make(map[string]struct{})

	for _, slot := range []string{"Z1", "A13", "A0", "", "1A", "AA"} {
		changed, err := inv.Toggle(testHall, slot, selected, 2)
		assert.ErrorIs(t, err, ErrUnknownSlot, "slot %q", slot)
		assert.False(t, changed)
	}
}
