package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kioskgym/kioskgym/internal/domain"
)

func TestLinePrice(t *testing.T) {
	item := domain.Item{
		Name: "아메리카노", Price: 2000,
		Groups: []domain.ModifierGroup{
			{
				Name: "온도/샷",
				Modifiers: []domain.Modifier{
					{Name: "HOT"},
					{Name: "ICE", PriceDelta: 500},
					{Name: "샷 추가", PriceDelta: 500},
				},
			},
		},
	}

	assert.Equal(t, 2000, LinePrice(item, nil, domain.CategoryAdult))
	assert.Equal(t, 3000, LinePrice(item, []string{"ICE", "샷 추가"}, domain.CategoryAdult))

	// discount comes off the base, never off the modifier deltas
	assert.Equal(t, 0+500, LinePrice(item, []string{"ICE"}, domain.CategoryChild))
}

func TestLinePriceFloorsAtZero(t *testing.T) {
	cheap := domain.Item{Name: "탄산수", Price: 1500}
	assert.Equal(t, 0, LinePrice(cheap, nil, domain.CategorySenior))
}

func TestAdultTicketPrice(t *testing.T) {
	assert.Equal(t, 10000, AdultTicketPrice(domain.Theater{Format: domain.Format2D}))
	assert.Equal(t, 16000, AdultTicketPrice(domain.Theater{Format: domain.Format4DX}))
	assert.Equal(t, 16000, AdultTicketPrice(domain.Theater{Format: domain.FormatIMAX}))
}

func TestTicketPrice(t *testing.T) {
	standard := domain.Theater{Format: domain.Format2D}
	premium := domain.Theater{Format: domain.FormatIMAX}

	assert.Equal(t, 2*10000, TicketPrice(standard, 2, 0, 0))
	assert.Equal(t, 10000+8000, TicketPrice(standard, 1, 1, 0))
	assert.Equal(t, 8000, TicketPrice(standard, 0, 0, 1))
	assert.Equal(t, 16000+2*14000, TicketPrice(premium, 1, 1, 1))
	assert.Equal(t, 0, TicketPrice(standard, 0, 0, 0))
}
