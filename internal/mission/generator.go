// Package mission draws the trainee's random target and scores the
// assembled transaction against it.
package mission

import (
	"errors"
	"math/rand"

	"github.com/kioskgym/kioskgym/internal/catalog"
	"github.com/kioskgym/kioskgym/internal/domain"
)

// ErrEmptyPool is returned when a storefront has no missions to draw
// from. The catalog validates pools at load time, so this only shows up
// for storefronts that never carry missions of the requested kind.
var ErrEmptyPool = errors.New("mission pool is empty")

// Generator draws one mission uniformly at random from the fixed pool
// of a storefront. It is re-invoked on every flow restart, so repeated
// attempts can present a different target.
type Generator struct {
	cat *catalog.Catalog
	rng *rand.Rand
}

func NewGenerator(cat *catalog.Catalog, seed int64) *Generator {
	return &Generator{cat: cat, rng: rand.New(rand.NewSource(seed))}
}

// DrawCart picks a cart mission for a menu+cart storefront.
func (g *Generator) DrawCart(t domain.StorefrontType) (domain.CartMission, error) {
	pool := g.cat.CartMissions(t)
	if len(pool) == 0 {
		return domain.CartMission{}, ErrEmptyPool
	}
	return pool[g.rng.Intn(len(pool))], nil
}

// DrawBooking picks a booking mission for the cinema flow.
func (g *Generator) DrawBooking() (domain.BookingMission, error) {
	pool := g.cat.BookingMissions()
	if len(pool) == 0 {
		return domain.BookingMission{}, ErrEmptyPool
	}
	return pool[g.rng.Intn(len(pool))], nil
}
