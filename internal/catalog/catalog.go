// Package catalog holds the static reference data every session reads:
// per-storefront menus, the cinema's movies, halls and mission pools.
// A Catalog is built once at process start, validated, and never
// mutated afterwards.
package catalog

import (
	"github.com/kioskgym/kioskgym/internal/domain"
)

type Catalog struct {
	menus        map[domain.StorefrontType][]domain.Item
	cartMissions map[domain.StorefrontType][]domain.CartMission
	movies       []domain.Movie
	theaters     []domain.Theater
	bookingPool  []domain.BookingMission
	maxHeadcount int
}

// New builds the default catalog and validates it. Malformed reference
// data (a mission naming an unknown item or modifier, a hall smaller
// than its remaining-seat figure) is fatal here, before any flow runs.
func New() (*Catalog, error) {
	c := &Catalog{
		menus: map[domain.StorefrontType][]domain.Item{
			domain.StorefrontBurger:     burgerItems,
			domain.StorefrontCafe:       cafeItems,
			domain.StorefrontRestaurant: restaurantItems,
			domain.StorefrontCinema:     snackItems,
		},
		cartMissions: map[domain.StorefrontType][]domain.CartMission{
			domain.StorefrontBurger:     burgerMissions,
			domain.StorefrontCafe:       cafeMissions,
			domain.StorefrontRestaurant: restaurantMissions,
		},
		movies:       movies,
		theaters:     theaters,
		bookingPool:  bookingMissions,
		maxHeadcount: 8,
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Menu returns the sellable items for a storefront. For the cinema this
// is the snack-stand menu used by the SNACK branch.
func (c *Catalog) Menu(t domain.StorefrontType) []domain.Item {
	return c.menus[t]
}

// ItemByID looks an item up within one storefront's menu.
func (c *Catalog) ItemByID(t domain.StorefrontType, id string) (domain.Item, bool) {
	for _, it := range c.menus[t] {
		if it.ID == id {
			return it, true
		}
	}
	return domain.Item{}, false
}

// ItemByName looks an item up by display name; mission targets address
// items by name.
func (c *Catalog) ItemByName(t domain.StorefrontType, name string) (domain.Item, bool) {
	for _, it := range c.menus[t] {
		if it.Name == name {
			return it, true
		}
	}
	return domain.Item{}, false
}

func (c *Catalog) Movies() []domain.Movie { return c.movies }

func (c *Catalog) MovieByID(id string) (domain.Movie, bool) {
	for _, m := range c.movies {
		if m.ID == id {
			return m, true
		}
	}
	return domain.Movie{}, false
}

func (c *Catalog) Theaters() []domain.Theater { return c.theaters }

func (c *Catalog) TheaterByID(id string) (domain.Theater, bool) {
	for _, t := range c.theaters {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Theater{}, false
}

// CartMissions returns the mission pool for a cart-flow storefront.
func (c *Catalog) CartMissions(t domain.StorefrontType) []domain.CartMission {
	return c.cartMissions[t]
}

// BookingMissions returns the cinema booking mission pool.
func (c *Catalog) BookingMissions() []domain.BookingMission {
	return c.bookingPool
}

// MaxHeadcount is the upper bound on total people per booking.
func (c *Catalog) MaxHeadcount() int { return c.maxHeadcount }
