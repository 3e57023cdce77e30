package catalog

import (
	"fmt"

	"github.com/kioskgym/kioskgym/internal/domain"
)

// validate cross-checks the reference data. Any inconsistency here
// would otherwise surface mid-session as a mission no trainee can pass,
// so it is treated as fatal at load time.
func (c *Catalog) validate() error {
	const op = "catalog.validate"

	for storefront, items := range c.menus {
		seenID := make(map[string]bool, len(items))
		seenName := make(map[string]bool, len(items))
		for _, it := range items {
			if it.ID == "" || it.Name == "" {
				return fmt.Errorf("%s: %s: item with empty id or name", op, storefront)
			}
			if it.Price < 0 {
				return fmt.Errorf("%s: %s: item %q has negative price", op, storefront, it.ID)
			}
			if seenID[it.ID] {
				return fmt.Errorf("%s: %s: duplicate item id %q", op, storefront, it.ID)
			}
			if seenName[it.Name] {
				return fmt.Errorf("%s: %s: duplicate item name %q", op, storefront, it.Name)
			}
			seenID[it.ID] = true
			seenName[it.Name] = true
		}
	}

	for storefront, pool := range c.cartMissions {
		if len(pool) == 0 {
			return fmt.Errorf("%s: %s: empty mission pool", op, storefront)
		}
		for _, m := range pool {
			if err := c.validateCartMission(storefront, m); err != nil {
				return fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	for _, t := range c.theaters {
		if t.Rows <= 0 || t.Cols <= 0 {
			return fmt.Errorf("%s: theater %q has no seat layout", op, t.ID)
		}
		if t.Rows*t.Cols != t.TotalSeats {
			return fmt.Errorf("%s: theater %q layout %dx%d does not match total seats %d",
				op, t.ID, t.Rows, t.Cols, t.TotalSeats)
		}
		if t.RemainingSeats < 0 || t.RemainingSeats > t.TotalSeats {
			return fmt.Errorf("%s: theater %q remaining seats %d out of range", op, t.ID, t.RemainingSeats)
		}
	}

	if len(c.bookingPool) == 0 {
		return fmt.Errorf("%s: empty booking mission pool", op)
	}
	for _, m := range c.bookingPool {
		if err := c.validateBookingMission(m); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}

func (c *Catalog) validateCartMission(storefront domain.StorefrontType, m domain.CartMission) error {
	if m.Text == "" || len(m.Required) == 0 {
		return fmt.Errorf("%s: mission without text or required items", storefront)
	}
	for _, req := range m.Required {
		if req.Quantity < 1 {
			return fmt.Errorf("%s: mission %q requires non-positive quantity of %q", storefront, m.Text, req.Name)
		}
		item, ok := c.ItemByName(storefront, req.Name)
		if !ok {
			return fmt.Errorf("%s: mission %q requires unknown item %q", storefront, m.Text, req.Name)
		}
		for name := range req.OptionSet() {
			if _, ok := item.Modifier(name); !ok {
				return fmt.Errorf("%s: mission %q requires unknown modifier %q on item %q",
					storefront, m.Text, name, req.Name)
			}
		}
	}
	return nil
}

func (c *Catalog) validateBookingMission(m domain.BookingMission) error {
	movie, ok := c.MovieByID(m.MovieID)
	if !ok {
		return fmt.Errorf("booking mission %d references unknown movie %q", m.ID, m.MovieID)
	}
	if !movie.HasShowTime(m.Time) {
		return fmt.Errorf("booking mission %d requires time %q not offered by movie %q", m.ID, m.Time, m.MovieID)
	}
	if _, ok := c.TheaterByID(m.TheaterID); !ok {
		return fmt.Errorf("booking mission %d references unknown theater %q", m.ID, m.TheaterID)
	}
	if m.Adult < 0 || m.Child < 0 || m.Senior < 0 {
		return fmt.Errorf("booking mission %d has a negative headcount", m.ID)
	}
	total := m.Adult + m.Child + m.Senior
	if total == 0 || total > c.maxHeadcount {
		return fmt.Errorf("booking mission %d total headcount %d out of range", m.ID, total)
	}
	if !m.Payment.Valid() {
		return fmt.Errorf("booking mission %d has invalid payment channel %q", m.ID, m.Payment)
	}
	return nil
}
