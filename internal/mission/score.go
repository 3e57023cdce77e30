package mission

import (
	"time"

	"github.com/google/uuid"
	"github.com/kioskgym/kioskgym/internal/cart"
	"github.com/kioskgym/kioskgym/internal/domain"
)

// ScoreCart checks a finished cart against a cart mission.
//
// The total quantity across the cart must equal the mission's total
// first: over-ordering is not "close enough", one stray extra item
// fails the whole attempt. Each required entry then needs an exact
// quantity match among cart lines whose item name equals the required
// name and whose modifier set equals the required option set. Sets, not
// strings: "ICE, 샷 추가" matches a selection made in any order.
func ScoreCart(m domain.CartMission, order *cart.Order) bool {
	if order.TotalQuantity() != m.TotalQuantity() {
		return false
	}

	lines := order.Lines()
	for _, req := range m.Required {
		reqSet := req.OptionSet()
		matching := 0
		for _, l := range lines {
			if l.Item.Name != req.Name {
				continue
			}
			if optionSetsEqual(reqSet, l.Modifiers) {
				matching += l.Quantity
			}
		}
		if matching != req.Quantity {
			return false
		}
	}
	return true
}

// BookingSubmission is the read-only view of the trainee's selections
// that booking scoring consumes.
type BookingSubmission struct {
	MovieID   string
	Time      string
	TheaterID string
	Adult     int
	Child     int
	Senior    int
	Payment   domain.PaymentChannel
}

// ScoreBooking is a strict AND across every constrained field of the
// mission. There is no partial credit; the reporting layer renders a
// percentage from the single boolean.
func ScoreBooking(m domain.BookingMission, sub BookingSubmission) bool {
	return sub.MovieID == m.MovieID &&
		sub.Time == m.Time &&
		sub.TheaterID == m.TheaterID &&
		sub.Adult == m.Adult &&
		sub.Child == m.Child &&
		sub.Senior == m.Senior &&
		sub.Payment == m.Payment
}

// BookingResultText renders the "n/1 (0%|100%)" summary shown on the
// result screen and stored with the record. Exactly one booking mission
// is scored per session.
func BookingResultText(success bool) string {
	if success {
		return "1/1 (100%)"
	}
	return "0/1 (0%)"
}

// NewRecord builds the immutable result record handed to the
// persistence collaborator after every scoring call.
func NewRecord(missionText string, success bool, submitted []domain.RequiredItem, resultText string, now time.Time) domain.HistoryRecord {
	return domain.HistoryRecord{
		ID:          uuid.NewString(),
		Date:        domain.FormatHistoryDate(now),
		MissionText: missionText,
		Success:     success,
		UserOrder:   submitted,
		ResultText:  resultText,
		Timestamp:   now.UnixMilli(),
	}
}

func optionSetsEqual(required map[string]struct{}, selected []string) bool {
	seen := make(map[string]struct{}, len(selected))
	for _, name := range selected {
		if _, ok := required[name]; !ok {
			return false
		}
		seen[name] = struct{}{}
	}
	return len(seen) == len(required)
}
