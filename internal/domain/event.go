package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an event for the per-category cost breakdown.
// The set is fixed; unknown values are coerced to CategoryOther on write.
type Category string

// The fixed category set.
const (
	CategoryTransport Category = "Transport"
	CategoryLodging   Category = "Lodging"
	CategoryFood      Category = "Food"
	CategoryTicket    Category = "Ticket"
	CategoryShopping  Category = "Shopping"
	CategoryOther     Category = "Other"
)

// Categories lists the fixed category set in display order.
var Categories = []Category{
	CategoryTransport,
	CategoryLodging,
	CategoryFood,
	CategoryTicket,
	CategoryShopping,
	CategoryOther,
}

// NormalizeCategory coerces arbitrary input to a member of the fixed
// category set. Unknown values become CategoryOther — never an error, so a
// stale form value can't block a write.
func NormalizeCategory(s string) Category {
	for _, c := range Categories {
		if Category(s) == c {
			return c
		}
	}
	return CategoryOther
}

// Event is a scheduled happening within a day: a transport leg, a meal, a
// lodging check-in. Time is free text (usually "HH:MM") and only used for
// ordering within the day. Tags is comma-separated free text.
type Event struct {
	ID        string          `json:"event_id"`
	TripID    string          `json:"trip_id"`
	DayID     string          `json:"day_id"`
	Time      string          `json:"time"`
	Title     string          `json:"title"`
	Location  string          `json:"location"`
	Category  Category        `json:"category"`
	Cost      decimal.Decimal `json:"cost"`
	Notes     string          `json:"notes"`
	Tags      string          `json:"tags"`
	CreatedAt time.Time       `json:"created_at"`
}

// CoerceCost parses free-text cost input into a non-negative decimal.
// Unparseable or negative input yields zero — the sign of garbage input is
// part of the garbage, not a typo to repair.
func CoerceCost(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
