package domain

import "time"

// Day is one ordinal day within a trip's timeline.
// DayNo is always a contiguous 1..N within the owning trip — deleting a day
// renumbers the survivors, so the invariant holds after every mutation.
// Date is a "2006-01-02" string or empty when the day is not yet pinned to
// a calendar date.
type Day struct {
	ID        string    `json:"day_id"`
	TripID    string    `json:"trip_id"`
	DayNo     int       `json:"day_no"`
	Date      string    `json:"date"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}
