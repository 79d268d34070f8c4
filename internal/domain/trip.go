// Package domain contains the core data types for the travel planner.
// This package has zero dependencies on other internal packages and is
// imported by every other internal package (repo, docstore, service, handler).
package domain

import "time"

// Trip is the root planning unit: destination, date range, currency.
// A trip owns its days (and through them events and tasks) and its
// checklists. Members are not owned — they are linked via a many-to-many
// membership association and outlive any single trip.
//
// StartDate and EndDate are calendar-date strings ("2006-01-02") or empty
// when unset. Dates are kept as strings end-to-end: the date normalizer is
// the only component that produces them, and "unset" is a legal value that
// a time.Time cannot represent without a pointer dance.
type Trip struct {
	ID          string    `json:"trip_id"`
	Title       string    `json:"trip_title"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
}

// TripInput carries the caller-supplied fields for creating a trip.
// Zero values fall back to defaults in the service layer.
type TripInput struct {
	Title       string
	Destination string
	StartDate   string
	EndDate     string
	Currency    string
}
