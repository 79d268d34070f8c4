package domain

import "time"

// Checklist is a freeform named list of checkable items attached to a trip.
// ListKey is a free-text category tag ("documents", "packing", "custom", ...)
// used by the UI to group lists; it carries no semantics here.
type Checklist struct {
	ID        string    `json:"checklist_id"`
	TripID    string    `json:"trip_id"`
	ListKey   string    `json:"list_key"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

// ChecklistItem is a single checkable line within a checklist.
type ChecklistItem struct {
	ID          string    `json:"item_id"`
	ChecklistID string    `json:"checklist_id"`
	Text        string    `json:"text"`
	Checked     bool      `json:"checked"`
	CreatedAt   time.Time `json:"created_at"`
}
