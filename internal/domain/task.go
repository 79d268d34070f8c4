package domain

import "time"

// Status is a task's workflow state. The set is fixed; unknown values are
// coerced to StatusTodo on write.
type Status string

// The fixed task status set.
const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// NormalizeStatus coerces arbitrary input to a member of the fixed status
// set. Unknown values become StatusTodo.
func NormalizeStatus(s string) Status {
	switch Status(s) {
	case StatusTodo, StatusDoing, StatusDone:
		return Status(s)
	}
	return StatusTodo
}

// DefaultPriority is the priority assigned when none (or garbage) is given.
const DefaultPriority = 3

// ClampPriority forces a priority into the valid 1 (high) .. 5 (low) range.
func ClampPriority(p int) int {
	if p < 1 {
		return 1
	}
	if p > 5 {
		return 5
	}
	return p
}

// Task is an assignable to-do attached to an event.
//
// AssigneeID is a weak reference to a Member: removing the member from the
// trip (or deactivating them) nulls it out, it is never followed into a
// cascade. AssigneeName is read-side only — resolved during bundle assembly
// for display, never written back.
//
// Completed is a legacy boolean from pre-status data. It survives only so
// imported old documents keep their progress figures; the aggregation
// engine counts it in addition to status (double-counting when both are
// set, a documented quirk of the old data model).
type Task struct {
	ID           string    `json:"task_id"`
	TripID       string    `json:"trip_id"`
	EventID      string    `json:"event_id"`
	Text         string    `json:"text"`
	Status       Status    `json:"status"`
	AssigneeID   *string   `json:"assignee_id"`
	AssigneeName string    `json:"assignee_name,omitempty"`
	DueDate      string    `json:"due_date"`
	Priority     int       `json:"priority"`
	Completed    bool      `json:"completed,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
