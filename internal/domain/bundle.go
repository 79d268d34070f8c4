package domain

// TripBundle is the fully assembled entity graph for one trip, built by the
// service layer on demand. Ordering is part of the contract: days by day_no
// ascending, events within a day by time ascending, tasks and checklist
// items in insertion order. Tasks carry their resolved assignee name.
// Members holds the active members currently linked to the trip.
type TripBundle struct {
	Trip       Trip              `json:"trip"`
	Days       []BundleDay       `json:"days"`
	Checklists []BundleChecklist `json:"checklists"`
	Members    []Member          `json:"members"`
}

// BundleDay is a day with its events nested in.
type BundleDay struct {
	Day
	Events []BundleEvent `json:"events"`
}

// BundleEvent is an event with its tasks nested in.
type BundleEvent struct {
	Event
	Tasks []Task `json:"tasks"`
}

// BundleChecklist is a checklist with its items nested in.
type BundleChecklist struct {
	Checklist
	Items []ChecklistItem `json:"items"`
}
