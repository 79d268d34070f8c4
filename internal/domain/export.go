package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ExportDocument is the self-contained portable form of one trip's entity
// graph: a deep copy of the assembled bundle with original identifiers, safe
// to persist or hand to another instance. Importing one always builds a
// brand-new trip — identifiers in the document are remapped, never reused,
// so an import can never clobber existing data.
type ExportDocument struct {
	Trip       ExportTrip        `json:"trip"`
	Days       []ExportDay       `json:"days"`
	Checklists []ExportChecklist `json:"checklists"`
	Members    []ExportMember    `json:"members"`
}

// ExportTrip carries the top-level trip fields of an export document.
type ExportTrip struct {
	TripID      string `json:"trip_id,omitempty"`
	TripTitle   string `json:"trip_title"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Currency    string `json:"currency"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// UnmarshalJSON accepts both the canonical snake_case keys and the
// camelCase spellings (tripTitle/startDate/endDate) written by an older
// producer. Snake_case wins when both are present.
func (t *ExportTrip) UnmarshalJSON(b []byte) error {
	type plain ExportTrip
	var aux struct {
		plain
		AltTitle string `json:"tripTitle"`
		AltStart string `json:"startDate"`
		AltEnd   string `json:"endDate"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*t = ExportTrip(aux.plain)
	if t.TripTitle == "" {
		t.TripTitle = aux.AltTitle
	}
	if t.StartDate == "" {
		t.StartDate = aux.AltStart
	}
	if t.EndDate == "" {
		t.EndDate = aux.AltEnd
	}
	return nil
}

// ExportDay is a day with its events nested in.
type ExportDay struct {
	DayID  string        `json:"day_id,omitempty"`
	DayNo  int           `json:"day_no"`
	Date   string        `json:"date"`
	Note   string        `json:"note"`
	Events []ExportEvent `json:"events"`
}

// ExportEvent is an event with its tasks nested in.
type ExportEvent struct {
	EventID  string          `json:"event_id,omitempty"`
	Time     string          `json:"time"`
	Title    string          `json:"title"`
	Location string          `json:"location"`
	Category string          `json:"category"`
	Cost     decimal.Decimal `json:"cost"`
	Notes    string          `json:"notes"`
	Tags     string          `json:"tags"`
	Tasks    []ExportTask    `json:"tasks"`
}

// ExportTask is a task within an export document. AssigneeID is the old
// instance's member ID; the importer remaps it through the member map and
// drops it (unassigned) when it cannot be resolved.
type ExportTask struct {
	TaskID     string  `json:"task_id,omitempty"`
	Text       string  `json:"text"`
	Status     string  `json:"status"`
	AssigneeID *string `json:"assignee_id"`
	DueDate    string  `json:"due_date"`
	Priority   int     `json:"priority"`
	Completed  bool    `json:"completed,omitempty"`
}

// ExportChecklist is a checklist with its items nested in.
type ExportChecklist struct {
	ChecklistID string       `json:"checklist_id,omitempty"`
	ListKey     string       `json:"list_key"`
	Title       string       `json:"title"`
	Items       []ExportItem `json:"items"`
}

// ExportItem is a single checklist item within an export document.
type ExportItem struct {
	ItemID  string `json:"item_id,omitempty"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// ExportMember identifies a member for weak matching on import: exact
// case-insensitive email first, then exact name.
type ExportMember struct {
	MemberID string `json:"member_id,omitempty"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}
