package domain

// Patches are typed partial updates: one optional field per mutable
// attribute. A nil field means "leave alone". Applying a patch with no set
// fields is a no-op that still returns success — the UI resubmits unchanged
// forms all the time and that must never be an error.
//
// Date-shaped fields (StartDate, EndDate, Date, DueDate) are normalized
// through the dates package before the write; enum-shaped fields are
// coerced per their Normalize helpers. Cost arrives as free text because
// the form layer cannot be trusted to produce a number.

// TripPatch updates the mutable fields of a Trip.
type TripPatch struct {
	Title       *string
	Destination *string
	StartDate   *string
	EndDate     *string
	Currency    *string
}

// IsZero reports whether no field is set.
func (p TripPatch) IsZero() bool {
	return p.Title == nil && p.Destination == nil && p.StartDate == nil &&
		p.EndDate == nil && p.Currency == nil
}

// DayPatch updates the mutable fields of a Day. DayNo is not patchable —
// it is owned by the renumbering invariant.
type DayPatch struct {
	Date *string
	Note *string
}

// IsZero reports whether no field is set.
func (p DayPatch) IsZero() bool { return p.Date == nil && p.Note == nil }

// EventPatch updates the mutable fields of an Event.
type EventPatch struct {
	Time     *string
	Title    *string
	Location *string
	Category *string
	Cost     *string
	Notes    *string
	Tags     *string
}

// IsZero reports whether no field is set.
func (p EventPatch) IsZero() bool {
	return p.Time == nil && p.Title == nil && p.Location == nil &&
		p.Category == nil && p.Cost == nil && p.Notes == nil && p.Tags == nil
}

// TaskPatch updates the mutable fields of a Task.
// Unassign clears the assignee; it exists because a nil AssigneeID already
// means "leave alone" and the two intents must stay distinguishable.
type TaskPatch struct {
	Text       *string
	Status     *string
	AssigneeID *string
	Unassign   bool
	DueDate    *string
	Priority   *int
}

// IsZero reports whether no field is set.
func (p TaskPatch) IsZero() bool {
	return p.Text == nil && p.Status == nil && p.AssigneeID == nil &&
		!p.Unassign && p.DueDate == nil && p.Priority == nil
}

// MemberPatch updates the mutable fields of a Member.
type MemberPatch struct {
	Name   *string
	Role   *string
	Email  *string
	Active *bool
}

// IsZero reports whether no field is set.
func (p MemberPatch) IsZero() bool {
	return p.Name == nil && p.Role == nil && p.Email == nil && p.Active == nil
}

// ItemPatch updates the mutable fields of a ChecklistItem.
type ItemPatch struct {
	Text    *string
	Checked *bool
}

// IsZero reports whether no field is set.
func (p ItemPatch) IsZero() bool { return p.Text == nil && p.Checked == nil }
