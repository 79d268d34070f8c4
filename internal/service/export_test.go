package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yclin/travel-planner/internal/domain"
)

// buildSampleTrip fills a trip with two extra days, costed events, tasks (one
// assigned) and a checked-off checklist item, returning the trip and member.
func buildSampleTrip(t *testing.T, s services) (domain.Trip, domain.Member) {
	t.Helper()
	ctx := context.Background()

	trip := s.newTrip(t, domain.TripInput{
		Title:       "Tokyo Spring",
		Destination: "Tokyo",
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-03",
		Currency:    "JPY",
	})
	member, err := s.members.Create(ctx, "Ada", "planner", "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, s.members.AddToTrip(ctx, trip.ID, member.ID))

	_, err = s.days.Add(ctx, trip.ID)
	require.NoError(t, err)
	_, err = s.days.Add(ctx, trip.ID)
	require.NoError(t, err)

	bundle, err := s.trips.GetBundle(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, bundle.Days, 3)

	addEvent := func(dayID, title, category, cost string) domain.Event {
		event, err := s.events.Add(ctx, trip.ID, dayID)
		require.NoError(t, err)
		_, err = s.events.Update(ctx, event.ID, domain.EventPatch{
			Title: &title, Category: &category, Cost: &cost,
		})
		require.NoError(t, err)
		return event
	}
	e1 := addEvent(bundle.Days[0].ID, "Narita Express", "Transport", "100")
	addEvent(bundle.Days[1].ID, "Ramen dinner", "Food", "200")
	addEvent(bundle.Days[2].ID, "Park walk", "Other", "0")

	_, err = s.tasks.Add(ctx, trip.ID, e1.ID, "buy tickets", &member.ID)
	require.NoError(t, err)
	task, err := s.tasks.Add(ctx, trip.ID, e1.ID, "pack bags", nil)
	require.NoError(t, err)
	done := "done"
	_, err = s.tasks.Update(ctx, task.ID, domain.TaskPatch{Status: &done})
	require.NoError(t, err)

	cl, err := s.checklists.Add(ctx, trip.ID, "food", "Restaurants")
	require.NoError(t, err)
	item, err := s.checklists.AddItem(ctx, cl.ID, "Ichiran")
	require.NoError(t, err)
	checked := true
	_, err = s.checklists.UpdateItem(ctx, item.ID, domain.ItemPatch{Checked: &checked})
	require.NoError(t, err)

	return trip, member
}

func TestExportService_Export_Shape(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	trip, member := buildSampleTrip(t, s)

	doc, err := s.porter.Export(ctx, trip.ID)

	require.NoError(t, err)
	assert.Equal(t, trip.ID, doc.Trip.TripID)
	assert.Equal(t, "Tokyo Spring", doc.Trip.TripTitle)
	assert.Equal(t, "JPY", doc.Trip.Currency)

	require.Len(t, doc.Days, 3)
	require.Len(t, doc.Days[0].Events, 1)
	assert.Equal(t, "Narita Express", doc.Days[0].Events[0].Title)
	require.Len(t, doc.Days[0].Events[0].Tasks, 2)
	require.NotNil(t, doc.Days[0].Events[0].Tasks[0].AssigneeID)
	assert.Equal(t, member.ID, *doc.Days[0].Events[0].Tasks[0].AssigneeID)

	// Default checklists plus the added one, with the checked state intact.
	require.Len(t, doc.Checklists, 3)
	var restaurants *domain.ExportChecklist
	for i := range doc.Checklists {
		if doc.Checklists[i].ListKey == "food" {
			restaurants = &doc.Checklists[i]
		}
	}
	require.NotNil(t, restaurants)
	require.Len(t, restaurants.Items, 1)
	assert.True(t, restaurants.Items[0].Checked)

	require.Len(t, doc.Members, 1)
	assert.Equal(t, "Ada", doc.Members[0].Name)

	_, err = s.porter.Export(ctx, "trip_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportService_ImportRoundTrip(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	original, member := buildSampleTrip(t, s)

	doc, err := s.porter.Export(ctx, original.ID)
	require.NoError(t, err)
	payload, err := json.Marshal(doc)
	require.NoError(t, err)

	imported, err := s.porter.Import(ctx, payload)
	require.NoError(t, err)
	assert.NotEqual(t, original.ID, imported.ID, "import always creates a new trip")
	assert.Equal(t, "Tokyo Spring", imported.Title)
	assert.Equal(t, "2026-04-01", imported.StartDate)

	before, err := s.trips.GetBundle(ctx, original.ID)
	require.NoError(t, err)
	after, err := s.trips.GetBundle(ctx, imported.ID)
	require.NoError(t, err)

	require.Len(t, after.Days, len(before.Days))
	for i := range before.Days {
		assert.Equal(t, before.Days[i].DayNo, after.Days[i].DayNo)
		assert.Len(t, after.Days[i].Events, len(before.Days[i].Events))
	}

	// The figures survive the round trip.
	beforeStats, err := s.stats.ForTrip(ctx, original.ID)
	require.NoError(t, err)
	afterStats, err := s.stats.ForTrip(ctx, imported.ID)
	require.NoError(t, err)
	assert.True(t, afterStats.TotalCost.Equal(beforeStats.TotalCost))
	assert.True(t, afterStats.TotalCost.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, beforeStats.TotalTasks, afterStats.TotalTasks)
	assert.Equal(t, beforeStats.DoneTasks, afterStats.DoneTasks)

	// Ada matched by email — not duplicated — and is linked to both trips.
	members, err := s.members.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Len(t, after.Members, 1)
	assert.Equal(t, member.ID, after.Members[0].ID)

	// The remapped assignee points at the registry member, not the doc ID.
	require.NotEmpty(t, after.Days[0].Events)
	var assigned *domain.Task
	for _, task := range after.Days[0].Events[0].Tasks {
		if task.AssigneeID != nil {
			tk := task
			assigned = &tk
		}
	}
	require.NotNil(t, assigned)
	assert.Equal(t, member.ID, *assigned.AssigneeID)
}

func TestExportService_Import_RejectsDocumentWithoutTrip(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	for _, payload := range []string{
		`{"days": []}`,
		`not json at all`,
		`[]`,
	} {
		_, err := s.porter.Import(ctx, []byte(payload))
		assert.ErrorIs(t, err, domain.ErrStructure, "payload: %s", payload)
	}

	// Nothing was written.
	trips, err := s.trips.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestExportService_Import_FillsDayGaps(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	payload := []byte(`{
		"trip": {"trip_title": "Sparse", "currency": "EUR"},
		"days": [
			{"day_no": 3, "date": "2026-06-03", "note": "arrive late", "events": []}
		],
		"checklists": [],
		"members": []
	}`)

	imported, err := s.porter.Import(ctx, payload)
	require.NoError(t, err)

	bundle, err := s.trips.GetBundle(ctx, imported.ID)
	require.NoError(t, err)
	require.Len(t, bundle.Days, 3, "days 1 and 2 are created as empty filler")
	assert.Equal(t, 3, bundle.Days[2].DayNo)
	assert.Equal(t, "2026-06-03", bundle.Days[2].Date)
	assert.Equal(t, "arrive late", bundle.Days[2].Note)
	assert.Empty(t, bundle.Days[1].Note)
}

func TestExportService_Import_LegacyCompletedBecomesDone(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	payload := []byte(`{
		"trip": {"tripTitle": "Old Format", "startDate": "2026-05-01"},
		"days": [
			{"day_no": 1, "date": "", "note": "", "events": [
				{"time": "09:00", "title": "Museum", "category": "Ticket",
				 "cost": "25", "notes": "", "tags": "", "tasks": [
					{"text": "book slot", "status": "", "assignee_id": null,
					 "due_date": "", "priority": 0, "completed": true},
					{"text": "   ", "status": "todo", "assignee_id": null,
					 "due_date": "", "priority": 0}
				]}
			]}
		],
		"checklists": [],
		"members": []
	}`)

	imported, err := s.porter.Import(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, "Old Format", imported.Title, "camelCase keys are accepted")
	assert.Equal(t, "2026-05-01", imported.StartDate)

	bundle, err := s.trips.GetBundle(ctx, imported.ID)
	require.NoError(t, err)
	require.Len(t, bundle.Days, 1)
	require.Len(t, bundle.Days[0].Events, 1)

	tasks := bundle.Days[0].Events[0].Tasks
	require.Len(t, tasks, 1, "blank-text tasks are skipped")
	assert.Equal(t, domain.StatusDone, tasks[0].Status, "completed maps to done when status is absent")
	assert.Equal(t, domain.DefaultPriority, tasks[0].Priority)
}
