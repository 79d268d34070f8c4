package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yclin/travel-planner/internal/domain"
)

// seedEvent builds trip → day → event and returns the trip and event IDs.
func seedEvent(t *testing.T, s services) (tripID, eventID string) {
	t.Helper()
	ctx := context.Background()

	trip := s.newTrip(t, domain.TripInput{Title: "Tokyo Spring"})
	day, err := s.days.Add(ctx, trip.ID)
	require.NoError(t, err)
	event, err := s.events.Add(ctx, trip.ID, day.ID)
	require.NoError(t, err)
	return trip.ID, event.ID
}

func TestTaskService_Add_Defaults(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	tripID, eventID := seedEvent(t, s)

	task, err := s.tasks.Add(ctx, tripID, eventID, "  buy tickets  ", nil)

	require.NoError(t, err)
	assert.Equal(t, "buy tickets", task.Text)
	assert.Equal(t, domain.StatusTodo, task.Status)
	assert.Equal(t, domain.DefaultPriority, task.Priority)
	assert.Nil(t, task.AssigneeID)
}

func TestTaskService_Add_Validation(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	tripID, eventID := seedEvent(t, s)

	_, err := s.tasks.Add(ctx, tripID, eventID, "   ", nil)
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = s.tasks.Add(ctx, tripID, "ev_missing", "buy tickets", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// An event reached through the wrong trip is as good as absent.
	other := s.newTrip(t, domain.TripInput{Title: "Lisbon"})
	_, err = s.tasks.Add(ctx, other.ID, eventID, "buy tickets", nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskService_Update_CoercesStatusPriorityAndDueDate(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	tripID, eventID := seedEvent(t, s)
	task, err := s.tasks.Add(ctx, tripID, eventID, "buy tickets", nil)
	require.NoError(t, err)

	status := "done"
	due := "04/03/2026"
	priority := 9
	updated, err := s.tasks.Update(ctx, task.ID, domain.TaskPatch{
		Status:   &status,
		DueDate:  &due,
		Priority: &priority,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, updated.Status)
	assert.Equal(t, "2026-04-03", updated.DueDate)
	assert.Equal(t, 5, updated.Priority, "priority clamps to 1..5")

	// Unknown statuses fall back to todo rather than erroring.
	status = "blocked"
	updated, err = s.tasks.Update(ctx, task.ID, domain.TaskPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusTodo, updated.Status)
}

func TestTaskService_Update_AssignAndUnassign(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	tripID, eventID := seedEvent(t, s)
	member, err := s.members.Create(ctx, "Ada", "planner", "ada@example.com")
	require.NoError(t, err)
	task, err := s.tasks.Add(ctx, tripID, eventID, "buy tickets", nil)
	require.NoError(t, err)

	updated, err := s.tasks.Update(ctx, task.ID, domain.TaskPatch{AssigneeID: &member.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)
	assert.Equal(t, member.ID, *updated.AssigneeID)

	// A patch that sets neither field leaves the assignee alone...
	text := "buy two tickets"
	updated, err = s.tasks.Update(ctx, task.ID, domain.TaskPatch{Text: &text})
	require.NoError(t, err)
	require.NotNil(t, updated.AssigneeID)

	// ...and Unassign clears it explicitly.
	updated, err = s.tasks.Update(ctx, task.ID, domain.TaskPatch{Unassign: true})
	require.NoError(t, err)
	assert.Nil(t, updated.AssigneeID)
}
