package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yclin/travel-planner/internal/domain"
)

func TestMemberService_Create_RequiresName(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	_, err := s.members.Create(ctx, "   ", "planner", "ada@example.com")
	assert.ErrorIs(t, err, domain.ErrValidation)

	member, err := s.members.Create(ctx, " Ada ", "planner", "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", member.Name)
	assert.True(t, member.Active, "new members start active")
}

func TestMemberService_Update_RejectsBlankName(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	member, err := s.members.Create(ctx, "Ada", "planner", "ada@example.com")
	require.NoError(t, err)

	blank := "  "
	_, err = s.members.Update(ctx, member.ID, domain.MemberPatch{Name: &blank})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestMemberService_RemoveFromTrip_UnassignsWithinTripOnly(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	trip := s.newTrip(t, domain.TripInput{Title: "Tokyo Spring"})
	other := s.newTrip(t, domain.TripInput{Title: "Lisbon"})

	member, err := s.members.Create(ctx, "Ada", "planner", "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, s.members.AddToTrip(ctx, trip.ID, member.ID))
	require.NoError(t, s.members.AddToTrip(ctx, other.ID, member.ID))

	assignedTask := func(tripID string) domain.Task {
		bundle, err := s.trips.GetBundle(ctx, tripID)
		require.NoError(t, err)
		day := bundle.Days[0]
		event, err := s.events.Add(ctx, tripID, day.ID)
		require.NoError(t, err)
		task, err := s.tasks.Add(ctx, tripID, event.ID, "pack bags", &member.ID)
		require.NoError(t, err)
		return task
	}
	inTrip := assignedTask(trip.ID)
	inOther := assignedTask(other.ID)

	require.NoError(t, s.members.RemoveFromTrip(ctx, trip.ID, member.ID))

	got, err := s.tasks.GetByID(ctx, inTrip.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID, "tasks in the removed-from trip are unassigned")

	got, err = s.tasks.GetByID(ctx, inOther.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AssigneeID, "tasks in other trips keep their assignee")
	assert.Equal(t, member.ID, *got.AssigneeID)

	// The member record survives, as does the link to the other trip.
	_, err = s.members.GetByID(ctx, member.ID)
	require.NoError(t, err)
	bundle, err := s.trips.GetBundle(ctx, other.ID)
	require.NoError(t, err)
	require.Len(t, bundle.Members, 1)
	assert.Equal(t, member.ID, bundle.Members[0].ID)
}

func TestMemberService_Deactivate_UnassignsEverywhere(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	trip := s.newTrip(t, domain.TripInput{Title: "Tokyo Spring"})
	member, err := s.members.Create(ctx, "Ada", "planner", "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, s.members.AddToTrip(ctx, trip.ID, member.ID))

	bundle, err := s.trips.GetBundle(ctx, trip.ID)
	require.NoError(t, err)
	event, err := s.events.Add(ctx, trip.ID, bundle.Days[0].ID)
	require.NoError(t, err)
	task, err := s.tasks.Add(ctx, trip.ID, event.ID, "pack bags", &member.ID)
	require.NoError(t, err)

	updated, err := s.members.SetActive(ctx, member.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.Active)

	got, err := s.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AssigneeID)

	active, err := s.members.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := s.members.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1, "deactivation hides, it does not delete")
}
