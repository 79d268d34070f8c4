package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yclin/travel-planner/internal/domain"
	"github.com/yclin/travel-planner/internal/id"
)

func memberFixture(name, email string) domain.Member {
	return domain.Member{
		ID:        id.New("mem"),
		Name:      name,
		Role:      "planner",
		Email:     email,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemberRepo_Link_Idempotent(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip, err := r.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	member, err := r.Members.Create(ctx, memberFixture("Ada", "ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, r.Members.Link(ctx, trip.ID, member.ID))
	require.NoError(t, r.Members.Link(ctx, trip.ID, member.ID), "second link must be a no-op")

	linked, err := r.Members.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, member.ID, linked[0].ID)
}

func TestMemberRepo_Unlink_Idempotent(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip, err := r.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	member, err := r.Members.Create(ctx, memberFixture("Ada", "ada@example.com"))
	require.NoError(t, err)

	// Unlinking a member who was never linked succeeds.
	require.NoError(t, r.Members.Unlink(ctx, trip.ID, member.ID))
}

func TestMemberRepo_ListByTrip_ExcludesInactive(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip, err := r.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	active, err := r.Members.Create(ctx, memberFixture("Ada", "ada@example.com"))
	require.NoError(t, err)
	inactive, err := r.Members.Create(ctx, memberFixture("Grace", "grace@example.com"))
	require.NoError(t, err)

	require.NoError(t, r.Members.Link(ctx, trip.ID, active.ID))
	require.NoError(t, r.Members.Link(ctx, trip.ID, inactive.ID))

	off := false
	_, err = r.Members.Update(ctx, inactive.ID, domain.MemberPatch{Active: &off})
	require.NoError(t, err)

	linked, err := r.Members.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, active.ID, linked[0].ID)
}

func TestTaskRepo_Unassign_ScopedToTrip(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip, day := seedTripWithDay(t, r)
	event := seedEvent(t, r, trip.ID, day.ID)

	member, err := r.Members.Create(ctx, memberFixture("Ada", "ada@example.com"))
	require.NoError(t, err)

	task, err := r.Tasks.Create(ctx, domain.Task{
		ID:         id.New("tk"),
		TripID:     trip.ID,
		EventID:    event.ID,
		Text:       "buy tickets",
		Status:     domain.StatusTodo,
		AssigneeID: &member.ID,
		Priority:   domain.DefaultPriority,
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, r.Tasks.Unassign(ctx, trip.ID, member.ID))

	got, err := r.Tasks.GetByID(ctx, task.ID)
	require.NoError(t, err, "task must survive unassignment")
	assert.Nil(t, got.AssigneeID)

	// The member record itself is untouched.
	_, err = r.Members.GetByID(ctx, member.ID)
	assert.NoError(t, err)
}

func TestTaskRepo_ListByTrip_ResolvesAssigneeName(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip, day := seedTripWithDay(t, r)
	event := seedEvent(t, r, trip.ID, day.ID)

	member, err := r.Members.Create(ctx, memberFixture("Ada", "ada@example.com"))
	require.NoError(t, err)

	_, err = r.Tasks.Create(ctx, domain.Task{
		ID:         id.New("tk"),
		TripID:     trip.ID,
		EventID:    event.ID,
		Text:       "buy tickets",
		Status:     domain.StatusTodo,
		AssigneeID: &member.ID,
		Priority:   domain.DefaultPriority,
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	_, err = r.Tasks.Create(ctx, domain.Task{
		ID:        id.New("tk"),
		TripID:    trip.ID,
		EventID:   event.ID,
		Text:      "pack bags",
		Status:    domain.StatusTodo,
		Priority:  domain.DefaultPriority,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	tasks, err := r.Tasks.ListByTrip(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Ada", tasks[0].AssigneeName)
	assert.Empty(t, tasks[1].AssigneeName, "unassigned task gets an empty name, not an error")
}
