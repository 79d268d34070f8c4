package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yclin/travel-planner/internal/domain"
	"github.com/yclin/travel-planner/internal/id"
	"github.com/yclin/travel-planner/internal/repo"
)

// addDays appends n days to the trip, numbered from the current max.
func addDays(t *testing.T, r repo.Repos, tripID string, n int) []domain.Day {
	t.Helper()
	ctx := context.Background()

	max, err := r.Days.MaxDayNo(ctx, tripID)
	require.NoError(t, err)

	days := make([]domain.Day, 0, n)
	for i := 1; i <= n; i++ {
		day, err := r.Days.Create(ctx, domain.Day{
			ID:        id.New("day"),
			TripID:    tripID,
			DayNo:     max + i,
			CreatedAt: time.Now().UTC(),
		})
		require.NoError(t, err)
		days = append(days, day)
	}
	return days
}

func TestDayRepo_MaxDayNo_EmptyTrip(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip, err := r.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	max, err := r.Days.MaxDayNo(ctx, trip.ID)

	require.NoError(t, err)
	assert.Equal(t, 0, max)
}

func TestDayRepo_ListByTrip_OrderedByDayNo(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip, err := r.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	addDays(t, r, trip.ID, 3)

	days, err := r.Days.ListByTrip(ctx, trip.ID)

	require.NoError(t, err)
	require.Len(t, days, 3)
	for i, d := range days {
		assert.Equal(t, i+1, d.DayNo)
	}
}

func TestDayRepo_DeleteAndRenumber_ClosesGap(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip, err := r.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	days := addDays(t, r, trip.ID, 3)

	// Remove the middle day; renumbering must pull day 3 down to 2.
	require.NoError(t, r.Days.Delete(ctx, trip.ID, days[1].ID))
	require.NoError(t, r.Days.Renumber(ctx, trip.ID))

	remaining, err := r.Days.ListByTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, 1, remaining[0].DayNo)
	assert.Equal(t, 2, remaining[1].DayNo)
	assert.Equal(t, days[0].ID, remaining[0].ID)
	assert.Equal(t, days[2].ID, remaining[1].ID, "former day 3 should now be day 2")
}

func TestDayRepo_Delete_CascadesToEventsAndTasks(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip, day := seedTripWithDay(t, r)
	event := seedEvent(t, r, trip.ID, day.ID)

	task, err := r.Tasks.Create(ctx, domain.Task{
		ID:        id.New("tk"),
		TripID:    trip.ID,
		EventID:   event.ID,
		Text:      "book table",
		Status:    domain.StatusTodo,
		Priority:  domain.DefaultPriority,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	require.NoError(t, r.Days.Delete(ctx, trip.ID, day.ID))

	_, err = r.Events.GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "events should cascade with their day")
	_, err = r.Tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "tasks should cascade with their event")
}

func TestDayRepo_Delete_WrongTrip(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	_, day := seedTripWithDay(t, r)
	other, err := r.Trips.Create(ctx, func() domain.Trip {
		tr := tripFixture()
		tr.ID = id.New("trip")
		return tr
	}())
	require.NoError(t, err)

	err = r.Days.Delete(ctx, other.ID, day.ID)

	assert.ErrorIs(t, err, domain.ErrNotFound, "day must only be deletable via its own trip")
}

func TestDayRepo_GetByTripAndNo(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip, err := r.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	days := addDays(t, r, trip.ID, 2)

	got, err := r.Days.GetByTripAndNo(ctx, trip.ID, 2)

	require.NoError(t, err)
	assert.Equal(t, days[1].ID, got.ID)

	_, err = r.Days.GetByTripAndNo(ctx, trip.ID, 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
