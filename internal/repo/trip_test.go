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
	"github.com/yclin/travel-planner/testutil"
)

// newTestRepos opens a transaction against the test database and returns the
// full repo set bound to that transaction. The transaction is automatically
// rolled back when the test finishes, giving free per-test isolation.
//
// Requires TEST_DATABASE_URL to be set; migrations are applied by TestMain.
func newTestRepos(t *testing.T) repo.Repos {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		// Rollback discards all changes made during the test — no cleanup SQL needed.
		_ = tx.Rollback(context.Background())
	})

	return repo.Repos{
		Trips:      repo.NewTripRepo(tx),
		Days:       repo.NewDayRepo(tx),
		Events:     repo.NewEventRepo(tx),
		Tasks:      repo.NewTaskRepo(tx),
		Members:    repo.NewMemberRepo(tx),
		Checklists: repo.NewChecklistRepo(tx),
		Items:      repo.NewItemRepo(tx),
	}
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	return domain.Trip{
		ID:          id.New("trip"),
		Title:       "Tokyo Spring",
		Destination: "Tokyo",
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-05",
		Currency:    "JPY",
		CreatedAt:   time.Now().UTC(),
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Trips.Create(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, input.ID, got.ID)
	assert.Equal(t, "Tokyo Spring", got.Title)
	assert.Equal(t, "2026-04-01", got.StartDate)
	assert.Equal(t, "JPY", got.Currency)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepos(t)

	_, err := r.Trips.GetByID(context.Background(), "trip_missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_List_NewestFirst(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	t1 := tripFixture()
	t1.Title = "First"
	t1.CreatedAt = time.Now().UTC().Add(-time.Hour)

	t2 := tripFixture()
	t2.ID = id.New("trip")
	t2.Title = "Second"

	_, err := r.Trips.Create(ctx, t1)
	require.NoError(t, err)
	_, err = r.Trips.Create(ctx, t2)
	require.NoError(t, err)

	trips, err := r.Trips.List(ctx)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(trips), 2)
	assert.Equal(t, "Second", trips[0].Title, "newest trip should come first")
}

func TestTripRepo_Update_PatchSemantics(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	created, err := r.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	title := "Osaka Spring"
	updated, err := r.Trips.Update(ctx, created.ID, domain.TripPatch{Title: &title})

	require.NoError(t, err)
	assert.Equal(t, "Osaka Spring", updated.Title)
	// Unset fields must be left alone.
	assert.Equal(t, created.Destination, updated.Destination)
	assert.Equal(t, created.StartDate, updated.StartDate)
	assert.Equal(t, created.Currency, updated.Currency)
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := newTestRepos(t)

	title := "Ghost"
	_, err := r.Trips.Update(context.Background(), "trip_ghost", domain.TripPatch{Title: &title})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete_CascadesToSubgraph(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	trip, day := seedTripWithDay(t, r)
	event := seedEvent(t, r, trip.ID, day.ID)

	require.NoError(t, r.Trips.Delete(ctx, trip.ID))

	_, err := r.Trips.GetByID(ctx, trip.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
	_, err = r.Days.GetByID(ctx, day.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "days should cascade")
	_, err = r.Events.GetByID(ctx, event.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "events should cascade")
}

func TestTripRepo_Delete_NotFound(t *testing.T) {
	r := newTestRepos(t)

	err := r.Trips.Delete(context.Background(), "trip_missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- shared fixtures -------------------------------------------------------

func seedTripWithDay(t *testing.T, r repo.Repos) (domain.Trip, domain.Day) {
	t.Helper()
	ctx := context.Background()

	trip, err := r.Trips.Create(ctx, tripFixture())
	require.NoError(t, err)

	day, err := r.Days.Create(ctx, domain.Day{
		ID:        id.New("day"),
		TripID:    trip.ID,
		DayNo:     1,
		Date:      trip.StartDate,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	return trip, day
}

func seedEvent(t *testing.T, r repo.Repos, tripID, dayID string) domain.Event {
	t.Helper()

	event, err := r.Events.Create(context.Background(), domain.Event{
		ID:        id.New("ev"),
		TripID:    tripID,
		DayID:     dayID,
		Time:      "12:00",
		Title:     "Lunch",
		Category:  domain.CategoryFood,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return event
}
