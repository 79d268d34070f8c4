package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yclin/travel-planner/internal/domain"
	"github.com/yclin/travel-planner/internal/service"
)

func bundleDay(events ...domain.BundleEvent) domain.BundleDay {
	return domain.BundleDay{Events: events}
}

func bundleEvent(category domain.Category, cost string, tasks ...domain.Task) domain.BundleEvent {
	return domain.BundleEvent{
		Event: domain.Event{
			Category: category,
			Cost:     decimal.RequireFromString(cost),
		},
		Tasks: tasks,
	}
}

func TestComputeStats_CostsAndProgress(t *testing.T) {
	days := []domain.BundleDay{
		bundleDay(
			bundleEvent(domain.CategoryTransport, "100",
				domain.Task{Status: domain.StatusDone},
				domain.Task{Status: domain.StatusTodo},
			),
			bundleEvent(domain.CategoryFood, "200",
				domain.Task{Status: domain.StatusDone},
			),
		),
		bundleDay(
			bundleEvent(domain.CategoryOther, "0"),
		),
	}

	stats := service.ComputeStats(days)

	assert.True(t, stats.TotalCost.Equal(decimal.NewFromInt(300)))
	assert.True(t, stats.CostByCategory[domain.CategoryTransport].Equal(decimal.NewFromInt(100)))
	assert.True(t, stats.CostByCategory[domain.CategoryFood].Equal(decimal.NewFromInt(200)))
	assert.True(t, stats.CostByCategory[domain.CategoryLodging].IsZero(), "unused categories are present at zero")

	assert.Equal(t, 3, stats.TotalTasks)
	assert.Equal(t, 2, stats.DoneTasks)
	assert.Equal(t, 67, stats.ProgressPercent, "2/3 rounds to 67")

	assert.Len(t, stats.AllEvents, 3)
	assert.Len(t, stats.AllTasks, 3)
}

func TestComputeStats_UnknownCategoryCountsInTotalOnly(t *testing.T) {
	// Document data from before category normalization can carry labels
	// outside the fixed set. Those costs belong in the total but have no
	// bucket in the breakdown.
	days := []domain.BundleDay{
		bundleDay(
			bundleEvent(domain.Category("Snacks"), "50"),
			bundleEvent(domain.CategoryFood, "20"),
		),
	}

	stats := service.ComputeStats(days)

	assert.True(t, stats.TotalCost.Equal(decimal.NewFromInt(70)))
	assert.True(t, stats.CostByCategory[domain.CategoryFood].Equal(decimal.NewFromInt(20)))
	assert.True(t, stats.CostByCategory[domain.CategoryOther].IsZero(), "unknown categories are not folded into Other")
	assert.Len(t, stats.CostByCategory, len(domain.Categories), "no bucket is invented for the unknown label")
}

func TestComputeStats_EmptyTrip(t *testing.T) {
	stats := service.ComputeStats(nil)

	assert.True(t, stats.TotalCost.IsZero())
	assert.Equal(t, 0, stats.TotalTasks)
	assert.Equal(t, 0, stats.ProgressPercent, "no tasks means 0, not a division error")
	assert.NotNil(t, stats.AllEvents)
	assert.NotNil(t, stats.AllTasks)
	assert.Len(t, stats.CostByCategory, len(domain.Categories))
}

func TestComputeStats_LegacyCompletedDoubleCounts(t *testing.T) {
	days := []domain.BundleDay{
		bundleDay(
			bundleEvent(domain.CategoryOther, "0",
				// Old documents can carry both signals; the aggregation
				// keeps the historical double-count.
				domain.Task{Status: domain.StatusDone, Completed: true},
				domain.Task{Status: domain.StatusTodo, Completed: true},
			),
		),
	}

	stats := service.ComputeStats(days)

	assert.Equal(t, 2, stats.TotalTasks)
	assert.Equal(t, 3, stats.DoneTasks)
	assert.Equal(t, 150, stats.ProgressPercent, "the quirk can push progress past 100")
}

func TestStatsService_ForTrip(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	trip := s.newTrip(t, domain.TripInput{Title: "Tokyo Spring"})
	bundle, err := s.trips.GetBundle(ctx, trip.ID)
	require.NoError(t, err)

	event, err := s.events.Add(ctx, trip.ID, bundle.Days[0].ID)
	require.NoError(t, err)
	cost := "450"
	category := "Ticket"
	_, err = s.events.Update(ctx, event.ID, domain.EventPatch{Cost: &cost, Category: &category})
	require.NoError(t, err)
	task, err := s.tasks.Add(ctx, trip.ID, event.ID, "buy tickets", nil)
	require.NoError(t, err)
	done := "done"
	_, err = s.tasks.Update(ctx, task.ID, domain.TaskPatch{Status: &done})
	require.NoError(t, err)

	stats, err := s.stats.ForTrip(ctx, trip.ID)

	require.NoError(t, err)
	assert.True(t, stats.TotalCost.Equal(decimal.NewFromInt(450)))
	assert.True(t, stats.CostByCategory[domain.CategoryTicket].Equal(decimal.NewFromInt(450)))
	assert.Equal(t, 1, stats.TotalTasks)
	assert.Equal(t, 100, stats.ProgressPercent)

	_, err = s.stats.ForTrip(ctx, "trip_missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
