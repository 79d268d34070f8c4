package service

import (
	"context"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/yclin/travel-planner/internal/domain"
)

// StatsService derives trip-wide figures from the assembled bundle. It owns
// no storage — it reuses TripService for assembly and computes in memory.
type StatsService struct {
	trips *TripService
}

// NewStatsService constructs a StatsService on top of the trip service.
func NewStatsService(trips *TripService) *StatsService {
	return &StatsService{trips: trips}
}

// ForTrip assembles the trip's bundle and computes its stats.
func (s *StatsService) ForTrip(ctx context.Context, tripID string) (domain.Stats, error) {
	bundle, err := s.trips.GetBundle(ctx, tripID)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("service.StatsService.ForTrip: %w", err)
	}
	return ComputeStats(bundle.Days), nil
}

// ComputeStats walks the day tree and totals event costs and task progress.
//
// Every cost counts toward the total, but the per-category breakdown only
// has buckets for the fixed category set: a cost under a category outside
// it (possible in pre-normalization document data) appears in the total and
// nowhere in the breakdown.
//
// A task counts as done when its status is done OR its legacy completed
// flag is set — a task with both set counts twice. That double-count is a
// quirk of pre-status data and is kept so old documents report the same
// figures they always did. Progress is round(done/total*100), 0 when the
// trip has no tasks; the legacy quirk can push it past 100.
func ComputeStats(days []domain.BundleDay) domain.Stats {
	stats := domain.Stats{
		TotalCost:      decimal.Zero,
		CostByCategory: make(map[domain.Category]decimal.Decimal, len(domain.Categories)),
		AllEvents:      []domain.Event{},
		AllTasks:       []domain.Task{},
	}
	for _, c := range domain.Categories {
		stats.CostByCategory[c] = decimal.Zero
	}

	for _, day := range days {
		for _, event := range day.Events {
			stats.TotalCost = stats.TotalCost.Add(event.Cost)
			if bucket, ok := stats.CostByCategory[event.Category]; ok {
				stats.CostByCategory[event.Category] = bucket.Add(event.Cost)
			}
			stats.AllEvents = append(stats.AllEvents, event.Event)

			for _, task := range event.Tasks {
				stats.TotalTasks++
				if task.Status == domain.StatusDone {
					stats.DoneTasks++
				}
				if task.Completed {
					stats.DoneTasks++
				}
				stats.AllTasks = append(stats.AllTasks, task)
			}
		}
	}

	if stats.TotalTasks > 0 {
		stats.ProgressPercent = int(math.Round(float64(stats.DoneTasks) / float64(stats.TotalTasks) * 100))
	}
	return stats
}
