package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yclin/travel-planner/internal/domain"
	"github.com/yclin/travel-planner/internal/service"
	"github.com/yclin/travel-planner/testutil"
)

// services bundles every service wired to one document store, mirroring the
// wiring in main.go. The document backing needs no environment setup, so
// these tests always run; the repo package covers the Postgres backing.
type services struct {
	trips      *service.TripService
	days       *service.DayService
	events     *service.EventService
	tasks      *service.TaskService
	members    *service.MemberService
	checklists *service.ChecklistService
	stats      *service.StatsService
	porter     *service.ExportService
}

func newTestServices(t *testing.T) services {
	t.Helper()
	store := testutil.NewDocStore(t)

	trips := service.NewTripService(store)
	days := service.NewDayService(store)
	events := service.NewEventService(store)
	tasks := service.NewTaskService(store)
	members := service.NewMemberService(store)
	checklists := service.NewChecklistService(store)

	return services{
		trips:      trips,
		days:       days,
		events:     events,
		tasks:      tasks,
		members:    members,
		checklists: checklists,
		stats:      service.NewStatsService(trips),
		porter:     service.NewExportService(trips, days, events, tasks, members, checklists),
	}
}

// newTrip creates a trip with the given fields, failing the test on error.
func (s services) newTrip(t *testing.T, in domain.TripInput) domain.Trip {
	t.Helper()
	trip, err := s.trips.Create(context.Background(), in)
	require.NoError(t, err)
	return trip
}
