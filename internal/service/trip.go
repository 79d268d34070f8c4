// Package service contains the business logic for the travel planner.
// Services validate inputs, enforce the cascade and renumbering rules, and
// orchestrate repo calls. No SQL lives here — services depend on the repo
// interfaces, not on a concrete backing.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yclin/travel-planner/internal/dates"
	"github.com/yclin/travel-planner/internal/domain"
	"github.com/yclin/travel-planner/internal/id"
	"github.com/yclin/travel-planner/internal/repo"
)

// Trip creation defaults, used when the input (or an imported document)
// leaves the fields blank.
const (
	DefaultTripTitle = "Untitled Trip"
	DefaultCurrency  = "USD"
)

// TripService implements business logic for Trip operations, including
// bundle assembly — the fully nested graph the UI renders from.
type TripService struct {
	store repo.Store
}

// NewTripService constructs a TripService backed by the provided store.
func NewTripService(store repo.Store) *TripService {
	return &TripService{store: store}
}

// Create persists a new trip along with its starter content: day 1
// (carrying the trip start date) and the two default checklists. All of it
// commits atomically — a trip without day 1 must never be observable.
func (s *TripService) Create(ctx context.Context, in domain.TripInput) (domain.Trip, error) {
	now := time.Now().UTC()

	trip := domain.Trip{
		ID:          id.New("trip"),
		Title:       strings.TrimSpace(in.Title),
		Destination: strings.TrimSpace(in.Destination),
		StartDate:   dates.Normalize(in.StartDate),
		EndDate:     dates.Normalize(in.EndDate),
		Currency:    strings.TrimSpace(in.Currency),
		CreatedAt:   now,
	}
	if trip.Title == "" {
		trip.Title = DefaultTripTitle
	}
	if trip.Currency == "" {
		trip.Currency = DefaultCurrency
	}

	err := s.store.Atomic(ctx, func(r repo.Repos) error {
		if _, err := r.Trips.Create(ctx, trip); err != nil {
			return err
		}
		for _, cl := range []domain.Checklist{
			{ID: id.New("cl"), TripID: trip.ID, ListKey: "documents", Title: "Travel documents", CreatedAt: now},
			{ID: id.New("cl"), TripID: trip.ID, ListKey: "packing", Title: "Packing list", CreatedAt: now},
		} {
			if _, err := r.Checklists.Create(ctx, cl); err != nil {
				return err
			}
		}
		day := domain.Day{
			ID:        id.New("day"),
			TripID:    trip.ID,
			DayNo:     1,
			Date:      trip.StartDate,
			CreatedAt: now,
		}
		_, err := r.Days.Create(ctx, day)
		return err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return trip, nil
}

// GetByID returns a single trip by ID.
func (s *TripService) GetByID(ctx context.Context, tripID string) (domain.Trip, error) {
	trip, err := s.store.Repos().Trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.store.Repos().Trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update applies a typed patch to a trip. Date fields are normalized; a
// patch with no set fields performs no write and returns the current record.
func (s *TripService) Update(ctx context.Context, tripID string, p domain.TripPatch) (domain.Trip, error) {
	if p.IsZero() {
		return s.GetByID(ctx, tripID)
	}
	normalizeDate(&p.StartDate)
	normalizeDate(&p.EndDate)

	trip, err := s.store.Repos().Trips.Update(ctx, tripID, p)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return trip, nil
}

// Delete removes a trip and its entire owned subgraph: days, events,
// tasks, checklists, items, and membership links. Members survive — they
// are linked, not owned.
func (s *TripService) Delete(ctx context.Context, tripID string) error {
	err := s.store.Atomic(ctx, func(r repo.Repos) error {
		return r.Trips.Delete(ctx, tripID)
	})
	if err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// GetBundle assembles the full entity graph for a trip: ordered days with
// their events and tasks (assignee names resolved), checklists with their
// items, and the trip's linked active members.
func (s *TripService) GetBundle(ctx context.Context, tripID string) (domain.TripBundle, error) {
	r := s.store.Repos()

	trip, err := r.Trips.GetByID(ctx, tripID)
	if err != nil {
		return domain.TripBundle{}, fmt.Errorf("service.TripService.GetBundle: %w", err)
	}
	days, err := r.Days.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.TripBundle{}, fmt.Errorf("service.TripService.GetBundle: days: %w", err)
	}
	events, err := r.Events.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.TripBundle{}, fmt.Errorf("service.TripService.GetBundle: events: %w", err)
	}
	tasks, err := r.Tasks.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.TripBundle{}, fmt.Errorf("service.TripService.GetBundle: tasks: %w", err)
	}
	checklists, err := r.Checklists.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.TripBundle{}, fmt.Errorf("service.TripService.GetBundle: checklists: %w", err)
	}
	items, err := r.Items.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.TripBundle{}, fmt.Errorf("service.TripService.GetBundle: items: %w", err)
	}
	members, err := r.Members.ListByTrip(ctx, tripID)
	if err != nil {
		return domain.TripBundle{}, fmt.Errorf("service.TripService.GetBundle: members: %w", err)
	}

	return assembleBundle(trip, days, events, tasks, checklists, items, members), nil
}

// assembleBundle nests the flat slices into the bundle shape. Input slices
// are already ordered by their repos; nesting preserves that order.
func assembleBundle(
	trip domain.Trip,
	days []domain.Day,
	events []domain.Event,
	tasks []domain.Task,
	checklists []domain.Checklist,
	items []domain.ChecklistItem,
	members []domain.Member,
) domain.TripBundle {
	eventTasks := make(map[string][]domain.Task)
	for _, t := range tasks {
		eventTasks[t.EventID] = append(eventTasks[t.EventID], t)
	}

	dayEvents := make(map[string][]domain.BundleEvent)
	for _, e := range events {
		be := domain.BundleEvent{Event: e, Tasks: eventTasks[e.ID]}
		if be.Tasks == nil {
			be.Tasks = []domain.Task{}
		}
		dayEvents[e.DayID] = append(dayEvents[e.DayID], be)
	}

	bundle := domain.TripBundle{
		Trip:       trip,
		Days:       []domain.BundleDay{},
		Checklists: []domain.BundleChecklist{},
		Members:    members,
	}
	if bundle.Members == nil {
		bundle.Members = []domain.Member{}
	}

	for _, d := range days {
		bd := domain.BundleDay{Day: d, Events: dayEvents[d.ID]}
		if bd.Events == nil {
			bd.Events = []domain.BundleEvent{}
		}
		bundle.Days = append(bundle.Days, bd)
	}

	listItems := make(map[string][]domain.ChecklistItem)
	for _, it := range items {
		listItems[it.ChecklistID] = append(listItems[it.ChecklistID], it)
	}
	for _, cl := range checklists {
		bc := domain.BundleChecklist{Checklist: cl, Items: listItems[cl.ID]}
		if bc.Items == nil {
			bc.Items = []domain.ChecklistItem{}
		}
		bundle.Checklists = append(bundle.Checklists, bc)
	}

	return bundle
}

// EnsureDefaultTrip returns the newest trip, creating a blank one when the
// store is empty. Single-trip deployments call this once at startup — the
// explicit replacement for the original's hidden auto-create-on-first-read.
func (s *TripService) EnsureDefaultTrip(ctx context.Context) (domain.Trip, error) {
	trips, err := s.List(ctx)
	if err != nil {
		return domain.Trip{}, err
	}
	if len(trips) > 0 {
		return trips[0], nil
	}
	return s.Create(ctx, domain.TripInput{})
}

// normalizeDate rewrites a set date field to its canonical form in place.
func normalizeDate(p **string) {
	if *p != nil {
		v := dates.Normalize(**p)
		*p = &v
	}
}
