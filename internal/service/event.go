package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yclin/travel-planner/internal/domain"
	"github.com/yclin/travel-planner/internal/id"
	"github.com/yclin/travel-planner/internal/repo"
)

// DefaultEventTime is the time slot a freshly added event lands on.
const DefaultEventTime = "12:00"

// EventService implements business logic for Event operations. Events are
// created blank with defaults and filled in through patches, matching the
// add-then-edit flow of the UI.
type EventService struct {
	store repo.Store
}

// NewEventService constructs an EventService backed by the provided store.
func NewEventService(store repo.Store) *EventService {
	return &EventService{store: store}
}

// Add creates an empty event on the given day: noon slot, category Other,
// zero cost. Returns domain.ErrNotFound when the day does not exist or
// belongs to another trip.
func (s *EventService) Add(ctx context.Context, tripID, dayID string) (domain.Event, error) {
	day, err := s.store.Repos().Days.GetByID(ctx, dayID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Add: %w", err)
	}
	if day.TripID != tripID {
		return domain.Event{}, fmt.Errorf("service.EventService.Add: day in different trip: %w", domain.ErrNotFound)
	}

	event := domain.Event{
		ID:        id.New("ev"),
		TripID:    tripID,
		DayID:     dayID,
		Time:      DefaultEventTime,
		Category:  domain.CategoryOther,
		Cost:      decimal.Zero,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.store.Repos().Events.Create(ctx, event); err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Add: %w", err)
	}
	return event, nil
}

// GetByID returns a single event by ID.
func (s *EventService) GetByID(ctx context.Context, eventID string) (domain.Event, error) {
	event, err := s.store.Repos().Events.GetByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.GetByID: %w", err)
	}
	return event, nil
}

// Update applies a typed patch to an event. Unknown categories collapse to
// Other and unparseable or negative costs to zero — bad input degrades,
// it never errors.
func (s *EventService) Update(ctx context.Context, eventID string, p domain.EventPatch) (domain.Event, error) {
	if p.IsZero() {
		return s.GetByID(ctx, eventID)
	}
	if p.Category != nil {
		v := string(domain.NormalizeCategory(*p.Category))
		p.Category = &v
	}
	if p.Cost != nil {
		v := domain.CoerceCost(*p.Cost).String()
		p.Cost = &v
	}

	event, err := s.store.Repos().Events.Update(ctx, eventID, p)
	if err != nil {
		return domain.Event{}, fmt.Errorf("service.EventService.Update: %w", err)
	}
	return event, nil
}

// Delete removes an event and cascades to its tasks.
func (s *EventService) Delete(ctx context.Context, tripID, eventID string) error {
	err := s.store.Atomic(ctx, func(r repo.Repos) error {
		return r.Events.Delete(ctx, tripID, eventID)
	})
	if err != nil {
		return fmt.Errorf("service.EventService.Delete: %w", err)
	}
	return nil
}
