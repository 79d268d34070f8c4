package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yclin/travel-planner/internal/dates"
	"github.com/yclin/travel-planner/internal/domain"
	"github.com/yclin/travel-planner/internal/id"
	"github.com/yclin/travel-planner/internal/repo"
)

// DayService implements business logic for Day operations. Days are
// append-only at the end of the sequence; deleting one renumbers the rest
// so day_no stays contiguous from 1.
type DayService struct {
	store repo.Store
}

// NewDayService constructs a DayService backed by the provided store.
func NewDayService(store repo.Store) *DayService {
	return &DayService{store: store}
}

// Add appends a new day to the trip with day_no = max + 1. The max lookup
// and the insert run in one transaction so concurrent adds cannot collide.
func (s *DayService) Add(ctx context.Context, tripID string) (domain.Day, error) {
	var day domain.Day
	err := s.store.Atomic(ctx, func(r repo.Repos) error {
		if _, err := r.Trips.GetByID(ctx, tripID); err != nil {
			return err
		}
		max, err := r.Days.MaxDayNo(ctx, tripID)
		if err != nil {
			return err
		}
		day = domain.Day{
			ID:        id.New("day"),
			TripID:    tripID,
			DayNo:     max + 1,
			CreatedAt: time.Now().UTC(),
		}
		_, err = r.Days.Create(ctx, day)
		return err
	})
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.DayService.Add: %w", err)
	}
	return day, nil
}

// GetByID returns a single day by ID.
func (s *DayService) GetByID(ctx context.Context, dayID string) (domain.Day, error) {
	day, err := s.store.Repos().Days.GetByID(ctx, dayID)
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.DayService.GetByID: %w", err)
	}
	return day, nil
}

// Update applies a typed patch to a day. day_no is not patchable — it is
// owned by the renumbering invariant.
func (s *DayService) Update(ctx context.Context, dayID string, p domain.DayPatch) (domain.Day, error) {
	if p.IsZero() {
		return s.GetByID(ctx, dayID)
	}
	if p.Date != nil {
		v := dates.Normalize(*p.Date)
		p.Date = &v
	}

	day, err := s.store.Repos().Days.Update(ctx, dayID, p)
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.DayService.Update: %w", err)
	}
	return day, nil
}

// Delete removes a day, cascades to its events and their tasks, and
// renumbers the remaining days back to a contiguous 1..N. Delete and
// renumber commit together — a gap in day_no must never be observable.
func (s *DayService) Delete(ctx context.Context, tripID, dayID string) error {
	err := s.store.Atomic(ctx, func(r repo.Repos) error {
		if err := r.Days.Delete(ctx, tripID, dayID); err != nil {
			return err
		}
		return r.Days.Renumber(ctx, tripID)
	})
	if err != nil {
		return fmt.Errorf("service.DayService.Delete: %w", err)
	}
	return nil
}
