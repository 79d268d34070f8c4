package docstore

import (
	"context"
	"sort"

	"github.com/yclin/travel-planner/internal/domain"
)

// docEventRepo implements repo.EventRepo over trip documents.
type docEventRepo struct {
	s runner
}

func (r *docEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	err := r.s.mutate(func(st *state) error {
		doc, err := st.trip(event.TripID)
		if err != nil {
			return err
		}
		doc.Events = append(doc.Events, event)
		st.markDirty(event.TripID)
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

func (r *docEventRepo) GetByID(_ context.Context, eventID string) (domain.Event, error) {
	var event domain.Event
	err := r.s.view(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasEvent(d, eventID) })
		if err != nil {
			return err
		}
		for _, e := range doc.Events {
			if e.ID == eventID {
				event = e
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return event, err
}

func (r *docEventRepo) ListByTrip(_ context.Context, tripID string) ([]domain.Event, error) {
	var events []domain.Event
	err := r.s.view(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		events = append(events, doc.Events...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Same order the relational backing produces: by day, then time.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].DayID != events[j].DayID {
			return events[i].DayID < events[j].DayID
		}
		if events[i].Time != events[j].Time {
			return events[i].Time < events[j].Time
		}
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

func (r *docEventRepo) Update(_ context.Context, eventID string, p domain.EventPatch) (domain.Event, error) {
	var event domain.Event
	err := r.s.mutate(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasEvent(d, eventID) })
		if err != nil {
			return err
		}
		for i := range doc.Events {
			if doc.Events[i].ID != eventID {
				continue
			}
			e := &doc.Events[i]
			applyString(&e.Time, p.Time)
			applyString(&e.Title, p.Title)
			applyString(&e.Location, p.Location)
			if p.Category != nil {
				e.Category = domain.NormalizeCategory(*p.Category)
			}
			if p.Cost != nil {
				e.Cost = domain.CoerceCost(*p.Cost)
			}
			applyString(&e.Notes, p.Notes)
			applyString(&e.Tags, p.Tags)
			event = *e
			st.markDirty(doc.Trip.ID)
			return nil
		}
		return domain.ErrNotFound
	})
	return event, err
}

func (r *docEventRepo) Delete(_ context.Context, tripID, eventID string) error {
	return r.s.mutate(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		found := false
		doc.Events = deleteWhere(doc.Events, func(e domain.Event) bool {
			if e.ID == eventID {
				found = true
				return true
			}
			return false
		})
		if !found {
			return domain.ErrNotFound
		}
		doc.Tasks = deleteWhere(doc.Tasks, func(t domain.Task) bool { return t.EventID == eventID })
		st.markDirty(tripID)
		return nil
	})
}

func hasEvent(doc *tripDoc, eventID string) bool {
	for _, e := range doc.Events {
		if e.ID == eventID {
			return true
		}
	}
	return false
}
