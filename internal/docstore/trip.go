package docstore

import (
	"context"
	"sort"

	"github.com/yclin/travel-planner/internal/domain"
)

// docTripRepo implements repo.TripRepo over trip documents.
type docTripRepo struct {
	s runner
}

func (r *docTripRepo) Create(_ context.Context, trip domain.Trip) (domain.Trip, error) {
	err := r.s.mutate(func(st *state) error {
		st.docs[trip.ID] = &tripDoc{Trip: trip}
		st.markDirty(trip.ID)
		return nil
	})
	if err != nil {
		return domain.Trip{}, err
	}
	return trip, nil
}

func (r *docTripRepo) GetByID(_ context.Context, id string) (domain.Trip, error) {
	var trip domain.Trip
	err := r.s.view(func(st *state) error {
		doc, err := st.trip(id)
		if err != nil {
			return err
		}
		trip = doc.Trip
		return nil
	})
	return trip, err
}

func (r *docTripRepo) List(_ context.Context) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := r.s.view(func(st *state) error {
		ids, err := st.tripIDs()
		if err != nil {
			return err
		}
		for _, id := range ids {
			doc, err := st.trip(id)
			if err != nil {
				return err
			}
			trips = append(trips, doc.Trip)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].CreatedAt.After(trips[j].CreatedAt)
	})
	return trips, nil
}

func (r *docTripRepo) Update(_ context.Context, id string, p domain.TripPatch) (domain.Trip, error) {
	var trip domain.Trip
	err := r.s.mutate(func(st *state) error {
		doc, err := st.trip(id)
		if err != nil {
			return err
		}
		applyString(&doc.Trip.Title, p.Title)
		applyString(&doc.Trip.Destination, p.Destination)
		applyString(&doc.Trip.StartDate, p.StartDate)
		applyString(&doc.Trip.EndDate, p.EndDate)
		applyString(&doc.Trip.Currency, p.Currency)
		trip = doc.Trip
		st.markDirty(id)
		return nil
	})
	return trip, err
}

func (r *docTripRepo) Delete(_ context.Context, id string) error {
	return r.s.mutate(func(st *state) error {
		if _, err := st.trip(id); err != nil {
			return err
		}
		st.markDeleted(id)
		return nil
	})
}

// applyString overwrites dst when the patch field is set.
func applyString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// applyBool overwrites dst when the patch field is set.
func applyBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}
