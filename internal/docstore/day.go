package docstore

import (
	"context"
	"sort"

	"github.com/yclin/travel-planner/internal/domain"
)

// docDayRepo implements repo.DayRepo over trip documents. Unlike the
// Postgres backing there are no FK cascades here, so Delete removes the
// day's events and their tasks by hand — same order the original schema
// enforces.
type docDayRepo struct {
	s runner
}

func (r *docDayRepo) Create(_ context.Context, day domain.Day) (domain.Day, error) {
	err := r.s.mutate(func(st *state) error {
		doc, err := st.trip(day.TripID)
		if err != nil {
			return err
		}
		doc.Days = append(doc.Days, day)
		st.markDirty(day.TripID)
		return nil
	})
	if err != nil {
		return domain.Day{}, err
	}
	return day, nil
}

func (r *docDayRepo) GetByID(_ context.Context, dayID string) (domain.Day, error) {
	var day domain.Day
	err := r.s.view(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasDay(d, dayID) })
		if err != nil {
			return err
		}
		for _, d := range doc.Days {
			if d.ID == dayID {
				day = d
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return day, err
}

func (r *docDayRepo) GetByTripAndNo(_ context.Context, tripID string, dayNo int) (domain.Day, error) {
	var day domain.Day
	err := r.s.view(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		for _, d := range doc.Days {
			if d.DayNo == dayNo {
				day = d
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return day, err
}

func (r *docDayRepo) ListByTrip(_ context.Context, tripID string) ([]domain.Day, error) {
	var days []domain.Day
	err := r.s.view(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		days = append(days, doc.Days...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(days, func(i, j int) bool { return days[i].DayNo < days[j].DayNo })
	return days, nil
}

func (r *docDayRepo) MaxDayNo(_ context.Context, tripID string) (int, error) {
	max := 0
	err := r.s.view(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		for _, d := range doc.Days {
			if d.DayNo > max {
				max = d.DayNo
			}
		}
		return nil
	})
	return max, err
}

func (r *docDayRepo) Update(_ context.Context, dayID string, p domain.DayPatch) (domain.Day, error) {
	var day domain.Day
	err := r.s.mutate(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasDay(d, dayID) })
		if err != nil {
			return err
		}
		for i := range doc.Days {
			if doc.Days[i].ID == dayID {
				applyString(&doc.Days[i].Date, p.Date)
				applyString(&doc.Days[i].Note, p.Note)
				day = doc.Days[i]
				st.markDirty(doc.Trip.ID)
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return day, err
}

func (r *docDayRepo) Delete(_ context.Context, tripID, dayID string) error {
	return r.s.mutate(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		found := false
		doc.Days = deleteWhere(doc.Days, func(d domain.Day) bool {
			if d.ID == dayID {
				found = true
				return true
			}
			return false
		})
		if !found {
			return domain.ErrNotFound
		}

		// Cascade: drop the day's events, then tasks hanging off them.
		gone := make(map[string]bool)
		doc.Events = deleteWhere(doc.Events, func(e domain.Event) bool {
			if e.DayID == dayID {
				gone[e.ID] = true
				return true
			}
			return false
		})
		doc.Tasks = deleteWhere(doc.Tasks, func(t domain.Task) bool { return gone[t.EventID] })

		st.markDirty(tripID)
		return nil
	})
}

func (r *docDayRepo) Renumber(_ context.Context, tripID string) error {
	return r.s.mutate(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		sort.SliceStable(doc.Days, func(i, j int) bool { return doc.Days[i].DayNo < doc.Days[j].DayNo })
		for i := range doc.Days {
			doc.Days[i].DayNo = i + 1
		}
		st.markDirty(tripID)
		return nil
	})
}

func hasDay(doc *tripDoc, dayID string) bool {
	for _, d := range doc.Days {
		if d.ID == dayID {
			return true
		}
	}
	return false
}

// deleteWhere returns s without the elements matching del, preserving order.
func deleteWhere[T any](s []T, del func(T) bool) []T {
	out := s[:0]
	for _, v := range s {
		if !del(v) {
			out = append(out, v)
		}
	}
	return out
}
