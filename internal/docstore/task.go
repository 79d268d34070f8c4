package docstore

import (
	"context"

	"github.com/yclin/travel-planner/internal/domain"
)

// docTaskRepo implements repo.TaskRepo over trip documents.
type docTaskRepo struct {
	s runner
}

func (r *docTaskRepo) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	err := r.s.mutate(func(st *state) error {
		doc, err := st.trip(task.TripID)
		if err != nil {
			return err
		}
		doc.Tasks = append(doc.Tasks, task)
		st.markDirty(task.TripID)
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (r *docTaskRepo) GetByID(_ context.Context, taskID string) (domain.Task, error) {
	var task domain.Task
	err := r.s.view(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasTask(d, taskID) })
		if err != nil {
			return err
		}
		for _, t := range doc.Tasks {
			if t.ID == taskID {
				task = t
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return task, err
}

// ListByTrip returns tasks in insertion order (document array order) with
// assignee names resolved from the member registry.
func (r *docTaskRepo) ListByTrip(_ context.Context, tripID string) ([]domain.Task, error) {
	var tasks []domain.Task
	err := r.s.view(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		members, err := st.allMembers()
		if err != nil {
			return err
		}
		names := make(map[string]string, len(members))
		for _, m := range members {
			names[m.ID] = m.Name
		}
		for _, t := range doc.Tasks {
			if t.AssigneeID != nil {
				t.AssigneeName = names[*t.AssigneeID]
			}
			tasks = append(tasks, t)
		}
		return nil
	})
	return tasks, err
}

func (r *docTaskRepo) Update(_ context.Context, taskID string, p domain.TaskPatch) (domain.Task, error) {
	var task domain.Task
	err := r.s.mutate(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasTask(d, taskID) })
		if err != nil {
			return err
		}
		for i := range doc.Tasks {
			if doc.Tasks[i].ID != taskID {
				continue
			}
			t := &doc.Tasks[i]
			applyString(&t.Text, p.Text)
			if p.Status != nil {
				t.Status = domain.NormalizeStatus(*p.Status)
			}
			switch {
			case p.Unassign:
				t.AssigneeID = nil
			case p.AssigneeID != nil:
				t.AssigneeID = p.AssigneeID
			}
			applyString(&t.DueDate, p.DueDate)
			if p.Priority != nil {
				t.Priority = domain.ClampPriority(*p.Priority)
			}
			task = *t
			st.markDirty(doc.Trip.ID)
			return nil
		}
		return domain.ErrNotFound
	})
	return task, err
}

func (r *docTaskRepo) Delete(_ context.Context, taskID string) error {
	return r.s.mutate(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasTask(d, taskID) })
		if err != nil {
			return err
		}
		doc.Tasks = deleteWhere(doc.Tasks, func(t domain.Task) bool { return t.ID == taskID })
		st.markDirty(doc.Trip.ID)
		return nil
	})
}

func (r *docTaskRepo) Unassign(_ context.Context, tripID, memberID string) error {
	return r.s.mutate(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		unassignIn(doc, memberID)
		st.markDirty(tripID)
		return nil
	})
}

func (r *docTaskRepo) UnassignEverywhere(_ context.Context, memberID string) error {
	return r.s.mutate(func(st *state) error {
		ids, err := st.tripIDs()
		if err != nil {
			return err
		}
		for _, id := range ids {
			doc, err := st.trip(id)
			if err != nil {
				return err
			}
			if unassignIn(doc, memberID) {
				st.markDirty(id)
			}
		}
		return nil
	})
}

// unassignIn nulls the assignee on the member's tasks in one document,
// reporting whether anything changed.
func unassignIn(doc *tripDoc, memberID string) bool {
	changed := false
	for i := range doc.Tasks {
		if doc.Tasks[i].AssigneeID != nil && *doc.Tasks[i].AssigneeID == memberID {
			doc.Tasks[i].AssigneeID = nil
			changed = true
		}
	}
	return changed
}

func hasTask(doc *tripDoc, taskID string) bool {
	for _, t := range doc.Tasks {
		if t.ID == taskID {
			return true
		}
	}
	return false
}
