package docstore

import (
	"context"

	"github.com/yclin/travel-planner/internal/domain"
)

// docChecklistRepo implements repo.ChecklistRepo over trip documents.
type docChecklistRepo struct {
	s runner
}

func (r *docChecklistRepo) Create(_ context.Context, cl domain.Checklist) (domain.Checklist, error) {
	err := r.s.mutate(func(st *state) error {
		doc, err := st.trip(cl.TripID)
		if err != nil {
			return err
		}
		doc.Checklists = append(doc.Checklists, cl)
		st.markDirty(cl.TripID)
		return nil
	})
	if err != nil {
		return domain.Checklist{}, err
	}
	return cl, nil
}

func (r *docChecklistRepo) GetByID(_ context.Context, checklistID string) (domain.Checklist, error) {
	var cl domain.Checklist
	err := r.s.view(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasChecklist(d, checklistID) })
		if err != nil {
			return err
		}
		for _, c := range doc.Checklists {
			if c.ID == checklistID {
				cl = c
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return cl, err
}

func (r *docChecklistRepo) ListByTrip(_ context.Context, tripID string) ([]domain.Checklist, error) {
	var lists []domain.Checklist
	err := r.s.view(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		lists = append(lists, doc.Checklists...)
		return nil
	})
	return lists, err
}

func (r *docChecklistRepo) Delete(_ context.Context, checklistID string) error {
	return r.s.mutate(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasChecklist(d, checklistID) })
		if err != nil {
			return err
		}
		doc.Checklists = deleteWhere(doc.Checklists, func(c domain.Checklist) bool { return c.ID == checklistID })
		doc.Items = deleteWhere(doc.Items, func(it domain.ChecklistItem) bool { return it.ChecklistID == checklistID })
		st.markDirty(doc.Trip.ID)
		return nil
	})
}

func hasChecklist(doc *tripDoc, checklistID string) bool {
	for _, c := range doc.Checklists {
		if c.ID == checklistID {
			return true
		}
	}
	return false
}

// docItemRepo implements repo.ItemRepo over trip documents.
type docItemRepo struct {
	s runner
}

func (r *docItemRepo) Create(_ context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	err := r.s.mutate(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasChecklist(d, item.ChecklistID) })
		if err != nil {
			return err
		}
		doc.Items = append(doc.Items, item)
		st.markDirty(doc.Trip.ID)
		return nil
	})
	if err != nil {
		return domain.ChecklistItem{}, err
	}
	return item, nil
}

func (r *docItemRepo) GetByID(_ context.Context, itemID string) (domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	err := r.s.view(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasItem(d, itemID) })
		if err != nil {
			return err
		}
		for _, it := range doc.Items {
			if it.ID == itemID {
				item = it
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return item, err
}

func (r *docItemRepo) ListByTrip(_ context.Context, tripID string) ([]domain.ChecklistItem, error) {
	var items []domain.ChecklistItem
	err := r.s.view(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		items = append(items, doc.Items...)
		return nil
	})
	return items, err
}

func (r *docItemRepo) Update(_ context.Context, itemID string, p domain.ItemPatch) (domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	err := r.s.mutate(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasItem(d, itemID) })
		if err != nil {
			return err
		}
		for i := range doc.Items {
			if doc.Items[i].ID != itemID {
				continue
			}
			applyString(&doc.Items[i].Text, p.Text)
			applyBool(&doc.Items[i].Checked, p.Checked)
			item = doc.Items[i]
			st.markDirty(doc.Trip.ID)
			return nil
		}
		return domain.ErrNotFound
	})
	return item, err
}

func (r *docItemRepo) Delete(_ context.Context, itemID string) error {
	return r.s.mutate(func(st *state) error {
		doc, err := st.findOwner(func(d *tripDoc) bool { return hasItem(d, itemID) })
		if err != nil {
			return err
		}
		doc.Items = deleteWhere(doc.Items, func(it domain.ChecklistItem) bool { return it.ID == itemID })
		st.markDirty(doc.Trip.ID)
		return nil
	})
}

func hasItem(doc *tripDoc, itemID string) bool {
	for _, it := range doc.Items {
		if it.ID == itemID {
			return true
		}
	}
	return false
}
