package docstore

import (
	"context"
	"slices"

	"github.com/yclin/travel-planner/internal/domain"
)

// docMemberRepo implements repo.MemberRepo. Members live in a single
// registry document shared by every trip; the per-trip link is a list of
// member IDs inside the trip document.
type docMemberRepo struct {
	s runner
}

func (r *docMemberRepo) Create(_ context.Context, member domain.Member) (domain.Member, error) {
	err := r.s.mutate(func(st *state) error {
		ms, err := st.allMembers()
		if err != nil {
			return err
		}
		st.setMembers(append(ms, member))
		return nil
	})
	if err != nil {
		return domain.Member{}, err
	}
	return member, nil
}

func (r *docMemberRepo) GetByID(_ context.Context, memberID string) (domain.Member, error) {
	var member domain.Member
	err := r.s.view(func(st *state) error {
		ms, err := st.allMembers()
		if err != nil {
			return err
		}
		for _, m := range ms {
			if m.ID == memberID {
				member = m
				return nil
			}
		}
		return domain.ErrNotFound
	})
	return member, err
}

func (r *docMemberRepo) List(_ context.Context, activeOnly bool) ([]domain.Member, error) {
	var members []domain.Member
	err := r.s.view(func(st *state) error {
		ms, err := st.allMembers()
		if err != nil {
			return err
		}
		for _, m := range ms {
			if !activeOnly || m.Active {
				members = append(members, m)
			}
		}
		return nil
	})
	return members, err
}

func (r *docMemberRepo) ListByTrip(_ context.Context, tripID string) ([]domain.Member, error) {
	var members []domain.Member
	err := r.s.view(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		ms, err := st.allMembers()
		if err != nil {
			return err
		}
		linked := make(map[string]bool, len(doc.MemberIDs))
		for _, id := range doc.MemberIDs {
			linked[id] = true
		}
		// Registry order is creation order, which is the contract.
		for _, m := range ms {
			if linked[m.ID] && m.Active {
				members = append(members, m)
			}
		}
		return nil
	})
	return members, err
}

func (r *docMemberRepo) Update(_ context.Context, memberID string, p domain.MemberPatch) (domain.Member, error) {
	var member domain.Member
	err := r.s.mutate(func(st *state) error {
		ms, err := st.allMembers()
		if err != nil {
			return err
		}
		for i := range ms {
			if ms[i].ID != memberID {
				continue
			}
			applyString(&ms[i].Name, p.Name)
			applyString(&ms[i].Role, p.Role)
			applyString(&ms[i].Email, p.Email)
			applyBool(&ms[i].Active, p.Active)
			member = ms[i]
			st.setMembers(ms)
			return nil
		}
		return domain.ErrNotFound
	})
	return member, err
}

func (r *docMemberRepo) Link(_ context.Context, tripID, memberID string) error {
	return r.s.mutate(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		if slices.Contains(doc.MemberIDs, memberID) {
			return nil
		}
		doc.MemberIDs = append(doc.MemberIDs, memberID)
		st.markDirty(tripID)
		return nil
	})
}

func (r *docMemberRepo) Unlink(_ context.Context, tripID, memberID string) error {
	return r.s.mutate(func(st *state) error {
		doc, err := st.trip(tripID)
		if err != nil {
			return err
		}
		n := len(doc.MemberIDs)
		doc.MemberIDs = slices.DeleteFunc(doc.MemberIDs, func(id string) bool { return id == memberID })
		if len(doc.MemberIDs) != n {
			st.markDirty(tripID)
		}
		return nil
	})
}
