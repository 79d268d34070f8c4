package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yclin/travel-planner/internal/domain"
	"github.com/yclin/travel-planner/internal/id"
	"github.com/yclin/travel-planner/internal/repo"
)

// MemberService implements business logic for Member operations. Members
// are global; trip membership is a link, not ownership. Removing a member
// from a trip (or deactivating them) also clears the member off any tasks,
// so a bundle never shows an assignee who is no longer on the trip.
type MemberService struct {
	store repo.Store
}

// NewMemberService constructs a MemberService backed by the provided store.
func NewMemberService(store repo.Store) *MemberService {
	return &MemberService{store: store}
}

// Create registers a new member. Name is required; new members start active.
func (s *MemberService) Create(ctx context.Context, name, role, email string) (domain.Member, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Member{}, fmt.Errorf("service.MemberService.Create: name is required: %w", domain.ErrValidation)
	}

	member := domain.Member{
		ID:        id.New("mem"),
		Name:      name,
		Role:      strings.TrimSpace(role),
		Email:     strings.TrimSpace(email),
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.store.Repos().Members.Create(ctx, member); err != nil {
		return domain.Member{}, fmt.Errorf("service.MemberService.Create: %w", err)
	}
	return member, nil
}

// GetByID returns a single member by ID.
func (s *MemberService) GetByID(ctx context.Context, memberID string) (domain.Member, error) {
	member, err := s.store.Repos().Members.GetByID(ctx, memberID)
	if err != nil {
		return domain.Member{}, fmt.Errorf("service.MemberService.GetByID: %w", err)
	}
	return member, nil
}

// List returns members in creation order, optionally only active ones.
// Always returns a non-nil slice.
func (s *MemberService) List(ctx context.Context, activeOnly bool) ([]domain.Member, error) {
	members, err := s.store.Repos().Members.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("service.MemberService.List: %w", err)
	}
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

// Update applies a typed patch to a member. A name set to blank is
// rejected. Deactivating a member also unassigns them from every task in
// every trip, in the same transaction.
func (s *MemberService) Update(ctx context.Context, memberID string, p domain.MemberPatch) (domain.Member, error) {
	if p.IsZero() {
		return s.GetByID(ctx, memberID)
	}
	if p.Name != nil {
		v := strings.TrimSpace(*p.Name)
		if v == "" {
			return domain.Member{}, fmt.Errorf("service.MemberService.Update: name cannot be blank: %w", domain.ErrValidation)
		}
		p.Name = &v
	}

	var member domain.Member
	err := s.store.Atomic(ctx, func(r repo.Repos) error {
		var err error
		member, err = r.Members.Update(ctx, memberID, p)
		if err != nil {
			return err
		}
		if p.Active != nil && !*p.Active {
			return r.Tasks.UnassignEverywhere(ctx, memberID)
		}
		return nil
	})
	if err != nil {
		return domain.Member{}, fmt.Errorf("service.MemberService.Update: %w", err)
	}
	return member, nil
}

// SetActive flips a member's active flag. Shorthand for Update with only
// Active set, so deactivation carries the same task unassignment.
func (s *MemberService) SetActive(ctx context.Context, memberID string, active bool) (domain.Member, error) {
	return s.Update(ctx, memberID, domain.MemberPatch{Active: &active})
}

// AddToTrip links a member to a trip. Linking twice is a no-op.
func (s *MemberService) AddToTrip(ctx context.Context, tripID, memberID string) error {
	r := s.store.Repos()
	if _, err := r.Trips.GetByID(ctx, tripID); err != nil {
		return fmt.Errorf("service.MemberService.AddToTrip: %w", err)
	}
	if _, err := r.Members.GetByID(ctx, memberID); err != nil {
		return fmt.Errorf("service.MemberService.AddToTrip: %w", err)
	}
	if err := r.Members.Link(ctx, tripID, memberID); err != nil {
		return fmt.Errorf("service.MemberService.AddToTrip: %w", err)
	}
	return nil
}

// RemoveFromTrip unlinks a member from a trip and unassigns them from every
// task in that trip, atomically. The member record itself survives, as do
// their links to other trips. Removing a member who was never linked
// succeeds — the end state is what was asked for.
func (s *MemberService) RemoveFromTrip(ctx context.Context, tripID, memberID string) error {
	err := s.store.Atomic(ctx, func(r repo.Repos) error {
		if err := r.Members.Unlink(ctx, tripID, memberID); err != nil {
			return err
		}
		return r.Tasks.Unassign(ctx, tripID, memberID)
	})
	if err != nil {
		return fmt.Errorf("service.MemberService.RemoveFromTrip: %w", err)
	}
	return nil
}
