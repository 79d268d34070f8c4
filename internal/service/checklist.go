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

// ChecklistService implements business logic for checklists and their items.
type ChecklistService struct {
	store repo.Store
}

// NewChecklistService constructs a ChecklistService backed by the store.
func NewChecklistService(store repo.Store) *ChecklistService {
	return &ChecklistService{store: store}
}

// Add creates a checklist on a trip. A blank title falls back to "New list";
// a blank list key falls back to "custom".
func (s *ChecklistService) Add(ctx context.Context, tripID, listKey, title string) (domain.Checklist, error) {
	if _, err := s.store.Repos().Trips.GetByID(ctx, tripID); err != nil {
		return domain.Checklist{}, fmt.Errorf("service.ChecklistService.Add: %w", err)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = "New list"
	}
	listKey = strings.TrimSpace(listKey)
	if listKey == "" {
		listKey = "custom"
	}

	cl := domain.Checklist{
		ID:        id.New("cl"),
		TripID:    tripID,
		ListKey:   listKey,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.store.Repos().Checklists.Create(ctx, cl); err != nil {
		return domain.Checklist{}, fmt.Errorf("service.ChecklistService.Add: %w", err)
	}
	return cl, nil
}

// Delete removes a checklist and all its items.
func (s *ChecklistService) Delete(ctx context.Context, checklistID string) error {
	err := s.store.Atomic(ctx, func(r repo.Repos) error {
		return r.Checklists.Delete(ctx, checklistID)
	})
	if err != nil {
		return fmt.Errorf("service.ChecklistService.Delete: %w", err)
	}
	return nil
}

// AddItem appends an unchecked item to a checklist. Text is required.
func (s *ChecklistService) AddItem(ctx context.Context, checklistID, text string) (domain.ChecklistItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChecklistItem{}, fmt.Errorf("service.ChecklistService.AddItem: text is required: %w", domain.ErrValidation)
	}
	if _, err := s.store.Repos().Checklists.GetByID(ctx, checklistID); err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("service.ChecklistService.AddItem: %w", err)
	}

	item := domain.ChecklistItem{
		ID:          id.New("it"),
		ChecklistID: checklistID,
		Text:        text,
		Checked:     false,
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.store.Repos().Items.Create(ctx, item); err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("service.ChecklistService.AddItem: %w", err)
	}
	return item, nil
}

// UpdateItem applies a typed patch to a checklist item.
func (s *ChecklistService) UpdateItem(ctx context.Context, itemID string, p domain.ItemPatch) (domain.ChecklistItem, error) {
	if p.IsZero() {
		item, err := s.store.Repos().Items.GetByID(ctx, itemID)
		if err != nil {
			return domain.ChecklistItem{}, fmt.Errorf("service.ChecklistService.UpdateItem: %w", err)
		}
		return item, nil
	}

	item, err := s.store.Repos().Items.Update(ctx, itemID, p)
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("service.ChecklistService.UpdateItem: %w", err)
	}
	return item, nil
}

// DeleteItem removes a checklist item.
func (s *ChecklistService) DeleteItem(ctx context.Context, itemID string) error {
	if err := s.store.Repos().Items.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("service.ChecklistService.DeleteItem: %w", err)
	}
	return nil
}
