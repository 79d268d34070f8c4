package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yclin/travel-planner/internal/dates"
	"github.com/yclin/travel-planner/internal/domain"
	"github.com/yclin/travel-planner/internal/id"
	"github.com/yclin/travel-planner/internal/repo"
)

// TaskService implements business logic for Task operations.
type TaskService struct {
	store repo.Store
}

// NewTaskService constructs a TaskService backed by the provided store.
func NewTaskService(store repo.Store) *TaskService {
	return &TaskService{store: store}
}

// Add creates a task under an event. Text is the only required field; the
// task starts as todo with default priority. An assignee may be attached
// at creation time.
func (s *TaskService) Add(ctx context.Context, tripID, eventID, text string, assigneeID *string) (domain.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Task{}, fmt.Errorf("service.TaskService.Add: text is required: %w", domain.ErrValidation)
	}

	event, err := s.store.Repos().Events.GetByID(ctx, eventID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.Add: %w", err)
	}
	if event.TripID != tripID {
		return domain.Task{}, fmt.Errorf("service.TaskService.Add: event in different trip: %w", domain.ErrNotFound)
	}

	task := domain.Task{
		ID:         id.New("tk"),
		TripID:     tripID,
		EventID:    eventID,
		Text:       text,
		Status:     domain.StatusTodo,
		AssigneeID: assigneeID,
		Priority:   domain.DefaultPriority,
		CreatedAt:  time.Now().UTC(),
	}
	if _, err := s.store.Repos().Tasks.Create(ctx, task); err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.Add: %w", err)
	}
	return task, nil
}

// GetByID returns a single task by ID.
func (s *TaskService) GetByID(ctx context.Context, taskID string) (domain.Task, error) {
	task, err := s.store.Repos().Tasks.GetByID(ctx, taskID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.GetByID: %w", err)
	}
	return task, nil
}

// Update applies a typed patch to a task. Status falls back to todo when
// unrecognized, priority clamps to 1..5, and due dates are normalized.
// Unassign wins over a set AssigneeID.
func (s *TaskService) Update(ctx context.Context, taskID string, p domain.TaskPatch) (domain.Task, error) {
	if p.IsZero() {
		return s.GetByID(ctx, taskID)
	}
	if p.Status != nil {
		v := string(domain.NormalizeStatus(*p.Status))
		p.Status = &v
	}
	if p.DueDate != nil {
		v := dates.Normalize(*p.DueDate)
		p.DueDate = &v
	}
	if p.Priority != nil {
		v := domain.ClampPriority(*p.Priority)
		p.Priority = &v
	}

	task, err := s.store.Repos().Tasks.Update(ctx, taskID, p)
	if err != nil {
		return domain.Task{}, fmt.Errorf("service.TaskService.Update: %w", err)
	}
	return task, nil
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, taskID string) error {
	if err := s.store.Repos().Tasks.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("service.TaskService.Delete: %w", err)
	}
	return nil
}
