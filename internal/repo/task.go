package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yclin/travel-planner/internal/domain"
)

// TaskRepo defines the persistence operations for Tasks, including the
// weak-relation maintenance: unassigning a member's tasks is an indexed
// UPDATE here, not a scan in the service.
type TaskRepo interface {
	// Create inserts a new task. The service supplies ID and CreatedAt.
	Create(ctx context.Context, task domain.Task) (domain.Task, error)

	// GetByID retrieves a single task by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, taskID string) (domain.Task, error)

	// ListByTrip returns all tasks of a trip in insertion order, with
	// AssigneeName resolved via the members table.
	ListByTrip(ctx context.Context, tripID string) ([]domain.Task, error)

	// Update applies the set fields of the patch (already normalized by
	// the service) to a task. Unassign clears assignee_id.
	// Returns domain.ErrNotFound if the task does not exist.
	Update(ctx context.Context, taskID string, p domain.TaskPatch) (domain.Task, error)

	// Delete removes a task by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, taskID string) error

	// Unassign nulls assignee_id on all of the member's tasks within one
	// trip. The tasks themselves survive.
	Unassign(ctx context.Context, tripID, memberID string) error

	// UnassignEverywhere nulls assignee_id on all of the member's tasks
	// across every trip (used on member deactivation).
	UnassignEverywhere(ctx context.Context, memberID string) error
}

// pgTaskRepo is the Postgres implementation of TaskRepo.
type pgTaskRepo struct {
	db db
}

// NewTaskRepo constructs a TaskRepo backed by the provided db connection.
func NewTaskRepo(db db) TaskRepo {
	return &pgTaskRepo{db: db}
}

const taskCols = `task_id, trip_id, event_id, text, status, assignee_id, due_date, priority, created_at`

func (r *pgTaskRepo) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	const q = `
		INSERT INTO tasks (task_id, trip_id, event_id, text, status, assignee_id, due_date, priority, created_at)
		VALUES (@task_id, @trip_id, @event_id, @text, @status, @assignee_id, @due_date, @priority, @created_at)
		RETURNING ` + taskCols

	args := pgx.NamedArgs{
		"task_id":     task.ID,
		"trip_id":     task.TripID,
		"event_id":    task.EventID,
		"text":        task.Text,
		"status":      string(task.Status),
		"assignee_id": task.AssigneeID, // nil becomes NULL
		"due_date":    task.DueDate,
		"priority":    task.Priority,
		"created_at":  task.CreatedAt,
	}

	result, err := scanTask(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Task{}, fmt.Errorf("repo.TaskRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTaskRepo) GetByID(ctx context.Context, taskID string) (domain.Task, error) {
	const q = `SELECT ` + taskCols + ` FROM tasks WHERE task_id = @task_id`

	result, err := scanTask(r.db.QueryRow(ctx, q, pgx.NamedArgs{"task_id": taskID}))
	if err != nil {
		return domain.Task{}, fmt.Errorf("repo.TaskRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByTrip resolves assignee display names with a LEFT JOIN so tasks with
// a dangling or empty assignee still come back (with an empty name).
func (r *pgTaskRepo) ListByTrip(ctx context.Context, tripID string) ([]domain.Task, error) {
	const q = `
		SELECT tk.task_id, tk.trip_id, tk.event_id, tk.text, tk.status,
		       tk.assignee_id, tk.due_date, tk.priority, tk.created_at,
		       COALESCE(m.name, '') AS assignee_name
		FROM tasks tk
		LEFT JOIN members m ON m.member_id = tk.assignee_id
		WHERE tk.trip_id = @trip_id
		ORDER BY tk.created_at ASC, tk.task_id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TaskRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		err := rows.Scan(&t.ID, &t.TripID, &t.EventID, &t.Text, &t.Status,
			&t.AssigneeID, &t.DueDate, &t.Priority, &t.CreatedAt, &t.AssigneeName)
		if err != nil {
			return nil, fmt.Errorf("repo.TaskRepo.ListByTrip: scan: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TaskRepo.ListByTrip: rows: %w", err)
	}
	return tasks, nil
}

// Update distinguishes "clear the assignee" (Unassign) from "leave the
// assignee alone" (nil AssigneeID) with a CASE around the COALESCE idiom.
func (r *pgTaskRepo) Update(ctx context.Context, taskID string, p domain.TaskPatch) (domain.Task, error) {
	const q = `
		UPDATE tasks
		SET text        = COALESCE(@text, text),
		    status      = COALESCE(@status, status),
		    assignee_id = CASE WHEN @unassign THEN NULL ELSE COALESCE(@assignee_id, assignee_id) END,
		    due_date    = COALESCE(@due_date, due_date),
		    priority    = COALESCE(@priority, priority)
		WHERE task_id = @task_id
		RETURNING ` + taskCols

	args := pgx.NamedArgs{
		"task_id":     taskID,
		"text":        p.Text,
		"status":      p.Status,
		"assignee_id": p.AssigneeID,
		"unassign":    p.Unassign,
		"due_date":    p.DueDate,
		"priority":    p.Priority,
	}

	result, err := scanTask(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Task{}, fmt.Errorf("repo.TaskRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTaskRepo) Delete(ctx context.Context, taskID string) error {
	const q = `DELETE FROM tasks WHERE task_id = @task_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return fmt.Errorf("repo.TaskRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TaskRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTaskRepo) Unassign(ctx context.Context, tripID, memberID string) error {
	const q = `
		UPDATE tasks SET assignee_id = NULL
		WHERE trip_id = @trip_id AND assignee_id = @member_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "member_id": memberID}); err != nil {
		return fmt.Errorf("repo.TaskRepo.Unassign: %w", err)
	}
	return nil
}

func (r *pgTaskRepo) UnassignEverywhere(ctx context.Context, memberID string) error {
	const q = `UPDATE tasks SET assignee_id = NULL WHERE assignee_id = @member_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"member_id": memberID}); err != nil {
		return fmt.Errorf("repo.TaskRepo.UnassignEverywhere: %w", err)
	}
	return nil
}

// scanTask maps a single database row into a domain.Task.
func scanTask(s scanner) (domain.Task, error) {
	var t domain.Task
	err := s.Scan(&t.ID, &t.TripID, &t.EventID, &t.Text, &t.Status,
		&t.AssigneeID, &t.DueDate, &t.Priority, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Task{}, domain.ErrNotFound
		}
		return domain.Task{}, err
	}
	return t, nil
}
