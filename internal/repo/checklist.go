package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yclin/travel-planner/internal/domain"
)

// ChecklistRepo defines the persistence operations for Checklists.
type ChecklistRepo interface {
	// Create inserts a new checklist. The service supplies ID and CreatedAt.
	Create(ctx context.Context, cl domain.Checklist) (domain.Checklist, error)

	// GetByID retrieves a single checklist by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, checklistID string) (domain.Checklist, error)

	// ListByTrip returns all checklists of a trip ordered by created_at
	// ascending.
	ListByTrip(ctx context.Context, tripID string) ([]domain.Checklist, error)

	// Delete removes a checklist by ID; the schema cascades to its items.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, checklistID string) error
}

// ItemRepo defines the persistence operations for ChecklistItems.
type ItemRepo interface {
	// Create inserts a new item. The service supplies ID and CreatedAt.
	Create(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error)

	// GetByID retrieves a single item by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, itemID string) (domain.ChecklistItem, error)

	// ListByTrip returns all items belonging to the trip's checklists in
	// insertion order — the shape the bundle assembler needs.
	ListByTrip(ctx context.Context, tripID string) ([]domain.ChecklistItem, error)

	// Update applies the set fields of the patch to an item.
	// Returns domain.ErrNotFound if the item does not exist.
	Update(ctx context.Context, itemID string, p domain.ItemPatch) (domain.ChecklistItem, error)

	// Delete removes an item by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, itemID string) error
}

// pgChecklistRepo is the Postgres implementation of ChecklistRepo.
type pgChecklistRepo struct {
	db db
}

// NewChecklistRepo constructs a ChecklistRepo backed by the provided db connection.
func NewChecklistRepo(db db) ChecklistRepo {
	return &pgChecklistRepo{db: db}
}

const checklistCols = `checklist_id, trip_id, list_key, title, created_at`

func (r *pgChecklistRepo) Create(ctx context.Context, cl domain.Checklist) (domain.Checklist, error) {
	const q = `
		INSERT INTO checklists (checklist_id, trip_id, list_key, title, created_at)
		VALUES (@checklist_id, @trip_id, @list_key, @title, @created_at)
		RETURNING ` + checklistCols

	args := pgx.NamedArgs{
		"checklist_id": cl.ID,
		"trip_id":      cl.TripID,
		"list_key":     cl.ListKey,
		"title":        cl.Title,
		"created_at":   cl.CreatedAt,
	}

	result, err := scanChecklist(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("repo.ChecklistRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgChecklistRepo) GetByID(ctx context.Context, checklistID string) (domain.Checklist, error) {
	const q = `SELECT ` + checklistCols + ` FROM checklists WHERE checklist_id = @checklist_id`

	result, err := scanChecklist(r.db.QueryRow(ctx, q, pgx.NamedArgs{"checklist_id": checklistID}))
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("repo.ChecklistRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgChecklistRepo) ListByTrip(ctx context.Context, tripID string) ([]domain.Checklist, error) {
	const q = `SELECT ` + checklistCols + ` FROM checklists WHERE trip_id = @trip_id ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ChecklistRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var lists []domain.Checklist
	for rows.Next() {
		cl, err := scanChecklist(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ChecklistRepo.ListByTrip: scan: %w", err)
		}
		lists = append(lists, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ChecklistRepo.ListByTrip: rows: %w", err)
	}
	return lists, nil
}

func (r *pgChecklistRepo) Delete(ctx context.Context, checklistID string) error {
	const q = `DELETE FROM checklists WHERE checklist_id = @checklist_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"checklist_id": checklistID})
	if err != nil {
		return fmt.Errorf("repo.ChecklistRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ChecklistRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanChecklist maps a single database row into a domain.Checklist.
func scanChecklist(s scanner) (domain.Checklist, error) {
	var cl domain.Checklist
	err := s.Scan(&cl.ID, &cl.TripID, &cl.ListKey, &cl.Title, &cl.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Checklist{}, domain.ErrNotFound
		}
		return domain.Checklist{}, err
	}
	return cl, nil
}

// pgItemRepo is the Postgres implementation of ItemRepo.
type pgItemRepo struct {
	db db
}

// NewItemRepo constructs an ItemRepo backed by the provided db connection.
func NewItemRepo(db db) ItemRepo {
	return &pgItemRepo{db: db}
}

const itemCols = `item_id, checklist_id, text, checked, created_at`

func (r *pgItemRepo) Create(ctx context.Context, item domain.ChecklistItem) (domain.ChecklistItem, error) {
	const q = `
		INSERT INTO checklist_items (item_id, checklist_id, text, checked, created_at)
		VALUES (@item_id, @checklist_id, @text, @checked, @created_at)
		RETURNING ` + itemCols

	args := pgx.NamedArgs{
		"item_id":      item.ID,
		"checklist_id": item.ChecklistID,
		"text":         item.Text,
		"checked":      item.Checked,
		"created_at":   item.CreatedAt,
	}

	result, err := scanItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("repo.ItemRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) GetByID(ctx context.Context, itemID string) (domain.ChecklistItem, error) {
	const q = `SELECT ` + itemCols + ` FROM checklist_items WHERE item_id = @item_id`

	result, err := scanItem(r.db.QueryRow(ctx, q, pgx.NamedArgs{"item_id": itemID}))
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("repo.ItemRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) ListByTrip(ctx context.Context, tripID string) ([]domain.ChecklistItem, error) {
	const q = `
		SELECT i.item_id, i.checklist_id, i.text, i.checked, i.created_at
		FROM checklist_items i
		JOIN checklists c ON c.checklist_id = i.checklist_id
		WHERE c.trip_id = @trip_id
		ORDER BY i.created_at ASC, i.item_id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var items []domain.ChecklistItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ItemRepo.ListByTrip: scan: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ItemRepo.ListByTrip: rows: %w", err)
	}
	return items, nil
}

func (r *pgItemRepo) Update(ctx context.Context, itemID string, p domain.ItemPatch) (domain.ChecklistItem, error) {
	const q = `
		UPDATE checklist_items
		SET text    = COALESCE(@text, text),
		    checked = COALESCE(@checked, checked)
		WHERE item_id = @item_id
		RETURNING ` + itemCols

	args := pgx.NamedArgs{"item_id": itemID, "text": p.Text, "checked": p.Checked}

	result, err := scanItem(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("repo.ItemRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgItemRepo) Delete(ctx context.Context, itemID string) error {
	const q = `DELETE FROM checklist_items WHERE item_id = @item_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"item_id": itemID})
	if err != nil {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ItemRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanItem maps a single database row into a domain.ChecklistItem.
func scanItem(s scanner) (domain.ChecklistItem, error) {
	var it domain.ChecklistItem
	err := s.Scan(&it.ID, &it.ChecklistID, &it.Text, &it.Checked, &it.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ChecklistItem{}, domain.ErrNotFound
		}
		return domain.ChecklistItem{}, err
	}
	return it, nil
}
