package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/yclin/travel-planner/internal/domain"
)

// EventRepo defines the persistence operations for Events.
type EventRepo interface {
	// Create inserts a new event. The service supplies ID and CreatedAt.
	Create(ctx context.Context, event domain.Event) (domain.Event, error)

	// GetByID retrieves a single event by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, eventID string) (domain.Event, error)

	// ListByTrip returns all events of a trip ordered by day, then time
	// ascending — the order the bundle assembler needs.
	ListByTrip(ctx context.Context, tripID string) ([]domain.Event, error)

	// Update applies the set fields of the patch (already coerced by the
	// service: category normalized, cost non-negative) to an event.
	// Returns domain.ErrNotFound if the event does not exist.
	Update(ctx context.Context, eventID string, p domain.EventPatch) (domain.Event, error)

	// Delete removes an event by ID, scoped to the given trip; the schema
	// cascades to the event's tasks.
	// Returns domain.ErrNotFound if no such event exists under that trip.
	Delete(ctx context.Context, tripID, eventID string) error
}

// pgEventRepo is the Postgres implementation of EventRepo.
type pgEventRepo struct {
	db db
}

// NewEventRepo constructs an EventRepo backed by the provided db connection.
func NewEventRepo(db db) EventRepo {
	return &pgEventRepo{db: db}
}

const eventCols = `event_id, trip_id, day_id, time, title, location, category, cost, notes, tags, created_at`

func (r *pgEventRepo) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	const q = `
		INSERT INTO events (event_id, trip_id, day_id, time, title, location, category, cost, notes, tags, created_at)
		VALUES (@event_id, @trip_id, @day_id, @time, @title, @location, @category, @cost, @notes, @tags, @created_at)
		RETURNING ` + eventCols

	args := pgx.NamedArgs{
		"event_id":   event.ID,
		"trip_id":    event.TripID,
		"day_id":     event.DayID,
		"time":       event.Time,
		"title":      event.Title,
		"location":   event.Location,
		"category":   string(event.Category),
		"cost":       event.Cost.String(), // NUMERIC accepts the text form
		"notes":      event.Notes,
		"tags":       event.Tags,
		"created_at": event.CreatedAt,
	}

	result, err := scanEvent(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) GetByID(ctx context.Context, eventID string) (domain.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events WHERE event_id = @event_id`

	result, err := scanEvent(r.db.QueryRow(ctx, q, pgx.NamedArgs{"event_id": eventID}))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) ListByTrip(ctx context.Context, tripID string) ([]domain.Event, error) {
	const q = `SELECT ` + eventCols + ` FROM events WHERE trip_id = @trip_id ORDER BY day_id, time ASC, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.EventRepo.ListByTrip: scan: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.EventRepo.ListByTrip: rows: %w", err)
	}
	return events, nil
}

func (r *pgEventRepo) Update(ctx context.Context, eventID string, p domain.EventPatch) (domain.Event, error) {
	const q = `
		UPDATE events
		SET time     = COALESCE(@time, time),
		    title    = COALESCE(@title, title),
		    location = COALESCE(@location, location),
		    category = COALESCE(@category, category),
		    cost     = COALESCE(@cost, cost),
		    notes    = COALESCE(@notes, notes),
		    tags     = COALESCE(@tags, tags)
		WHERE event_id = @event_id
		RETURNING ` + eventCols

	// Cost arrives on the patch as free text. CoerceCost is idempotent, so
	// running it here keeps the non-negative invariant even for callers
	// that bypass the service. The canonical string form goes to NUMERIC.
	var cost *string
	if p.Cost != nil {
		c := domain.CoerceCost(*p.Cost).String()
		cost = &c
	}

	args := pgx.NamedArgs{
		"event_id": eventID,
		"time":     p.Time,
		"title":    p.Title,
		"location": p.Location,
		"category": p.Category,
		"cost":     cost,
		"notes":    p.Notes,
		"tags":     p.Tags,
	}

	result, err := scanEvent(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Event{}, fmt.Errorf("repo.EventRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgEventRepo) Delete(ctx context.Context, tripID, eventID string) error {
	const q = `DELETE FROM events WHERE trip_id = @trip_id AND event_id = @event_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "event_id": eventID})
	if err != nil {
		return fmt.Errorf("repo.EventRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.EventRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanEvent maps a single database row into a domain.Event.
// cost comes back as NUMERIC and goes through pgtype before decimal.
func scanEvent(s scanner) (domain.Event, error) {
	var (
		e    domain.Event
		cost pgtype.Numeric
	)
	err := s.Scan(&e.ID, &e.TripID, &e.DayID, &e.Time, &e.Title, &e.Location,
		&e.Category, &cost, &e.Notes, &e.Tags, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Event{}, domain.ErrNotFound
		}
		return domain.Event{}, err
	}
	if cost.Valid {
		e.Cost = decimal.NewFromBigInt(cost.Int, cost.Exp)
	}
	return e, nil
}
