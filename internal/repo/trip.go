package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yclin/travel-planner/internal/domain"
)

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the concrete backing,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Create inserts a new trip. The service supplies the ID and CreatedAt.
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip by its ID.
	// Returns domain.ErrNotFound if no trip with that ID exists.
	GetByID(ctx context.Context, id string) (domain.Trip, error)

	// List returns all trips ordered by created_at descending.
	List(ctx context.Context) ([]domain.Trip, error)

	// Update applies the set fields of the patch to an existing trip and
	// returns the updated record. The patch is assumed normalized (dates,
	// enums) by the service. Returns domain.ErrNotFound if the trip does
	// not exist.
	Update(ctx context.Context, id string, p domain.TripPatch) (domain.Trip, error)

	// Delete removes a trip by ID; the schema cascades to days, events,
	// tasks, checklists, items, and membership links.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id string) error
}

// pgTripRepo is the Postgres implementation of TripRepo.
type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripCols = `trip_id, trip_title, destination, start_date, end_date, currency, created_at`

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (trip_id, trip_title, destination, start_date, end_date, currency, created_at)
		VALUES (@trip_id, @trip_title, @destination, @start_date, @end_date, @currency, @created_at)
		RETURNING ` + tripCols

	args := pgx.NamedArgs{
		"trip_id":     trip.ID,
		"trip_title":  trip.Title,
		"destination": trip.Destination,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
		"currency":    trip.Currency,
		"created_at":  trip.CreatedAt,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id string) (domain.Trip, error) {
	const q = `SELECT ` + tripCols + ` FROM trips WHERE trip_id = @trip_id`

	result, err := scanTrip(r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": id}))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripCols + ` FROM trips ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.List: scan: %w", err)
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.List: rows: %w", err)
	}
	return trips, nil
}

// Update uses the COALESCE-on-NULL idiom: a nil patch field binds to SQL
// NULL and COALESCE keeps the stored value, so one static statement covers
// every field combination.
func (r *pgTripRepo) Update(ctx context.Context, id string, p domain.TripPatch) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET trip_title  = COALESCE(@trip_title, trip_title),
		    destination = COALESCE(@destination, destination),
		    start_date  = COALESCE(@start_date, start_date),
		    end_date    = COALESCE(@end_date, end_date),
		    currency    = COALESCE(@currency, currency)
		WHERE trip_id = @trip_id
		RETURNING ` + tripCols

	args := pgx.NamedArgs{
		"trip_id":     id,
		"trip_title":  p.Title,
		"destination": p.Destination,
		"start_date":  p.StartDate,
		"end_date":    p.EndDate,
		"currency":    p.Currency,
	}

	result, err := scanTrip(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Trip{}, fmt.Errorf("repo.TripRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM trips WHERE trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": id})
	if err != nil {
		return fmt.Errorf("repo.TripRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TripRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanTrip maps a single database row into a domain.Trip.
func scanTrip(s scanner) (domain.Trip, error) {
	var t domain.Trip
	err := s.Scan(&t.ID, &t.Title, &t.Destination, &t.StartDate, &t.EndDate, &t.Currency, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Trip{}, domain.ErrNotFound
		}
		return domain.Trip{}, err
	}
	return t, nil
}
