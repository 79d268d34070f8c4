package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yclin/travel-planner/internal/domain"
)

// DayRepo defines the persistence operations for Days.
// Write and single-read operations are scoped by tripID to enforce
// ownership. Renumber restores the contiguous 1..N day_no invariant and
// must run in the same transaction as the Delete that broke it.
type DayRepo interface {
	// Create inserts a new day. The service supplies ID, DayNo, CreatedAt.
	Create(ctx context.Context, day domain.Day) (domain.Day, error)

	// GetByID retrieves a single day by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, dayID string) (domain.Day, error)

	// GetByTripAndNo retrieves the day with the given day_no within a trip.
	// Returns domain.ErrNotFound if it does not exist.
	GetByTripAndNo(ctx context.Context, tripID string, dayNo int) (domain.Day, error)

	// ListByTrip returns all days of a trip ordered by day_no ascending.
	ListByTrip(ctx context.Context, tripID string) ([]domain.Day, error)

	// MaxDayNo returns the highest day_no in the trip, 0 when it has no days.
	MaxDayNo(ctx context.Context, tripID string) (int, error)

	// Update applies the set fields of the patch to an existing day.
	// Returns domain.ErrNotFound if the day does not exist.
	Update(ctx context.Context, dayID string, p domain.DayPatch) (domain.Day, error)

	// Delete removes a day by ID, scoped to the given trip; the schema
	// cascades to the day's events and their tasks. Callers must Renumber
	// afterwards, in the same transaction.
	// Returns domain.ErrNotFound if no such day exists under that trip.
	Delete(ctx context.Context, tripID, dayID string) error

	// Renumber rewrites day_no to the contiguous sequence 1..N following
	// the current day_no order.
	Renumber(ctx context.Context, tripID string) error
}

// pgDayRepo is the Postgres implementation of DayRepo.
type pgDayRepo struct {
	db db
}

// NewDayRepo constructs a DayRepo backed by the provided db connection.
func NewDayRepo(db db) DayRepo {
	return &pgDayRepo{db: db}
}

const dayCols = `day_id, trip_id, day_no, date, note, created_at`

func (r *pgDayRepo) Create(ctx context.Context, day domain.Day) (domain.Day, error) {
	const q = `
		INSERT INTO days (day_id, trip_id, day_no, date, note, created_at)
		VALUES (@day_id, @trip_id, @day_no, @date, @note, @created_at)
		RETURNING ` + dayCols

	args := pgx.NamedArgs{
		"day_id":     day.ID,
		"trip_id":    day.TripID,
		"day_no":     day.DayNo,
		"date":       day.Date,
		"note":       day.Note,
		"created_at": day.CreatedAt,
	}

	result, err := scanDay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) GetByID(ctx context.Context, dayID string) (domain.Day, error) {
	const q = `SELECT ` + dayCols + ` FROM days WHERE day_id = @day_id`

	result, err := scanDay(r.db.QueryRow(ctx, q, pgx.NamedArgs{"day_id": dayID}))
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) GetByTripAndNo(ctx context.Context, tripID string, dayNo int) (domain.Day, error) {
	const q = `SELECT ` + dayCols + ` FROM days WHERE trip_id = @trip_id AND day_no = @day_no`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID, "day_no": dayNo})
	result, err := scanDay(row)
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.GetByTripAndNo: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) ListByTrip(ctx context.Context, tripID string) ([]domain.Day, error) {
	const q = `SELECT ` + dayCols + ` FROM days WHERE trip_id = @trip_id ORDER BY day_no ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: %w", err)
	}
	defer rows.Close()

	var days []domain.Day
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DayRepo.ListByTrip: scan: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTrip: rows: %w", err)
	}
	return days, nil
}

func (r *pgDayRepo) MaxDayNo(ctx context.Context, tripID string) (int, error) {
	const q = `SELECT COALESCE(MAX(day_no), 0) FROM days WHERE trip_id = @trip_id`

	var max int
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"trip_id": tripID}).Scan(&max); err != nil {
		return 0, fmt.Errorf("repo.DayRepo.MaxDayNo: %w", err)
	}
	return max, nil
}

func (r *pgDayRepo) Update(ctx context.Context, dayID string, p domain.DayPatch) (domain.Day, error) {
	const q = `
		UPDATE days
		SET date = COALESCE(@date, date),
		    note = COALESCE(@note, note)
		WHERE day_id = @day_id
		RETURNING ` + dayCols

	args := pgx.NamedArgs{"day_id": dayID, "date": p.Date, "note": p.Note}

	result, err := scanDay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Day{}, fmt.Errorf("repo.DayRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) Delete(ctx context.Context, tripID, dayID string) error {
	const q = `DELETE FROM days WHERE trip_id = @trip_id AND day_id = @day_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "day_id": dayID})
	if err != nil {
		return fmt.Errorf("repo.DayRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DayRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// Renumber assigns ROW_NUMBER() over the current day_no order. The unique
// (trip_id, day_no) constraint is deferred, so the shuffle is legal inside
// the transaction.
func (r *pgDayRepo) Renumber(ctx context.Context, tripID string) error {
	const q = `
		UPDATE days d
		SET day_no = sub.rn
		FROM (
			SELECT day_id, ROW_NUMBER() OVER (ORDER BY day_no ASC) AS rn
			FROM days
			WHERE trip_id = @trip_id
		) sub
		WHERE d.day_id = sub.day_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID}); err != nil {
		return fmt.Errorf("repo.DayRepo.Renumber: %w", err)
	}
	return nil
}

// scanDay maps a single database row into a domain.Day.
func scanDay(s scanner) (domain.Day, error) {
	var d domain.Day
	err := s.Scan(&d.ID, &d.TripID, &d.DayNo, &d.Date, &d.Note, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Day{}, domain.ErrNotFound
		}
		return domain.Day{}, err
	}
	return d, nil
}
