package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yclin/travel-planner/internal/domain"
)

// MemberRepo defines the persistence operations for Members and the
// trip_members association table. Link and Unlink are idempotent, matching
// the association contract: re-linking is a no-op, unlinking a member who
// was never linked is a no-op.
type MemberRepo interface {
	// Create inserts a new member. The service supplies ID and CreatedAt.
	Create(ctx context.Context, member domain.Member) (domain.Member, error)

	// GetByID retrieves a single member by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetByID(ctx context.Context, memberID string) (domain.Member, error)

	// List returns all members ordered by created_at ascending,
	// optionally restricted to active ones.
	List(ctx context.Context, activeOnly bool) ([]domain.Member, error)

	// ListByTrip returns the active members linked to a trip, ordered by
	// created_at ascending.
	ListByTrip(ctx context.Context, tripID string) ([]domain.Member, error)

	// Update applies the set fields of the patch to a member.
	// Returns domain.ErrNotFound if the member does not exist.
	Update(ctx context.Context, memberID string, p domain.MemberPatch) (domain.Member, error)

	// Link associates a member with a trip. Idempotent.
	Link(ctx context.Context, tripID, memberID string) error

	// Unlink removes the association between a member and a trip.
	// Idempotent — unlinking an unlinked member is not an error.
	Unlink(ctx context.Context, tripID, memberID string) error
}

// pgMemberRepo is the Postgres implementation of MemberRepo.
type pgMemberRepo struct {
	db db
}

// NewMemberRepo constructs a MemberRepo backed by the provided db connection.
func NewMemberRepo(db db) MemberRepo {
	return &pgMemberRepo{db: db}
}

const memberCols = `member_id, name, role, email, active, created_at`

func (r *pgMemberRepo) Create(ctx context.Context, member domain.Member) (domain.Member, error) {
	const q = `
		INSERT INTO members (member_id, name, role, email, active, created_at)
		VALUES (@member_id, @name, @role, @email, @active, @created_at)
		RETURNING ` + memberCols

	args := pgx.NamedArgs{
		"member_id":  member.ID,
		"name":       member.Name,
		"role":       member.Role,
		"email":      member.Email,
		"active":     member.Active,
		"created_at": member.CreatedAt,
	}

	result, err := scanMember(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Member{}, fmt.Errorf("repo.MemberRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgMemberRepo) GetByID(ctx context.Context, memberID string) (domain.Member, error) {
	const q = `SELECT ` + memberCols + ` FROM members WHERE member_id = @member_id`

	result, err := scanMember(r.db.QueryRow(ctx, q, pgx.NamedArgs{"member_id": memberID}))
	if err != nil {
		return domain.Member{}, fmt.Errorf("repo.MemberRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgMemberRepo) List(ctx context.Context, activeOnly bool) ([]domain.Member, error) {
	const q = `
		SELECT ` + memberCols + ` FROM members
		WHERE active OR NOT @active_only
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"active_only": activeOnly})
	if err != nil {
		return nil, fmt.Errorf("repo.MemberRepo.List: %w", err)
	}
	defer rows.Close()
	return collectMembers(rows, "List")
}

func (r *pgMemberRepo) ListByTrip(ctx context.Context, tripID string) ([]domain.Member, error) {
	const q = `
		SELECT m.member_id, m.name, m.role, m.email, m.active, m.created_at
		FROM members m
		JOIN trip_members tm ON tm.member_id = m.member_id
		WHERE tm.trip_id = @trip_id AND m.active
		ORDER BY m.created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.MemberRepo.ListByTrip: %w", err)
	}
	defer rows.Close()
	return collectMembers(rows, "ListByTrip")
}

func (r *pgMemberRepo) Update(ctx context.Context, memberID string, p domain.MemberPatch) (domain.Member, error) {
	const q = `
		UPDATE members
		SET name   = COALESCE(@name, name),
		    role   = COALESCE(@role, role),
		    email  = COALESCE(@email, email),
		    active = COALESCE(@active, active)
		WHERE member_id = @member_id
		RETURNING ` + memberCols

	args := pgx.NamedArgs{
		"member_id": memberID,
		"name":      p.Name,
		"role":      p.Role,
		"email":     p.Email,
		"active":    p.Active,
	}

	result, err := scanMember(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Member{}, fmt.Errorf("repo.MemberRepo.Update: %w", err)
	}
	return result, nil
}

// Link is idempotent via ON CONFLICT DO NOTHING.
func (r *pgMemberRepo) Link(ctx context.Context, tripID, memberID string) error {
	const q = `
		INSERT INTO trip_members (trip_id, member_id)
		VALUES (@trip_id, @member_id)
		ON CONFLICT (trip_id, member_id) DO NOTHING`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "member_id": memberID}); err != nil {
		return fmt.Errorf("repo.MemberRepo.Link: %w", err)
	}
	return nil
}

// Unlink ignores RowsAffected on purpose: removing an absent link is a
// no-op by contract, not an error.
func (r *pgMemberRepo) Unlink(ctx context.Context, tripID, memberID string) error {
	const q = `DELETE FROM trip_members WHERE trip_id = @trip_id AND member_id = @member_id`

	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID, "member_id": memberID}); err != nil {
		return fmt.Errorf("repo.MemberRepo.Unlink: %w", err)
	}
	return nil
}

// collectMembers drains rows into a slice, wrapping errors with op context.
func collectMembers(rows pgx.Rows, op string) ([]domain.Member, error) {
	var members []domain.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.MemberRepo.%s: scan: %w", op, err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.MemberRepo.%s: rows: %w", op, err)
	}
	return members, nil
}

// scanMember maps a single database row into a domain.Member.
func scanMember(s scanner) (domain.Member, error) {
	var m domain.Member
	err := s.Scan(&m.ID, &m.Name, &m.Role, &m.Email, &m.Active, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Member{}, domain.ErrNotFound
		}
		return domain.Member{}, err
	}
	return m, nil
}
