// Package repo contains the relational persistence layer for the travel
// planner. Each resource has its own file with an interface and a Postgres
// implementation. No business logic lives here — only SQL and type mapping.
//
// The same interfaces are also implemented by the docstore package, which
// backs single-trip deployments with a flat document instead of Postgres.
// Services depend on these interfaces plus the Store below, never on a
// concrete backing.
package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and
// pgx.Tx. Accepting this interface instead of *pgxpool.Pool directly allows
// Atomic to rebind the repos to a transaction, and integration tests to
// pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// Repos bundles one repo per resource. Services receive a Repos either
// bound to the shared pool (plain calls) or to a transaction (inside
// Store.Atomic).
type Repos struct {
	Trips      TripRepo
	Days       DayRepo
	Events     EventRepo
	Tasks      TaskRepo
	Members    MemberRepo
	Checklists ChecklistRepo
	Items      ItemRepo
}

// Store is the persistence entry point handed to the service layer.
// Repos returns repos for single-statement operations; Atomic runs fn with
// repos bound to one transaction, committing on nil and rolling back on
// error — every multi-statement service operation (cascades, renumbering,
// import) goes through it.
type Store interface {
	Repos() Repos
	Atomic(ctx context.Context, fn func(Repos) error) error
}

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool  *pgxpool.Pool
	repos Repos
}

// NewPostgresStore constructs a Store backed by the provided pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, repos: newRepos(pool)}
}

// Repos returns the pool-bound repos.
func (s *PostgresStore) Repos() Repos { return s.repos }

// Atomic runs fn inside a single transaction.
func (s *PostgresStore) Atomic(ctx context.Context, fn func(Repos) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.PostgresStore.Atomic: begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if err := fn(newRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.PostgresStore.Atomic: commit: %w", err)
	}
	return nil
}

// newRepos builds a Repos bound to the given db (pool or tx).
func newRepos(d db) Repos {
	return Repos{
		Trips:      NewTripRepo(d),
		Days:       NewDayRepo(d),
		Events:     NewEventRepo(d),
		Tasks:      NewTaskRepo(d),
		Members:    NewMemberRepo(d),
		Checklists: NewChecklistRepo(d),
		Items:      NewItemRepo(d),
	}
}
