// Package docstore backs the planner with a flat document in badger
// instead of Postgres: the whole entity graph of a trip lives in one JSON
// value, and every operation is load-document, mutate-in-memory,
// save-document. It implements the same repo interfaces as the relational
// layer, so the service code above it cannot tell the difference.
//
// This is the single-trip deployment backing. Writers within the process
// are serialized by a store-wide lock; across processes the last save wins,
// an accepted property of the single-user target.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dgraph-io/badger/v4"

	"github.com/yclin/travel-planner/internal/domain"
	"github.com/yclin/travel-planner/internal/repo"
)

const (
	tripKeyPrefix = "trip:"
	membersKey    = "members"
)

// tripDoc is the persisted shape of one trip's graph: flat arrays keyed by
// owner IDs, the same layout the relational schema uses, so the two
// backings serialize identically.
type tripDoc struct {
	Trip       domain.Trip            `json:"trip"`
	Days       []domain.Day           `json:"days"`
	Events     []domain.Event         `json:"events"`
	Tasks      []domain.Task          `json:"tasks"`
	Checklists []domain.Checklist     `json:"checklists"`
	Items      []domain.ChecklistItem `json:"items"`
	MemberIDs  []string               `json:"member_ids"`
}

// Store implements repo.Store on a badger database.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
	repos  repo.Repos

	// mu serializes all loads and saves: one writer (or reader) at a time,
	// the single-writer model this backing is built around.
	mu sync.Mutex
}

// Open opens (or creates) the badger database under dir.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil      // badger's own logging is noise here
	opts.SyncWrites = true // a lost save in a single-user app is user-visible data loss

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("docstore.Open: %w", err)
	}

	s := &Store{db: db, logger: logger}
	s.repos = newRepos(s)
	if logger != nil {
		logger.Info("document store opened", "dir", dir)
	}
	return s, nil
}

// Close closes the underlying badger database.
func (s *Store) Close() error { return s.db.Close() }

// Repos returns the document-backed repos.
func (s *Store) Repos() repo.Repos { return s.repos }

// Atomic loads documents once, applies every mutation in fn to the
// in-memory state, and saves all touched documents in a single badger
// update — the document-store equivalent of a transaction. The block holds
// the store lock for its whole duration; like the Postgres Atomic it must
// not be nested. fn receives repos bound to the block's state, so every
// call inside it sees the uncommitted mutations.
func (s *Store) Atomic(_ context.Context, fn func(repo.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := newState(s)
	if err := fn(newRepos(stateRunner{st})); err != nil {
		return err
	}
	return s.flush(st)
}

// runner is how the doc repos reach their state: the Store itself for plain
// calls (lock, fresh state, flush), or a stateRunner inside an Atomic block.
type runner interface {
	mutate(fn func(*state) error) error
	view(fn func(*state) error) error
}

// stateRunner binds repo calls to the state of an enclosing Atomic block,
// which already holds the store lock. Nothing is flushed here — the block
// flushes once at the end.
type stateRunner struct {
	st *state
}

func (r stateRunner) mutate(fn func(*state) error) error { return fn(r.st) }
func (r stateRunner) view(fn func(*state) error) error   { return fn(r.st) }

// newRepos builds the repo set over the given runner.
func newRepos(r runner) repo.Repos {
	return repo.Repos{
		Trips:      &docTripRepo{r},
		Days:       &docDayRepo{r},
		Events:     &docEventRepo{r},
		Tasks:      &docTaskRepo{r},
		Members:    &docMemberRepo{r},
		Checklists: &docChecklistRepo{r},
		Items:      &docItemRepo{r},
	}
}

// state caches loaded documents and tracks which ones need writing back.
type state struct {
	store *Store

	docs    map[string]*tripDoc // by trip ID, loaded on demand
	dirty   map[string]bool
	deleted map[string]bool

	members       []domain.Member
	membersLoaded bool
	membersDirty  bool
}

func newState(s *Store) *state {
	return &state{
		store:   s,
		docs:    make(map[string]*tripDoc),
		dirty:   make(map[string]bool),
		deleted: make(map[string]bool),
	}
}

// mutate is the plain load-mutate-save path: exclusive lock, throwaway
// state, flushed immediately.
func (s *Store) mutate(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := newState(s)
	if err := fn(st); err != nil {
		return err
	}
	return s.flush(st)
}

// view runs fn read-only; nothing is written back.
func (s *Store) view(fn func(*state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(newState(s))
}

// flush writes every dirty document, deletion, and the member registry in
// one badger update.
func (s *Store) flush(st *state) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		for id := range st.deleted {
			if err := txn.Delete([]byte(tripKeyPrefix + id)); err != nil {
				return err
			}
		}
		for id := range st.dirty {
			if st.deleted[id] {
				continue
			}
			b, err := json.Marshal(st.docs[id])
			if err != nil {
				return err
			}
			if err := txn.Set([]byte(tripKeyPrefix+id), b); err != nil {
				return err
			}
		}
		if st.membersDirty {
			b, err := json.Marshal(st.members)
			if err != nil {
				return err
			}
			if err := txn.Set([]byte(membersKey), b); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("docstore: flush: %w", err)
	}
	return nil
}

// trip returns the document for the given trip, loading it on first use.
// Returns domain.ErrNotFound for unknown or deleted trips.
func (st *state) trip(id string) (*tripDoc, error) {
	if st.deleted[id] {
		return nil, domain.ErrNotFound
	}
	if doc, ok := st.docs[id]; ok {
		return doc, nil
	}
	var doc tripDoc
	err := st.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(tripKeyPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &doc)
		})
	})
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("docstore: load trip %s: %w", id, err)
	}
	st.docs[id] = &doc
	return &doc, nil
}

// tripIDs lists every stored trip ID (keys only, values untouched).
func (st *state) tripIDs() ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	err := st.store.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(tripKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := string(it.Item().Key()[len(prefix):])
			if !st.deleted[id] && !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("docstore: list trips: %w", err)
	}
	// Include docs created in this state but not yet flushed.
	for id := range st.docs {
		if !st.deleted[id] && !seen[id] {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// findOwner scans trip documents for the one where find returns true.
// Entity IDs are globally unique, so callers that only have a child ID
// (task, item) locate its document this way. Single-trip deployments hold
// one document, so the scan is one load.
func (st *state) findOwner(find func(*tripDoc) bool) (*tripDoc, error) {
	for _, doc := range st.docs {
		if find(doc) {
			return doc, nil
		}
	}
	ids, err := st.tripIDs()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		doc, err := st.trip(id)
		if err != nil {
			return nil, err
		}
		if find(doc) {
			return doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// allMembers returns the global member registry, loading it on first use.
func (st *state) allMembers() ([]domain.Member, error) {
	if st.membersLoaded {
		return st.members, nil
	}
	err := st.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(membersKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &st.members)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("docstore: load members: %w", err)
	}
	st.membersLoaded = true
	return st.members, nil
}

func (st *state) markDirty(tripID string) { st.dirty[tripID] = true }

func (st *state) markDeleted(tripID string) {
	st.deleted[tripID] = true
	delete(st.docs, tripID)
	delete(st.dirty, tripID)
}

func (st *state) setMembers(ms []domain.Member) {
	st.members = ms
	st.membersLoaded = true
	st.membersDirty = true
}
