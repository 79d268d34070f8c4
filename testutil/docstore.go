package testutil

import (
	"log/slog"
	"testing"

	"github.com/yclin/travel-planner/internal/docstore"
)

// NewDocStore opens a document store in a per-test temporary directory.
// Unlike the Postgres helpers it needs no environment setup, so docstore and
// end-to-end service tests always run. The store is closed automatically
// when the test finishes.
func NewDocStore(t *testing.T) *docstore.Store {
	t.Helper()

	store, err := docstore.Open(t.TempDir(), slog.Default())
	if err != nil {
		t.Fatalf("testutil.NewDocStore: open: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("testutil.NewDocStore: close: %v", err)
		}
	})
	return store
}
