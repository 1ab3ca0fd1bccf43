package testutil

import (
	"database/sql"
	"path/filepath"
	"testing"

	"lostfound-api/internal/store"
)

// NewTestDB opens a throwaway in-memory SQLite database with the schema
// applied and closes it when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	return db
}

// NewTestFileStores creates file-backed item and claim stores under a
// temporary directory that is removed when the test finishes.
func NewTestFileStores(t *testing.T) (*store.FileStore, *store.FileLedger) {
	t.Helper()

	dir := t.TempDir()
	items, err := store.OpenFileStore(filepath.Join(dir, "items.json"))
	if err != nil {
		t.Fatalf("Failed to open file store: %v", err)
	}
	ledger, err := store.OpenFileLedger(filepath.Join(dir, "claimed_items.json"))
	if err != nil {
		t.Fatalf("Failed to open file ledger: %v", err)
	}
	return items, ledger
}
