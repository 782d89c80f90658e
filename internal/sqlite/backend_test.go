// Tests for the SQLite backend lifecycle.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend(nil)
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	err := b.Attach(config)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	// Verify database file created
	dbPath := filepath.Join(tmpDir, "documents.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("documents.db not created")
	}

	// Verify double attach fails
	err = b.Attach(config)
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	b.Detach()
}

func TestBackend_AttachIsIdempotentAcrossRestarts(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	b := NewBackend(nil)
	if err := b.Attach(config); err != nil {
		t.Fatalf("first Attach failed: %v", err)
	}

	doc, err := b.Documents().FindOrCreate("notes", "", 0, "hello")
	if err != nil {
		t.Fatalf("FindOrCreate failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// A second Attach against the same data dir must keep existing rows.
	b2 := NewBackend(nil)
	if err := b2.Attach(config); err != nil {
		t.Fatalf("second Attach failed: %v", err)
	}
	defer b2.Detach()

	got, err := b2.Documents().Get(doc.ID)
	if err != nil {
		t.Fatalf("Get after re-attach failed: %v", err)
	}
	if got.Content != "hello" {
		t.Errorf("content lost across restart: got %q", got.Content)
	}
}

func TestBackend_Detach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend(nil)
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	b.Attach(config)

	err := b.Detach()
	if err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// Verify idempotent
	err = b.Detach()
	if err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	// Verify operations fail after detach
	_, err = b.Categories().Find("anything")
	if err != types.ErrStoreDetached {
		t.Errorf("expected ErrStoreDetached, got %v", err)
	}
	_, err = b.Documents().ListURIs()
	if err != types.ErrStoreDetached {
		t.Errorf("expected ErrStoreDetached, got %v", err)
	}
}

func TestBackend_AttachRejectsInvalidConfig(t *testing.T) {
	b := NewBackend(nil)

	err := b.Attach(types.Config{Backend: "redis"})
	if err != types.ErrBackendUnknown {
		t.Errorf("expected ErrBackendUnknown, got %v", err)
	}
}
