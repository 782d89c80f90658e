// Package sqlite implements the SQLite storage backend for scribe: the
// category and document repositories and the Attach/Detach lifecycle
// around a single shared connection.
package sqlite

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

// dbFileName is the SQLite database file inside the data directory.
const dbFileName = "documents.db"

// Backend implements the category and document repositories on a shared
// SQLite connection. All mutations run inside transactions scoped to one
// logical operation so partial writes roll back together.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	logger   *slog.Logger

	categories *categoriesRepo
	documents  *documentsRepo
}

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to initialize. A nil logger is
// replaced with slog.Default().
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	b := &Backend{logger: logger.With("component", "sqlite")}
	b.categories = &categoriesRepo{backend: b}
	b.documents = &documentsRepo{backend: b}
	return b
}

// Attach initializes the backend with the given configuration. Creates
// DataDir if it does not exist and applies the schema idempotently, so an
// existing database keeps its rows. Returns ErrAlreadyAttached if already
// attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	dbPath := filepath.Join(dataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true

	b.logger.Debug("store attached", "path", dbPath)
	return nil
}

// Detach closes the SQLite connection and releases all resources. After
// Detach, repository operations return ErrStoreDetached. Idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.attached = false
	return nil
}

// Categories returns the category repository.
func (b *Backend) Categories() types.CategoryRepository { return b.categories }

// Documents returns the document repository.
func (b *Backend) Documents() types.DocumentRepository { return b.documents }

// conn returns the shared connection, or ErrStoreDetached when the backend
// is not attached. Repositories call this at the top of every operation so
// a detached backend fails cleanly instead of dereferencing a nil DB.
func (b *Backend) conn() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.db, nil
}
