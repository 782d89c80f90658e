// Category repository for the SQLite backend.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

var _ types.CategoryRepository = (*categoriesRepo)(nil)

type categoriesRepo struct {
	backend *Backend
}

// Find retrieves a category by exact name. Returns ErrNotFound when no row
// matches.
func (r *categoriesRepo) Find(name string) (*types.Category, error) {
	if name == "" {
		return nil, types.ErrInvalidName
	}

	db, err := r.backend.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT id, name FROM categories WHERE name = ?", name)
	cat, err := hydrateCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("finding category %q: %w", name, err)
	}
	return cat, nil
}

// FindOrCreate retrieves a category by name, creating it after an
// affirmative answer from confirm. A declined confirmation returns
// ErrCancelled and writes nothing. Creation is serialized against
// concurrent calls for the same name by the unique index: a duplicate
// insert falls back to returning the row the winner created.
func (r *categoriesRepo) FindOrCreate(name string, confirm types.Confirmer) (*types.Category, error) {
	cat, err := r.Find(name)
	if err == nil {
		return cat, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	ok, err := confirm.Confirm(fmt.Sprintf("Do you want to create category '%s'?", name))
	if err != nil {
		return nil, fmt.Errorf("confirming category creation: %w", err)
	}
	if !ok {
		return nil, types.ErrCancelled
	}

	db, err := r.backend.conn()
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		// A concurrent FindOrCreate for the same name may have won the
		// insert; the unique index rejects ours. Return the winner's row.
		if isUniqueViolation(err) {
			tx.Rollback()
			return r.Find(name)
		}
		return nil, fmt.Errorf("creating category %q: %w", name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading category id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing category: %w", err)
	}

	return &types.Category{ID: id, Name: name}, nil
}

// Delete removes the category row and every document assigned to it in one
// transaction, documents first so the row never loses its referents before
// it disappears. Returns ErrNotFound when the category no longer exists.
func (r *categoriesRepo) Delete(id int64) error {
	if id <= 0 {
		return types.ErrInvalidID
	}

	db, err := r.backend.conn()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM documents WHERE category_id = ?", id); err != nil {
		return fmt.Errorf("deleting documents of category %d: %w", id, err)
	}

	res, err := tx.Exec("DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting category %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting category %d: %w", id, err)
	}
	if n == 0 {
		// Vanished under a concurrent delete; the rollback above discards
		// the document deletes.
		return types.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing category deletion: %w", err)
	}
	return nil
}

// ListAll returns every category ordered by name.
func (r *categoriesRepo) ListAll() ([]*types.Category, error) {
	db, err := r.backend.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT id, name FROM categories ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var results []*types.Category
	for rows.Next() {
		var c types.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("hydrating category: %w", err)
		}
		results = append(results, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return results, nil
}

// hydrateCategory converts a single SQLite row into a *types.Category.
func hydrateCategory(row *sql.Row) (*types.Category, error) {
	var c types.Category
	if err := row.Scan(&c.ID, &c.Name); err != nil {
		return nil, err
	}
	return &c, nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// modernc.org/sqlite surfaces these as formatted driver errors, so the
// message text is the stable signal.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
