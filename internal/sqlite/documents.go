// Document repository for the SQLite backend.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mesh-intelligence/scribe/pkg/types"
)

var _ types.DocumentRepository = (*documentsRepo)(nil)

type documentsRepo struct {
	backend *Backend
}

// Find retrieves a document by its (name, category) pair. categoryID 0
// means uncategorized. Returns ErrNotFound when no row matches.
func (r *documentsRepo) Find(name string, categoryID int64) (*types.Document, error) {
	if name == "" {
		return nil, types.ErrInvalidName
	}

	db, err := r.backend.conn()
	if err != nil {
		return nil, err
	}

	var row *sql.Row
	if categoryID == 0 {
		row = db.QueryRow(
			"SELECT id, name, content, category_id, uri FROM documents WHERE name = ? AND category_id IS NULL",
			name,
		)
	} else {
		row = db.QueryRow(
			"SELECT id, name, content, category_id, uri FROM documents WHERE name = ? AND category_id = ?",
			name, categoryID,
		)
	}

	doc, err := hydrateDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("finding document %q: %w", name, err)
	}
	return doc, nil
}

// FindOrCreate retrieves a document by its (name, category) pair, creating
// it when absent. The URI is derived from categoryName/name and persisted
// in the same insert, so a row never exists with a mismatched uri column.
// No confirmation is required; documents are cheap.
func (r *documentsRepo) FindOrCreate(name, categoryName string, categoryID int64, seedContent string) (*types.Document, error) {
	doc, err := r.Find(name, categoryID)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	db, err := r.backend.conn()
	if err != nil {
		return nil, err
	}

	uri := types.DeriveURI(categoryName, name)

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO documents (name, content, category_id, uri) VALUES (?, ?, ?, ?)",
		name, seedContent, nullableID(categoryID), uri,
	)
	if err != nil {
		// A concurrent FindOrCreate for the same URI may have won the
		// insert. Return the winner's row instead of failing.
		if isUniqueViolation(err) {
			tx.Rollback()
			return r.Find(name, categoryID)
		}
		return nil, fmt.Errorf("creating document %q: %w", uri, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading document id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing document: %w", err)
	}

	return &types.Document{
		ID:         id,
		Name:       name,
		Content:    seedContent,
		CategoryID: categoryID,
		URI:        uri,
	}, nil
}

// Get retrieves a document by ID. Returns ErrNotFound when no row matches.
func (r *documentsRepo) Get(id int64) (*types.Document, error) {
	if id <= 0 {
		return nil, types.ErrInvalidID
	}

	db, err := r.backend.conn()
	if err != nil {
		return nil, err
	}

	row := db.QueryRow("SELECT id, name, content, category_id, uri FROM documents WHERE id = ?", id)
	doc, err := hydrateDocument(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting document %d: %w", id, err)
	}
	return doc, nil
}

// Delete removes the document row. Returns ErrNotFound when the row no
// longer exists.
func (r *documentsRepo) Delete(id int64) error {
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

	res, err := tx.Exec("DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting document %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting document %d: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing document deletion: %w", err)
	}
	return nil
}

// Save overwrites the content of the given document. This is the autosave
// hot path: it runs one UPDATE and treats a vanished row as a no-op so a
// save racing a delete of the same document cannot fail the editor.
func (r *documentsRepo) Save(id int64, content string) error {
	if id <= 0 {
		return types.ErrInvalidID
	}

	db, err := r.backend.conn()
	if err != nil {
		return err
	}

	if _, err := db.Exec("UPDATE documents SET content = ? WHERE id = ?", content, id); err != nil {
		return fmt.Errorf("saving document %d: %w", id, err)
	}
	return nil
}

// ListByCategory returns the documents assigned to the category, ordered
// by name.
func (r *documentsRepo) ListByCategory(categoryID int64) ([]*types.Document, error) {
	if categoryID <= 0 {
		return nil, types.ErrInvalidID
	}

	db, err := r.backend.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(
		"SELECT id, name, content, category_id, uri FROM documents WHERE category_id = ? ORDER BY name ASC",
		categoryID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing documents of category %d: %w", categoryID, err)
	}
	defer rows.Close()

	var results []*types.Document
	for rows.Next() {
		doc, err := hydrateDocumentFromRows(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating document: %w", err)
		}
		results = append(results, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return results, nil
}

// ListURIs returns every document URI in lexical order for the navigator
// suggestion list.
func (r *documentsRepo) ListURIs() ([]string, error) {
	db, err := r.backend.conn()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query("SELECT uri FROM documents ORDER BY uri ASC")
	if err != nil {
		return nil, fmt.Errorf("listing document URIs: %w", err)
	}
	defer rows.Close()

	var uris []string
	for rows.Next() {
		var uri string
		if err := rows.Scan(&uri); err != nil {
			return nil, fmt.Errorf("scanning URI: %w", err)
		}
		uris = append(uris, uri)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating URIs: %w", err)
	}
	return uris, nil
}

// scanner abstracts sql.Row and sql.Rows for hydration.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*types.Document, error) {
	var d types.Document
	var content sql.NullString
	var categoryID sql.NullInt64
	if err := s.Scan(&d.ID, &d.Name, &content, &categoryID, &d.URI); err != nil {
		return nil, err
	}
	d.Content = content.String
	if categoryID.Valid {
		d.CategoryID = categoryID.Int64
	}
	return &d, nil
}

// hydrateDocument converts a single SQLite row into a *types.Document.
func hydrateDocument(row *sql.Row) (*types.Document, error) {
	return scanDocument(row)
}

// hydrateDocumentFromRows converts a row from sql.Rows into a *types.Document.
func hydrateDocumentFromRows(rows *sql.Rows) (*types.Document, error) {
	return scanDocument(rows)
}

// nullableID maps the repository's "0 means uncategorized" convention onto
// a NULL column value.
func nullableID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
