package types

import "errors"

// CategoryRepository provides lookup-or-create and cascading delete for
// category rows. Implemented by the SQLite backend.
type CategoryRepository interface {
	// Find returns the category with the given name.
	// Returns ErrNotFound when no row matches.
	Find(name string) (*Category, error)

	// FindOrCreate returns the category with the given name, creating it
	// after an affirmative answer from confirm. A declined confirmation
	// returns ErrCancelled and leaves the store untouched.
	FindOrCreate(name string, confirm Confirmer) (*Category, error)

	// Delete removes the category row and every document assigned to it
	// in a single transaction, documents first. Returns ErrNotFound when
	// the category no longer exists.
	Delete(id int64) error

	// ListAll returns every category ordered by name.
	ListAll() ([]*Category, error)
}

// DocumentRepository provides lookup-or-create, save, and delete for
// document rows scoped to a category. Implemented by the SQLite backend.
type DocumentRepository interface {
	// Find returns the document with the given name in the given category.
	// categoryID 0 means uncategorized. Returns ErrNotFound when absent.
	Find(name string, categoryID int64) (*Document, error)

	// FindOrCreate returns the document, creating it with the derived URI
	// and seedContent when absent. Document creation needs no confirmation.
	FindOrCreate(name, categoryName string, categoryID int64, seedContent string) (*Document, error)

	// Get returns the document with the given ID.
	// Returns ErrNotFound when no row matches.
	Get(id int64) (*Document, error)

	// Delete removes the document row unconditionally.
	// Returns ErrNotFound when the row no longer exists.
	Delete(id int64) error

	// Save overwrites the content of the given document. Saving a row that
	// vanished under a concurrent delete is a silent no-op.
	Save(id int64, content string) error

	// ListByCategory returns the documents assigned to the category,
	// ordered by name.
	ListByCategory(categoryID int64) ([]*Document, error)

	// ListURIs returns every document URI, ordered, for the navigator
	// suggestion list.
	ListURIs() ([]string, error)
}

// Repository operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrCancelled   = errors.New("cancelled by user")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidName = errors.New("invalid name")
)

// Backend lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)
