package types

// Category is a named grouping of documents, at most one level deep.
// The ID is assigned by the store on creation.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"` // Unique across all categories, non-empty.
}
