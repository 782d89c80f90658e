// Package engine implements the resolution and persistence engine: it maps
// user-typed URIs to category and document rows, decides
// create-vs-open-vs-reject, sequences the dependent store operations, and
// keeps the current-document session pointer consistent with the store.
package engine

import "strings"

// ParseURI splits a user-typed identifier into its category and document
// name parts. The split happens on the first '/'; without one the whole
// string is the document name and the category is empty. Empty parts are
// passed through; the workflows decide what an empty name means.
func ParseURI(uri string) (category, document string) {
	if i := strings.Index(uri, "/"); i >= 0 {
		return uri[:i], uri[i+1:]
	}
	return "", uri
}
