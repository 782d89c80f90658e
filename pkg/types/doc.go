// Package types defines the entity types, repository and boundary
// interfaces, Config, and standard errors for the scribe document store.
//
// Entities are plain structs hydrated by the storage backend; interfaces
// are implemented by internal/sqlite and consumed by internal/engine.
package types
