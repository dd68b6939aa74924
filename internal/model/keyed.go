// Package model defines database models
package model

// Keyed is implemented by every model with a single-column primary key.
// The repository uses it to build its where clauses instead of inspecting
// schema metadata at runtime.
type Keyed interface {
	KeyColumn() string
}
