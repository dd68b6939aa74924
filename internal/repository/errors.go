// Package repository provides table-agnostic CRUD over the entity models
package repository

import "errors"

// ErrConflict is returned when an insert or update breaches a unique or
// primary-key constraint (duplicate email, duplicate line-item pair).
// Absent records are never an error: reads return nil and deletes return
// false instead.
var ErrConflict = errors.New("record conflicts with an existing one")
