// Package store wraps the MongoDB client shared by the repositories and
// defines the store-level error sentinels they translate driver errors into.
package store

import "errors"

var (
	// ErrNotFound is returned when no document matches the query.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned when inserting a user whose email already
	// exists. The unique index makes the register race lose cleanly.
	ErrEmailTaken = errors.New("email already registered")
)
