package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a write would violate the unique
	// constraint on the normalized user name.
	ErrDuplicate = errors.New("persistence: duplicate record")
)
