package repository

import "errors"

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned on unique-constraint violations, e.g. a
	// history record saved twice under the same ID.
	ErrConflict = errors.New("conflict")
)
