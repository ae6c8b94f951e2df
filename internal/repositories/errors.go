package repositories

import "errors"

var (
	// ErrNotFound is wrapped by every lookup that finds nothing.
	ErrNotFound = errors.New("record not found")
	// ErrNotUpdated is returned when a conditional update matched no row.
	ErrNotUpdated = errors.New("no record matched the update condition")
)
