package repository

import "errors"

var (
	// ErrNotFound signals that no row matched the lookup.
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals a conditional update that matched no row because
	// the row was missing or not in the expected state.
	ErrConflict = errors.New("row not in expected state")
)
