package pool

import "errors"

var (
	// ErrPoolNotFound is returned when no pool exists for the given pair.
	ErrPoolNotFound = errors.New("pool not found")
	// ErrPositionNotFound is returned when the participant has no position
	// in the pool.
	ErrPositionNotFound = errors.New("position not found")
	// ErrMissingOwner ...
	ErrMissingOwner = errors.New("missing owner")
)
