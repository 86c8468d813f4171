package domain

import "context"

// PositionRepository is the abstraction for any kind of database intended to
// persist Positions.
type PositionRepository interface {
	// GetPosition returns the position of owner in the given pool, nil if not
	// found.
	GetPosition(ctx context.Context, owner, poolKey string) (*Position, error)
	// GetPositionsForOwner returns all positions of the given owner.
	GetPositionsForOwner(ctx context.Context, owner string) ([]Position, error)
	// GetPositionsForPool returns all positions open on the given pool.
	GetPositionsForPool(ctx context.Context, poolKey string) ([]Position, error)
	// UpsertPosition adds or replaces a position.
	UpsertPosition(ctx context.Context, position *Position) error
	// DeletePosition removes a position, no-op if not existing.
	DeletePosition(ctx context.Context, owner, poolKey string) error
}
