package inmemory

import (
	"context"
	"sort"

	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

type positionRepositoryImpl struct {
	db *dbManager
}

// newPositionRepositoryImpl returns a new in-memory
// domain.PositionRepository.
func newPositionRepositoryImpl(db *dbManager) domain.PositionRepository {
	return positionRepositoryImpl{db}
}

func (r positionRepositoryImpl) GetPosition(
	ctx context.Context, owner, poolKey string,
) (position *domain.Position, err error) {
	err = r.db.read(ctx, func(s *storage) error {
		if p, ok := s.positions[domain.PositionKey(owner, poolKey)]; ok {
			position = &p
		}
		return nil
	})
	return
}

func (r positionRepositoryImpl) GetPositionsForOwner(
	ctx context.Context, owner string,
) ([]domain.Position, error) {
	return r.findPositions(ctx, func(p domain.Position) bool {
		return p.Owner == owner
	})
}

func (r positionRepositoryImpl) GetPositionsForPool(
	ctx context.Context, poolKey string,
) ([]domain.Position, error) {
	return r.findPositions(ctx, func(p domain.Position) bool {
		return p.PoolKey == poolKey
	})
}

func (r positionRepositoryImpl) UpsertPosition(
	ctx context.Context, position *domain.Position,
) error {
	return r.db.write(ctx, func(s *storage) error {
		s.positions[position.Key()] = *position
		return nil
	})
}

func (r positionRepositoryImpl) DeletePosition(
	ctx context.Context, owner, poolKey string,
) error {
	return r.db.write(ctx, func(s *storage) error {
		delete(s.positions, domain.PositionKey(owner, poolKey))
		return nil
	})
}

func (r positionRepositoryImpl) findPositions(
	ctx context.Context, filter func(p domain.Position) bool,
) (positions []domain.Position, err error) {
	err = r.db.read(ctx, func(s *storage) error {
		positions = make([]domain.Position, 0)
		for _, p := range s.positions {
			if filter(p) {
				positions = append(positions, p)
			}
		}
		return nil
	})
	sort.SliceStable(positions, func(i, j int) bool {
		return positions[i].Key() < positions[j].Key()
	})
	return
}
