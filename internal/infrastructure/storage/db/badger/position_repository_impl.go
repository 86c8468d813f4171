package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type positionRepositoryImpl struct {
	db *dbManager
}

func newPositionRepositoryImpl(db *dbManager) domain.PositionRepository {
	return positionRepositoryImpl{db}
}

func (r positionRepositoryImpl) GetPosition(
	ctx context.Context, owner, poolKey string,
) (*domain.Position, error) {
	var position *domain.Position
	if err := r.db.view(ctx, func(txn *badger.Txn) error {
		var p domain.Position
		if err := r.db.store.TxGet(
			txn, domain.PositionKey(owner, poolKey), &p,
		); err != nil {
			if errors.Is(err, badgerhold.ErrNotFound) {
				return nil
			}
			return err
		}
		position = &p
		return nil
	}); err != nil {
		return nil, err
	}
	return position, nil
}

func (r positionRepositoryImpl) GetPositionsForOwner(
	ctx context.Context, owner string,
) ([]domain.Position, error) {
	query := badgerhold.Where("Owner").Eq(owner).SortBy("PoolKey")
	return r.findPositions(ctx, query)
}

func (r positionRepositoryImpl) GetPositionsForPool(
	ctx context.Context, poolKey string,
) ([]domain.Position, error) {
	query := badgerhold.Where("PoolKey").Eq(poolKey).SortBy("Owner")
	return r.findPositions(ctx, query)
}

func (r positionRepositoryImpl) UpsertPosition(
	ctx context.Context, position *domain.Position,
) error {
	return r.db.update(ctx, func(txn *badger.Txn) error {
		return r.db.store.TxUpsert(txn, position.Key(), *position)
	})
}

func (r positionRepositoryImpl) DeletePosition(
	ctx context.Context, owner, poolKey string,
) error {
	return r.db.update(ctx, func(txn *badger.Txn) error {
		if err := r.db.store.TxDelete(
			txn, domain.PositionKey(owner, poolKey), domain.Position{},
		); err != nil && !errors.Is(err, badgerhold.ErrNotFound) {
			return err
		}
		return nil
	})
}

func (r positionRepositoryImpl) findPositions(
	ctx context.Context, query *badgerhold.Query,
) ([]domain.Position, error) {
	positions := make([]domain.Position, 0)
	if err := r.db.view(ctx, func(txn *badger.Txn) error {
		return r.db.store.TxFind(txn, &positions, query)
	}); err != nil {
		return nil, err
	}
	return positions, nil
}
