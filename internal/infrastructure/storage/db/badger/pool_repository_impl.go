package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type poolRepositoryImpl struct {
	db *dbManager
}

func newPoolRepositoryImpl(db *dbManager) domain.PoolRepository {
	return poolRepositoryImpl{db}
}

func (r poolRepositoryImpl) AddPool(
	ctx context.Context, pool *domain.Pool,
) error {
	return r.db.update(ctx, func(txn *badger.Txn) error {
		if err := r.db.store.TxInsert(txn, pool.Key, *pool); err != nil {
			if errors.Is(err, badgerhold.ErrKeyExists) {
				return ErrPoolAlreadyExists
			}
			return err
		}
		return nil
	})
}

func (r poolRepositoryImpl) GetPoolByKey(
	ctx context.Context, key string,
) (*domain.Pool, error) {
	var pool *domain.Pool
	if err := r.db.view(ctx, func(txn *badger.Txn) (err error) {
		pool, err = r.getPool(txn, key)
		return
	}); err != nil {
		return nil, err
	}
	return pool, nil
}

func (r poolRepositoryImpl) GetAllPools(
	ctx context.Context,
) ([]domain.Pool, error) {
	var pools []domain.Pool
	if err := r.db.view(ctx, func(txn *badger.Txn) error {
		return r.db.store.TxFind(
			txn, &pools, (&badgerhold.Query{}).SortBy("Key"),
		)
	}); err != nil {
		return nil, err
	}
	return pools, nil
}

func (r poolRepositoryImpl) UpdatePool(
	ctx context.Context,
	key string, updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	return r.db.update(ctx, func(txn *badger.Txn) error {
		pool, err := r.getPool(txn, key)
		if err != nil {
			return err
		}
		if pool == nil {
			return ErrPoolNotFound
		}

		updatedPool, err := updateFn(pool)
		if err != nil {
			return err
		}

		return r.db.store.TxUpdate(txn, key, *updatedPool)
	})
}

func (r poolRepositoryImpl) getPool(
	txn *badger.Txn, key string,
) (*domain.Pool, error) {
	var pool domain.Pool
	if err := r.db.store.TxGet(txn, key, &pool); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pool, nil
}
