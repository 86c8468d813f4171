package inmemory

import (
	"context"
	"sort"

	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

type poolRepositoryImpl struct {
	db *dbManager
}

// newPoolRepositoryImpl returns a new in-memory domain.PoolRepository.
func newPoolRepositoryImpl(db *dbManager) domain.PoolRepository {
	return poolRepositoryImpl{db}
}

func (r poolRepositoryImpl) AddPool(
	ctx context.Context, pool *domain.Pool,
) error {
	return r.db.write(ctx, func(s *storage) error {
		if _, ok := s.pools[pool.Key]; ok {
			return ErrPoolAlreadyExists
		}
		s.pools[pool.Key] = *pool
		return nil
	})
}

func (r poolRepositoryImpl) GetPoolByKey(
	ctx context.Context, key string,
) (pool *domain.Pool, err error) {
	err = r.db.read(ctx, func(s *storage) error {
		if p, ok := s.pools[key]; ok {
			pool = &p
		}
		return nil
	})
	return
}

func (r poolRepositoryImpl) GetAllPools(
	ctx context.Context,
) (pools []domain.Pool, err error) {
	err = r.db.read(ctx, func(s *storage) error {
		pools = make([]domain.Pool, 0, len(s.pools))
		for _, p := range s.pools {
			pools = append(pools, p)
		}
		return nil
	})
	sort.SliceStable(pools, func(i, j int) bool {
		return pools[i].Key < pools[j].Key
	})
	return
}

func (r poolRepositoryImpl) UpdatePool(
	ctx context.Context,
	key string, updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	return r.db.write(ctx, func(s *storage) error {
		pool, ok := s.pools[key]
		if !ok {
			return ErrPoolNotFound
		}

		updatedPool, err := updateFn(&pool)
		if err != nil {
			return err
		}

		s.pools[key] = *updatedPool
		return nil
	})
}
