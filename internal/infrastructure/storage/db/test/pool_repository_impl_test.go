package db_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

func TestPoolRepositoryImplementations(t *testing.T) {
	storages := createStorages(t)

	for i := range storages {
		s := storages[i]

		t.Run(s.Name, func(t *testing.T) {
			t.Parallel()

			t.Run("testAddAndGetPool", func(t *testing.T) {
				testAddAndGetPool(t, s)
			})

			t.Run("testGetAllPools", func(t *testing.T) {
				testGetAllPools(t, s)
			})

			t.Run("testUpdatePool", func(t *testing.T) {
				testUpdatePool(t, s)
			})
		})
	}
}

func testAddAndGetPool(t *testing.T, s storage) {
	repo := s.RepoManager.PoolRepository()
	pool := makeRandomPool(t)

	p, err := repo.GetPoolByKey(ctx, pool.Key)
	require.NoError(t, err)
	require.Nil(t, p)

	err = repo.AddPool(ctx, pool)
	require.NoError(t, err)

	p, err = repo.GetPoolByKey(ctx, pool.Key)
	require.NoError(t, err)
	require.Equal(t, *pool, *p)

	err = repo.AddPool(ctx, pool)
	require.Error(t, err)
}

func testGetAllPools(t *testing.T, s storage) {
	repo := s.RepoManager.PoolRepository()

	pools := []*domain.Pool{makeRandomPool(t), makeRandomPool(t)}
	for _, p := range pools {
		require.NoError(t, repo.AddPool(ctx, p))
	}

	allPools, err := repo.GetAllPools(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(allPools), len(pools))

	keys := make(map[string]struct{})
	for i, p := range allPools {
		keys[p.Key] = struct{}{}
		if i > 0 {
			require.Less(t, allPools[i-1].Key, p.Key)
		}
	}
	for _, p := range pools {
		require.Contains(t, keys, p.Key)
	}
}

func testUpdatePool(t *testing.T, s storage) {
	repo := s.RepoManager.PoolRepository()
	pool := makeRandomPool(t)
	require.NoError(t, repo.AddPool(ctx, pool))

	_, err := pool.Swap(randomOwner(), pool.AssetA, pool.AssetB, 100_000)
	require.NoError(t, err)

	err = repo.UpdatePool(
		ctx, pool.Key, func(p *domain.Pool) (*domain.Pool, error) {
			return pool, nil
		},
	)
	require.NoError(t, err)

	p, err := repo.GetPoolByKey(ctx, pool.Key)
	require.NoError(t, err)
	require.Equal(t, *pool, *p)
	require.Equal(t, uint64(300), p.FeesCollectedA)

	err = repo.UpdatePool(
		ctx, randomHex(20), func(p *domain.Pool) (*domain.Pool, error) {
			return p, nil
		},
	)
	require.Error(t, err)

	err = repo.UpdatePool(
		ctx, pool.Key, func(p *domain.Pool) (*domain.Pool, error) {
			return nil, domain.ErrOverflow
		},
	)
	require.ErrorIs(t, err, domain.ErrOverflow)
}
