package postgresdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

var (
	// ErrPoolAlreadyExists ...
	ErrPoolAlreadyExists = errors.New("pool already exists")
	// ErrPoolNotFound ...
	ErrPoolNotFound = errors.New("pool not found")
)

type poolRepositoryImpl struct {
	db *dbManager
}

func newPoolRepositoryImpl(db *dbManager) domain.PoolRepository {
	return &poolRepositoryImpl{db}
}

func (r *poolRepositoryImpl) AddPool(
	ctx context.Context, pool *domain.Pool,
) error {
	return r.db.execTx(ctx, func(q querier) error {
		if _, err := q.Exec(ctx, `
			INSERT INTO pools (
				key, asset_a, asset_b, total_a, total_b, fees_collected_a,
				fee_rate_bps, total_shares, initialized
			) VALUES (
				$1, $2, $3, $4::text::numeric, $5::text::numeric,
				$6::text::numeric, $7::text::numeric, $8::text::numeric, $9
			)`,
			pool.Key, pool.AssetA, pool.AssetB, numeric(pool.TotalA),
			numeric(pool.TotalB), numeric(pool.FeesCollectedA),
			numeric(pool.FeeRateBps), numeric(pool.TotalShares),
			pool.Initialized,
		); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return ErrPoolAlreadyExists
			}
			return fmt.Errorf("failed to insert pool: %w", err)
		}
		return nil
	})
}

func (r *poolRepositoryImpl) GetPoolByKey(
	ctx context.Context, key string,
) (*domain.Pool, error) {
	// Lock the row when reading within a transaction, the pool is likely
	// going to be updated.
	inTx := r.db.txFromContext(ctx) != nil
	return r.getPool(ctx, r.db.querier(ctx), key, inTx)
}

func (r *poolRepositoryImpl) GetAllPools(
	ctx context.Context,
) ([]domain.Pool, error) {
	rows, err := r.db.querier(ctx).Query(
		ctx, "SELECT "+poolColumns+" FROM pools ORDER BY key",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pools := make([]domain.Pool, 0)
	for rows.Next() {
		pool, err := scanPool(rows)
		if err != nil {
			return nil, err
		}
		pools = append(pools, *pool)
	}
	return pools, rows.Err()
}

func (r *poolRepositoryImpl) UpdatePool(
	ctx context.Context,
	key string, updateFn func(p *domain.Pool) (*domain.Pool, error),
) error {
	return r.db.execTx(ctx, func(q querier) error {
		pool, err := r.getPool(ctx, q, key, true)
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

		if _, err := q.Exec(ctx, `
			UPDATE pools SET
				total_a = $2::text::numeric,
				total_b = $3::text::numeric,
				fees_collected_a = $4::text::numeric,
				fee_rate_bps = $5::text::numeric,
				total_shares = $6::text::numeric,
				initialized = $7
			WHERE key = $1`,
			key, numeric(updatedPool.TotalA), numeric(updatedPool.TotalB),
			numeric(updatedPool.FeesCollectedA),
			numeric(updatedPool.FeeRateBps), numeric(updatedPool.TotalShares),
			updatedPool.Initialized,
		); err != nil {
			return fmt.Errorf("failed to update pool: %w", err)
		}
		return nil
	})
}

func (r *poolRepositoryImpl) getPool(
	ctx context.Context, q querier, key string, forUpdate bool,
) (*domain.Pool, error) {
	query := "SELECT " + poolColumns + " FROM pools WHERE key = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}

	pool, err := scanPool(q.QueryRow(ctx, query, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return pool, nil
}
