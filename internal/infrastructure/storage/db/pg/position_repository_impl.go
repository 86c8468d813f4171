package postgresdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

type positionRepositoryImpl struct {
	db *dbManager
}

func newPositionRepositoryImpl(db *dbManager) domain.PositionRepository {
	return &positionRepositoryImpl{db}
}

func (r *positionRepositoryImpl) GetPosition(
	ctx context.Context, owner, poolKey string,
) (*domain.Position, error) {
	position, err := scanPosition(r.db.querier(ctx).QueryRow(
		ctx,
		"SELECT "+positionColumns+
			" FROM positions WHERE owner = $1 AND pool_key = $2",
		owner, poolKey,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return position, nil
}

func (r *positionRepositoryImpl) GetPositionsForOwner(
	ctx context.Context, owner string,
) ([]domain.Position, error) {
	return r.findPositions(
		ctx, "WHERE owner = $1 ORDER BY pool_key", owner,
	)
}

func (r *positionRepositoryImpl) GetPositionsForPool(
	ctx context.Context, poolKey string,
) ([]domain.Position, error) {
	return r.findPositions(
		ctx, "WHERE pool_key = $1 ORDER BY owner", poolKey,
	)
}

func (r *positionRepositoryImpl) UpsertPosition(
	ctx context.Context, position *domain.Position,
) error {
	return r.db.execTx(ctx, func(q querier) error {
		if _, err := q.Exec(ctx, `
			INSERT INTO positions (
				owner, pool_key, deposited_a, deposited_b, shares
			) VALUES (
				$1, $2, $3::text::numeric, $4::text::numeric, $5::text::numeric
			)
			ON CONFLICT (owner, pool_key) DO UPDATE SET
				deposited_a = EXCLUDED.deposited_a,
				deposited_b = EXCLUDED.deposited_b,
				shares = EXCLUDED.shares`,
			position.Owner, position.PoolKey, numeric(position.DepositedA),
			numeric(position.DepositedB), numeric(position.Shares),
		); err != nil {
			return fmt.Errorf("failed to upsert position: %w", err)
		}
		return nil
	})
}

func (r *positionRepositoryImpl) DeletePosition(
	ctx context.Context, owner, poolKey string,
) error {
	return r.db.execTx(ctx, func(q querier) error {
		if _, err := q.Exec(
			ctx, "DELETE FROM positions WHERE owner = $1 AND pool_key = $2",
			owner, poolKey,
		); err != nil {
			return fmt.Errorf("failed to delete position: %w", err)
		}
		return nil
	})
}

func (r *positionRepositoryImpl) findPositions(
	ctx context.Context, filter string, arg any,
) ([]domain.Position, error) {
	rows, err := r.db.querier(ctx).Query(
		ctx, "SELECT "+positionColumns+" FROM positions "+filter, arg,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	positions := make([]domain.Position, 0)
	for rows.Next() {
		position, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, *position)
	}
	return positions, rows.Err()
}
