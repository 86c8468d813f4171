package postgresdb

import (
	"fmt"
	"strconv"

	"github.com/tdex-network/tdex-pool/internal/core/domain"
)

// Amounts are stored as NUMERIC(20, 0) to cover the whole uint64 range and
// exchanged with postgres in their text form.

func numeric(v uint64) string {
	return strconv.FormatUint(v, 10)
}

type numericRow struct {
	values []string
}

func (r *numericRow) dest(n int) []any {
	r.values = make([]string, n)
	dest := make([]any, n)
	for i := range r.values {
		dest[i] = &r.values[i]
	}
	return dest
}

func (r *numericRow) uint64s(targets ...*uint64) error {
	if len(targets) != len(r.values) {
		return fmt.Errorf("expected %d numeric values", len(r.values))
	}
	for i, s := range r.values {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid stored amount %q: %w", s, err)
		}
		*targets[i] = v
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

const poolColumns = `key, asset_a, asset_b, total_a::text, total_b::text,
	fees_collected_a::text, fee_rate_bps::text, total_shares::text, initialized`

func scanPool(row scanner) (*domain.Pool, error) {
	var pool domain.Pool
	var amounts numericRow

	dest := []any{&pool.Key, &pool.AssetA, &pool.AssetB}
	dest = append(dest, amounts.dest(5)...)
	dest = append(dest, &pool.Initialized)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := amounts.uint64s(
		&pool.TotalA, &pool.TotalB, &pool.FeesCollectedA,
		&pool.FeeRateBps, &pool.TotalShares,
	); err != nil {
		return nil, err
	}
	return &pool, nil
}

const positionColumns = `owner, pool_key, deposited_a::text,
	deposited_b::text, shares::text`

func scanPosition(row scanner) (*domain.Position, error) {
	var position domain.Position
	var amounts numericRow

	dest := []any{&position.Owner, &position.PoolKey}
	dest = append(dest, amounts.dest(3)...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := amounts.uint64s(
		&position.DepositedA, &position.DepositedB, &position.Shares,
	); err != nil {
		return nil, err
	}
	return &position, nil
}
