package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Position defines the deposit ledger of a participant in a pool.
type Position struct {
	Owner   string
	PoolKey string
	// Cumulative amounts contributed, for bookkeeping only.
	DepositedA uint64
	DepositedB uint64
	// Claim on the pool reserves and accrued fees.
	Shares uint64
}

// NewPosition returns an empty position of the given owner in the pool with
// the given key.
func NewPosition(owner, poolKey string) (*Position, error) {
	if !isValidOwner(owner) {
		return nil, ErrInvalidOwner
	}
	if len(poolKey) <= 0 {
		return nil, ErrPositionPoolMismatch
	}
	return &Position{
		Owner:   owner,
		PoolKey: poolKey,
	}, nil
}

// PositionKey returns the storage key of a position.
func PositionKey(owner, poolKey string) string {
	return fmt.Sprintf("%s/%s", owner, poolKey)
}

// Key returns the storage key of the position.
func (p Position) Key() string {
	return PositionKey(p.Owner, p.PoolKey)
}

// OwnedFraction returns the share of the pool owned by the position.
func (p Position) OwnedFraction(pool Pool) decimal.Decimal {
	if pool.TotalShares == 0 {
		return decimal.Zero
	}
	shares := decimal.NewFromBigInt(new(big.Int).SetUint64(p.Shares), 0)
	total := decimal.NewFromBigInt(new(big.Int).SetUint64(pool.TotalShares), 0)
	return shares.Div(total)
}

// ValidateOwner returns an error if owner can't be used as participant
// identifier.
func ValidateOwner(owner string) error {
	if !isValidOwner(owner) {
		return ErrInvalidOwner
	}
	return nil
}

func isValidOwner(owner string) bool {
	return len(strings.TrimSpace(owner)) > 0 &&
		!strings.HasPrefix(owner, poolCustodyPrefix) &&
		!strings.Contains(owner, "/")
}
