package domain

import (
	"errors"

	"github.com/tdex-network/tdex-pool/pkg/marketmaking/formula"
	"github.com/tdex-network/tdex-pool/pkg/mathutil"
)

var (
	// ErrZeroAmount is returned when a supplied amount must be positive.
	ErrZeroAmount = errors.New("amount should be greater than 0")
	// ErrInvalidAccountInputs is returned when input and output of a swap
	// resolve to the same asset.
	ErrInvalidAccountInputs = errors.New("invalid accounts inputs")
	// ErrInvalidAccounts is returned when an asset does not belong to the pool.
	ErrInvalidAccounts = errors.New("accounts does not belong to pool assets")
	// ErrInvalidAsset ...
	ErrInvalidAsset = errors.New("asset must be a non empty identifier")
	// ErrInvalidOwner ...
	ErrInvalidOwner = errors.New("owner must be a valid participant identifier")
	// ErrImbalancedDeposit is returned when a deposit deviates more than 1%
	// from the current pool ratio.
	ErrImbalancedDeposit = errors.New("imbalanced deposit")
	// ErrZeroShares is returned when a deposit would issue no shares.
	ErrZeroShares = errors.New("deposit issues zero shares")
	// ErrPoolNotInitialized ...
	ErrPoolNotInitialized = errors.New("pool is not initialized")
	// ErrPositionPoolMismatch is returned when a position is used against a
	// pool other than the one it was opened on.
	ErrPositionPoolMismatch = errors.New("position does not belong to pool")

	// ErrMathOverflow is returned when a product exceeds the representable
	// range.
	ErrMathOverflow = mathutil.ErrMulOverflow
	// ErrOverflow is returned when an addition wraps around.
	ErrOverflow = mathutil.ErrAddOverflow
	// ErrUnderflow is returned when a subtraction would go negative.
	ErrUnderflow = mathutil.ErrUnderflow
	// ErrDivisionError is returned when dividing by zero.
	ErrDivisionError = mathutil.ErrDivisionByZero
	// ErrInsufficientLiquidity is returned when the pool can't honor a payout.
	ErrInsufficientLiquidity = formula.ErrInsufficientLiquidity
)
