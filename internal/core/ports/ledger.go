package ports

import (
	"context"
	"errors"

	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/storageutil/uow"
)

var (
	// ErrInsufficientBalance is returned when the source account of a
	// transfer can't cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrInvalidAuthority is returned when the authority of a transfer is
	// not allowed to move funds out of the source account.
	ErrInvalidAuthority = errors.New("authority not allowed to move funds")
)

// Ledger holds participant and pool custody balances, keyed by account and
// asset. Every method accepts a context optionally carrying the transaction
// opened by Begin.
type Ledger interface {
	uow.Transactional
	uow.ContextProvider

	// Transfer moves funds between two accounts. Fails without side effects
	// if the authority can't debit the source or if the balance is too low.
	Transfer(ctx context.Context, transfer domain.Transfer) error
	// Credit mints funds into an account.
	Credit(ctx context.Context, account, asset string, amount uint64) error
	// GetBalance returns the balance of account for the given asset.
	GetBalance(ctx context.Context, account, asset string) (uint64, error)
	// GetBalances returns all non-zero balances of account by asset.
	GetBalances(ctx context.Context, account string) (map[string]uint64, error)
}
