package inmemory

import (
	"context"

	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/pkg/mathutil"
)

type ledgerImpl struct {
	*dbManager
}

// newLedgerImpl returns a new in-memory ports.Ledger.
func newLedgerImpl(db *dbManager) ports.Ledger {
	return ledgerImpl{db}
}

func (l ledgerImpl) Transfer(ctx context.Context, t domain.Transfer) error {
	if !t.Authority.CanMove(t.From) {
		return ports.ErrInvalidAuthority
	}

	return l.write(ctx, func(s *storage) error {
		from := balanceKey{t.From, t.Asset}
		to := balanceKey{t.To, t.Asset}

		fromBalance, err := mathutil.Sub(s.balances[from], t.Amount)
		if err != nil {
			return ports.ErrInsufficientBalance
		}
		s.balances[from] = fromBalance

		toBalance, err := mathutil.Add(s.balances[to], t.Amount)
		if err != nil {
			return err
		}
		s.balances[to] = toBalance
		return nil
	})
}

func (l ledgerImpl) Credit(
	ctx context.Context, account, asset string, amount uint64,
) error {
	return l.write(ctx, func(s *storage) error {
		key := balanceKey{account, asset}
		balance, err := mathutil.Add(s.balances[key], amount)
		if err != nil {
			return err
		}
		s.balances[key] = balance
		return nil
	})
}

func (l ledgerImpl) GetBalance(
	ctx context.Context, account, asset string,
) (balance uint64, err error) {
	err = l.read(ctx, func(s *storage) error {
		balance = s.balances[balanceKey{account, asset}]
		return nil
	})
	return
}

func (l ledgerImpl) GetBalances(
	ctx context.Context, account string,
) (balances map[string]uint64, err error) {
	err = l.read(ctx, func(s *storage) error {
		balances = make(map[string]uint64)
		for k, v := range s.balances {
			if k.account == account && v > 0 {
				balances[k.asset] = v
			}
		}
		return nil
	})
	return
}
