package dbbadger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
	"github.com/tdex-network/tdex-pool/pkg/mathutil"
	"github.com/timshannon/badgerhold/v4"
)

// Balance is the persisted amount of an asset held by a ledger account.
type Balance struct {
	Account string
	Asset   string
	Amount  uint64
}

func balanceKey(account, asset string) string {
	return account + "/" + asset
}

type ledgerImpl struct {
	*dbManager
}

func newLedgerImpl(db *dbManager) ports.Ledger {
	return ledgerImpl{db}
}

func (l ledgerImpl) Transfer(ctx context.Context, t domain.Transfer) error {
	if !t.Authority.CanMove(t.From) {
		return ports.ErrInvalidAuthority
	}

	return l.update(ctx, func(txn *badger.Txn) error {
		fromBalance, err := l.getBalance(txn, t.From, t.Asset)
		if err != nil {
			return err
		}
		newFromBalance, err := mathutil.Sub(fromBalance, t.Amount)
		if err != nil {
			return ports.ErrInsufficientBalance
		}
		if err := l.setBalance(txn, t.From, t.Asset, newFromBalance); err != nil {
			return err
		}

		toBalance, err := l.getBalance(txn, t.To, t.Asset)
		if err != nil {
			return err
		}
		newToBalance, err := mathutil.Add(toBalance, t.Amount)
		if err != nil {
			return err
		}
		return l.setBalance(txn, t.To, t.Asset, newToBalance)
	})
}

func (l ledgerImpl) Credit(
	ctx context.Context, account, asset string, amount uint64,
) error {
	return l.update(ctx, func(txn *badger.Txn) error {
		balance, err := l.getBalance(txn, account, asset)
		if err != nil {
			return err
		}
		newBalance, err := mathutil.Add(balance, amount)
		if err != nil {
			return err
		}
		return l.setBalance(txn, account, asset, newBalance)
	})
}

func (l ledgerImpl) GetBalance(
	ctx context.Context, account, asset string,
) (balance uint64, err error) {
	err = l.view(ctx, func(txn *badger.Txn) (err error) {
		balance, err = l.getBalance(txn, account, asset)
		return
	})
	return
}

func (l ledgerImpl) GetBalances(
	ctx context.Context, account string,
) (map[string]uint64, error) {
	var list []Balance
	query := badgerhold.Where("Account").Eq(account).And("Amount").Gt(uint64(0))
	if err := l.view(ctx, func(txn *badger.Txn) error {
		return l.store.TxFind(txn, &list, query)
	}); err != nil {
		return nil, err
	}

	balances := make(map[string]uint64, len(list))
	for _, b := range list {
		balances[b.Asset] = b.Amount
	}
	return balances, nil
}

func (l ledgerImpl) getBalance(
	txn *badger.Txn, account, asset string,
) (uint64, error) {
	var b Balance
	if err := l.store.TxGet(txn, balanceKey(account, asset), &b); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return b.Amount, nil
}

func (l ledgerImpl) setBalance(
	txn *badger.Txn, account, asset string, amount uint64,
) error {
	return l.store.TxUpsert(
		txn, balanceKey(account, asset), Balance{account, asset, amount},
	)
}
