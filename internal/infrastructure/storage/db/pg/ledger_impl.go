package postgresdb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/tdex-network/tdex-pool/internal/core/domain"
	"github.com/tdex-network/tdex-pool/internal/core/ports"
)

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
	if t.Amount == 0 {
		return nil
	}

	return l.execTx(ctx, func(q querier) error {
		tag, err := q.Exec(ctx, `
			UPDATE balances SET amount = amount - $3::text::numeric
			WHERE account = $1 AND asset = $2 AND amount >= $3::text::numeric`,
			t.From, t.Asset, numeric(t.Amount),
		)
		if err != nil {
			return fmt.Errorf("failed to debit account: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ports.ErrInsufficientBalance
		}

		return l.credit(ctx, q, t.To, t.Asset, t.Amount)
	})
}

func (l ledgerImpl) Credit(
	ctx context.Context, account, asset string, amount uint64,
) error {
	return l.execTx(ctx, func(q querier) error {
		return l.credit(ctx, q, account, asset, amount)
	})
}

func (l ledgerImpl) GetBalance(
	ctx context.Context, account, asset string,
) (uint64, error) {
	var amount string
	if err := l.querier(ctx).QueryRow(ctx,
		"SELECT amount::text FROM balances WHERE account = $1 AND asset = $2",
		account, asset,
	).Scan(&amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return strconv.ParseUint(amount, 10, 64)
}

func (l ledgerImpl) GetBalances(
	ctx context.Context, account string,
) (map[string]uint64, error) {
	rows, err := l.querier(ctx).Query(ctx,
		"SELECT asset, amount::text FROM balances "+
			"WHERE account = $1 AND amount > 0",
		account,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make(map[string]uint64)
	for rows.Next() {
		var asset, amount string
		if err := rows.Scan(&asset, &amount); err != nil {
			return nil, err
		}
		v, err := strconv.ParseUint(amount, 10, 64)
		if err != nil {
			return nil, err
		}
		balances[asset] = v
	}
	return balances, rows.Err()
}

func (l ledgerImpl) credit(
	ctx context.Context, q querier, account, asset string, amount uint64,
) error {
	var newBalance string
	if err := q.QueryRow(ctx, `
		INSERT INTO balances (account, asset, amount)
		VALUES ($1, $2, $3::text::numeric)
		ON CONFLICT (account, asset) DO UPDATE
		SET amount = balances.amount + EXCLUDED.amount
		RETURNING amount::text`,
		account, asset, numeric(amount),
	).Scan(&newBalance); err != nil {
		return fmt.Errorf("failed to credit account: %w", err)
	}

	if _, err := strconv.ParseUint(newBalance, 10, 64); err != nil {
		return domain.ErrOverflow
	}
	return nil
}
