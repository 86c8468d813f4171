package domain

import "github.com/tdex-network/tdex-pool/pkg/mathutil"

// WithdrawResult reports the outcome of a full withdrawal.
type WithdrawResult struct {
	SharesRedeemed uint64
	RedeemedA      uint64
	RedeemedB      uint64
	RedeemedFee    uint64
	// PayoutA is the amount of asset A paid out, fee share included.
	PayoutA   uint64
	Transfers []Transfer
}

// Withdraw redeems all the shares of the given position for its pro-rata
// portion of the reserves and of the accrued fees. The pool stays
// initialized even when drained.
// It's up to the caller to dispose of the position afterwards.
func (p *Pool) Withdraw(position *Position) (*WithdrawResult, error) {
	if position == nil || position.PoolKey != p.Key {
		return nil, ErrPositionPoolMismatch
	}
	if !p.IsInitialized() {
		return nil, ErrPoolNotInitialized
	}

	shares := position.Shares
	if p.TotalShares == 0 {
		return nil, ErrDivisionError
	}
	if shares > p.TotalShares {
		return nil, ErrUnderflow
	}

	redeemB, err := mathutil.MulDiv(p.TotalB, shares, p.TotalShares)
	if err != nil {
		return nil, err
	}
	redeemA, err := mathutil.MulDiv(p.TotalA, shares, p.TotalShares)
	if err != nil {
		return nil, err
	}
	redeemFee, err := mathutil.MulDiv(p.FeesCollectedA, shares, p.TotalShares)
	if err != nil {
		return nil, err
	}
	payoutA, err := mathutil.Add(redeemA, redeemFee)
	if err != nil {
		return nil, err
	}

	pool := *p
	if pool.TotalA, err = mathutil.Sub(pool.TotalA, redeemA); err != nil {
		return nil, err
	}
	if pool.TotalB, err = mathutil.Sub(pool.TotalB, redeemB); err != nil {
		return nil, err
	}
	if pool.FeesCollectedA, err = mathutil.Sub(
		pool.FeesCollectedA, redeemFee,
	); err != nil {
		return nil, err
	}
	if pool.TotalShares, err = mathutil.Sub(pool.TotalShares, shares); err != nil {
		return nil, err
	}
	*p = pool

	owner := position.Owner
	txs := transfers{}.
		add(p.CustodyAccount(), owner, p.AssetB, redeemB, p.Authority()).
		add(p.CustodyAccount(), owner, p.AssetA, payoutA, p.Authority())

	return &WithdrawResult{
		SharesRedeemed: shares,
		RedeemedA:      redeemA,
		RedeemedB:      redeemB,
		RedeemedFee:    redeemFee,
		PayoutA:        payoutA,
		Transfers:      txs,
	}, nil
}
