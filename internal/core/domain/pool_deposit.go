package domain

import "github.com/tdex-network/tdex-pool/pkg/mathutil"

// DepositResult reports the outcome of a deposit.
type DepositResult struct {
	// Bootstrap is true if the deposit seeded the pool.
	Bootstrap    bool
	AmountA      uint64
	AmountB      uint64
	SharesIssued uint64
	// Transfers moving the deposited funds into the pool custody.
	Transfers []Transfer
}

// Deposit adds amountA and amountB to the pool reserves and issues shares to
// the given position. The first deposit of an uninitialized pool sets the
// price, while any later one must respect the current reserve ratio within
// 1%. An initialized pool drained by withdrawals has no ratio left and
// rejects deposits with ErrDivisionError.
// Pool and position are left untouched if an error is returned.
func (p *Pool) Deposit(
	position *Position, amountA, amountB uint64,
) (*DepositResult, error) {
	if position == nil || position.PoolKey != p.Key {
		return nil, ErrPositionPoolMismatch
	}
	if amountA == 0 && amountB == 0 {
		return nil, ErrZeroAmount
	}

	bootstrap := !p.IsInitialized()

	var shares uint64
	var err error
	if bootstrap {
		shares, err = p.bootstrapShares(amountA, amountB)
	} else {
		shares, err = p.proportionalShares(amountA, amountB)
	}
	if err != nil {
		return nil, err
	}

	pool := *p
	pos := *position
	if pool.TotalA, err = mathutil.Add(pool.TotalA, amountA); err != nil {
		return nil, err
	}
	if pool.TotalB, err = mathutil.Add(pool.TotalB, amountB); err != nil {
		return nil, err
	}
	if pool.TotalShares, err = mathutil.Add(pool.TotalShares, shares); err != nil {
		return nil, err
	}
	if pos.DepositedA, err = mathutil.Add(pos.DepositedA, amountA); err != nil {
		return nil, err
	}
	if pos.DepositedB, err = mathutil.Add(pos.DepositedB, amountB); err != nil {
		return nil, err
	}
	if pos.Shares, err = mathutil.Add(pos.Shares, shares); err != nil {
		return nil, err
	}
	if !pool.Initialized {
		pool.FeeRateBps = DefaultFeeRateBps
		pool.Initialized = true
	}

	*p = pool
	*position = pos

	owner := position.Owner
	authority := ParticipantAuthority(owner)
	txs := transfers{}.
		add(owner, p.CustodyAccount(), p.AssetA, amountA, authority).
		add(owner, p.CustodyAccount(), p.AssetB, amountB, authority)

	return &DepositResult{
		Bootstrap:    bootstrap,
		AmountA:      amountA,
		AmountB:      amountB,
		SharesIssued: shares,
		Transfers:    txs,
	}, nil
}

func (p *Pool) bootstrapShares(amountA, amountB uint64) (uint64, error) {
	shares, err := mathutil.SqrtProduct(amountA, amountB)
	if err != nil {
		return 0, err
	}
	if shares == 0 {
		return 0, ErrZeroShares
	}
	return shares, nil
}

func (p *Pool) proportionalShares(amountA, amountB uint64) (uint64, error) {
	depositRatio, err := mathutil.MulDiv(amountA, RatioPrecision, amountB)
	if err != nil {
		return 0, err
	}
	poolRatio, err := mathutil.MulDiv(p.TotalA, RatioPrecision, p.TotalB)
	if err != nil {
		return 0, err
	}
	if mathutil.AbsDiff(depositRatio, poolRatio) > poolRatio/RatioTolerance {
		return 0, ErrImbalancedDeposit
	}

	sharesA, err := mathutil.MulDiv(amountA, p.TotalShares, p.TotalA)
	if err != nil {
		return 0, err
	}
	sharesB, err := mathutil.MulDiv(amountB, p.TotalShares, p.TotalB)
	if err != nil {
		return 0, err
	}

	shares := mathutil.Min(sharesA, sharesB)
	if shares == 0 {
		return 0, ErrZeroShares
	}
	return shares, nil
}
