// Package formula defines the formulas that implement the MakingFormula
// interface.
package formula

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking"
	"github.com/tdex-network/tdex-pool/pkg/mathutil"
)

const ConstantProductType = 1

var (
	// ErrInvalidOpts ...
	ErrInvalidOpts = errors.New("formula opts must not be nil")
	// ErrAmountTooLow ...
	ErrAmountTooLow = errors.New("provided amount is too low")
	// ErrBalanceTooLow ...
	ErrBalanceTooLow = errors.New("reserve balance amount is too low")
	// ErrInsufficientLiquidity is returned when the output reserve can't cover
	// the amount owed to the trader plus the fee.
	ErrInsufficientLiquidity = errors.New("insufficient liquidity")
)

// ConstantProduct defines an AMM strategy where the product of the two
// reserves stays constant across trades, fee excluded.
type ConstantProduct struct{}

// SpotPrice returns how many units of the output asset 1 unit of the input
// asset is worth, fees excluded.
func (ConstantProduct) SpotPrice(
	opts *marketmaking.FormulaOpts,
) (decimal.Decimal, error) {
	if opts == nil {
		return decimal.Zero, ErrInvalidOpts
	}
	if opts.BalanceIn == 0 || opts.BalanceOut == 0 {
		return decimal.Zero, ErrBalanceTooLow
	}

	balanceIn := decimal.NewFromBigInt(new(big.Int).SetUint64(opts.BalanceIn), 0)
	balanceOut := decimal.NewFromBigInt(new(big.Int).SetUint64(opts.BalanceOut), 0)
	return balanceOut.Div(balanceIn), nil
}

// OutGivenIn prices a swap of amountIn units of the input asset.
//
// When the fee is charged on the way in, it's computed over amountIn and the
// trader pays it on top; when it's charged on the way out, it's computed over
// the gross output and withheld from the amount paid to the trader. In both
// cases the fee is not added back to the reserves.
func (c ConstantProduct) OutGivenIn(
	opts *marketmaking.FormulaOpts, amountIn uint64,
) (*marketmaking.SwapQuote, error) {
	if opts == nil {
		return nil, ErrInvalidOpts
	}
	if amountIn == 0 {
		return nil, ErrAmountTooLow
	}

	if opts.ChargeFeeOnTheWayIn {
		return c.outGivenInFeeOnInput(opts, amountIn)
	}
	return c.outGivenInFeeOnOutput(opts, amountIn)
}

func (ConstantProduct) FormulaType() int {
	return ConstantProductType
}

func (ConstantProduct) outGivenInFeeOnInput(
	opts *marketmaking.FormulaOpts, amountIn uint64,
) (*marketmaking.SwapQuote, error) {
	newBalanceIn, err := mathutil.Add(opts.BalanceIn, amountIn)
	if err != nil {
		return nil, err
	}

	k := mathutil.Product(opts.BalanceOut, opts.BalanceIn)
	newBalanceOut, err := mathutil.DivWide(k, newBalanceIn)
	if err != nil {
		return nil, err
	}
	amountOut, err := mathutil.Sub(opts.BalanceOut, newBalanceOut)
	if err != nil {
		return nil, err
	}

	amountInWithFee, fee, err := mathutil.PlusFee(amountIn, opts.FeeRateBps)
	if err != nil {
		return nil, err
	}

	return &marketmaking.SwapQuote{
		BalanceIn:  newBalanceIn,
		BalanceOut: newBalanceOut,
		AmountIn:   amountInWithFee,
		AmountOut:  amountOut,
		Fee:        fee,
	}, nil
}

func (ConstantProduct) outGivenInFeeOnOutput(
	opts *marketmaking.FormulaOpts, amountIn uint64,
) (*marketmaking.SwapQuote, error) {
	newBalanceIn, err := mathutil.Add(opts.BalanceIn, amountIn)
	if err != nil {
		return nil, err
	}

	k := mathutil.Product(opts.BalanceOut, opts.BalanceIn)
	remaining, err := mathutil.DivWide(k, newBalanceIn)
	if err != nil {
		return nil, err
	}
	grossAmountOut, err := mathutil.Sub(opts.BalanceOut, remaining)
	if err != nil {
		return nil, err
	}

	amountOut, fee, err := mathutil.LessFee(grossAmountOut, opts.FeeRateBps)
	if err != nil {
		return nil, err
	}

	owed, err := mathutil.Add(amountOut, fee)
	if err != nil {
		return nil, err
	}
	if owed > opts.BalanceOut {
		return nil, ErrInsufficientLiquidity
	}

	return &marketmaking.SwapQuote{
		BalanceIn:  newBalanceIn,
		BalanceOut: opts.BalanceOut - owed,
		AmountIn:   amountIn,
		AmountOut:  amountOut,
		Fee:        fee,
	}, nil
}
