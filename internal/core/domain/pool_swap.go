package domain

import (
	"github.com/tdex-network/tdex-pool/pkg/marketmaking"
	"github.com/tdex-network/tdex-pool/pkg/marketmaking/formula"
	"github.com/tdex-network/tdex-pool/pkg/mathutil"
)

// SwapResult reports the outcome of a swap.
type SwapResult struct {
	InputAsset  string
	OutputAsset string
	// AmountIn is what the trader pays, fee included when charged on input.
	AmountIn uint64
	// AmountOut is what the trader receives, net of fees.
	AmountOut uint64
	// Fee is always denominated in asset A.
	Fee       uint64
	Transfers []Transfer
}

// PreviewSwap prices a swap of amount units of inputAsset without changing
// the pool.
func (p *Pool) PreviewSwap(
	inputAsset, outputAsset string, amount uint64,
) (*SwapResult, error) {
	quote, err := p.quoteSwap(inputAsset, outputAsset, amount)
	if err != nil {
		return nil, err
	}
	return &SwapResult{
		InputAsset:  inputAsset,
		OutputAsset: outputAsset,
		AmountIn:    quote.AmountIn,
		AmountOut:   quote.AmountOut,
		Fee:         quote.Fee,
	}, nil
}

// Swap exchanges amount units of inputAsset for outputAsset at the constant
// product price. Selling A, the fee is computed on the input and paid on top
// by the trader. Selling B, the fee is withheld from the output. Fees are
// accrued apart from the reserves.
func (p *Pool) Swap(
	trader, inputAsset, outputAsset string, amount uint64,
) (*SwapResult, error) {
	if !isValidOwner(trader) {
		return nil, ErrInvalidOwner
	}

	quote, err := p.quoteSwap(inputAsset, outputAsset, amount)
	if err != nil {
		return nil, err
	}

	feesCollectedA, err := mathutil.Add(p.FeesCollectedA, quote.Fee)
	if err != nil {
		return nil, err
	}

	if inputAsset == p.AssetA {
		p.TotalA, p.TotalB = quote.BalanceIn, quote.BalanceOut
	} else {
		p.TotalB, p.TotalA = quote.BalanceIn, quote.BalanceOut
	}
	p.FeesCollectedA = feesCollectedA

	txs := transfers{}.
		add(
			trader, p.CustodyAccount(), inputAsset, quote.AmountIn,
			ParticipantAuthority(trader),
		).
		add(
			p.CustodyAccount(), trader, outputAsset, quote.AmountOut,
			p.Authority(),
		)

	return &SwapResult{
		InputAsset:  inputAsset,
		OutputAsset: outputAsset,
		AmountIn:    quote.AmountIn,
		AmountOut:   quote.AmountOut,
		Fee:         quote.Fee,
		Transfers:   txs,
	}, nil
}

func (p *Pool) quoteSwap(
	inputAsset, outputAsset string, amount uint64,
) (*marketmaking.SwapQuote, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	if inputAsset == outputAsset {
		return nil, ErrInvalidAccountInputs
	}
	if !p.HasAsset(inputAsset) || !p.HasAsset(outputAsset) {
		return nil, ErrInvalidAccounts
	}
	if !p.IsInitialized() {
		return nil, ErrPoolNotInitialized
	}
	if p.TotalA == 0 || p.TotalB == 0 {
		return nil, ErrInsufficientLiquidity
	}

	opts := &marketmaking.FormulaOpts{
		BalanceIn:           p.TotalA,
		BalanceOut:          p.TotalB,
		FeeRateBps:          p.FeeRateBps,
		ChargeFeeOnTheWayIn: true,
	}
	if inputAsset == p.AssetB {
		opts = &marketmaking.FormulaOpts{
			BalanceIn:           p.TotalB,
			BalanceOut:          p.TotalA,
			FeeRateBps:          p.FeeRateBps,
			ChargeFeeOnTheWayIn: false,
		}
	}

	return formula.ConstantProduct{}.OutGivenIn(opts, amount)
}
