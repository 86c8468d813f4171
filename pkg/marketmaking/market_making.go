package marketmaking

import "github.com/shopspring/decimal"

// FormulaOpts defines the reserves and fee needed to price a swap.
type FormulaOpts struct {
	// Reserve of the asset entering the pool.
	BalanceIn uint64
	// Reserve of the asset leaving the pool.
	BalanceOut uint64
	// Percentage fee expressed in basis points.
	FeeRateBps uint64
	// Defines if the fee is added on top of the input (true) or taken out of
	// the output (false).
	ChargeFeeOnTheWayIn bool
}

// SwapQuote is the outcome of pricing a swap against the reserves.
type SwapQuote struct {
	// Reserve of the input asset after the swap.
	BalanceIn uint64
	// Reserve of the output asset after the swap, net of any fee kept aside.
	BalanceOut uint64
	// Amount the trader pays, fee included when charged on the way in.
	AmountIn uint64
	// Amount the trader receives.
	AmountOut uint64
	// Fee kept by the pool. It is denominated in the input asset when charged
	// on the way in, in the output asset otherwise.
	Fee uint64
}

// MakingFormula defines the interface for implementing the formula used to
// price trades against a pool.
type MakingFormula interface {
	SpotPrice(opts *FormulaOpts) (decimal.Decimal, error)
	OutGivenIn(opts *FormulaOpts, amountIn uint64) (*SwapQuote, error)
	FormulaType() int
}
