package domain

const (
	// DefaultFeeRateBps is the swap fee applied to every pool, 0.30%.
	DefaultFeeRateBps = 30
	// RatioPrecision scales reserve ratios before the integer division.
	RatioPrecision = 100_000
	// RatioTolerance is the divisor of the pool ratio that gives the max
	// deviation accepted for a deposit, ie. 1%.
	RatioTolerance = 100

	poolCustodyPrefix = "pool:"
)
