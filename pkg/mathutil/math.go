// Package mathutil provides checked unsigned 64-bit arithmetic whose
// intermediate products are evaluated in 256-bit precision, so that
// expressions like x*y/z never lose bits before the final division.
package mathutil

import (
	"errors"
	"math/bits"

	"github.com/holiman/uint256"
)

var (
	// ErrMulOverflow is returned when a product, or a quotient derived from a
	// product, does not fit into 64 bits.
	ErrMulOverflow = errors.New("math overflow")
	// ErrAddOverflow is returned when an addition wraps around.
	ErrAddOverflow = errors.New("arithmetic overflow")
	// ErrUnderflow is returned when a subtraction would go negative.
	ErrUnderflow = errors.New("arithmetic underflow")
	// ErrDivisionByZero is returned when dividing by a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// Add returns x + y or ErrAddOverflow.
func Add(x, y uint64) (uint64, error) {
	sum, carry := bits.Add64(x, y, 0)
	if carry != 0 {
		return 0, ErrAddOverflow
	}
	return sum, nil
}

// Sub returns x - y or ErrUnderflow.
func Sub(x, y uint64) (uint64, error) {
	diff, borrow := bits.Sub64(x, y, 0)
	if borrow != 0 {
		return 0, ErrUnderflow
	}
	return diff, nil
}

// Product returns the exact product x * y.
func Product(x, y uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(x), uint256.NewInt(y))
}

// MulDiv returns floor(x * y / d).
func MulDiv(x, y, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrDivisionByZero
	}
	q := new(uint256.Int).Div(Product(x, y), uint256.NewInt(d))
	if !q.IsUint64() {
		return 0, ErrMulOverflow
	}
	return q.Uint64(), nil
}

// DivWide returns floor(n / d) for a wide numerator.
func DivWide(n *uint256.Int, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrDivisionByZero
	}
	q := new(uint256.Int).Div(n, uint256.NewInt(d))
	if !q.IsUint64() {
		return 0, ErrMulOverflow
	}
	return q.Uint64(), nil
}

// SqrtProduct returns floor(sqrt(x * y)), the geometric mean of x and y.
func SqrtProduct(x, y uint64) (uint64, error) {
	root := new(uint256.Int).Sqrt(Product(x, y))
	if !root.IsUint64() {
		return 0, ErrMulOverflow
	}
	return root.Uint64(), nil
}

// AbsDiff returns |x - y|.
func AbsDiff(x, y uint64) uint64 {
	if x > y {
		return x - y
	}
	return y - x
}

// Min returns the smaller of x and y.
func Min(x, y uint64) uint64 {
	if x < y {
		return x
	}
	return y
}
