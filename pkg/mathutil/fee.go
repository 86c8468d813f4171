package mathutil

// TenThousands is the basis points denominator.
var TenThousands = uint64(10000)

// PlusFee calculates an amount with a fee added given an amount and a fee
// expressed in basis point (ie. 0.25% = 25). The fee is rounded down.
func PlusFee(amount, feeAsBasisPoint uint64) (withFee, calculatedFee uint64, err error) {
	calculatedFee, err = MulDiv(amount, feeAsBasisPoint, TenThousands)
	if err != nil {
		return 0, 0, err
	}
	withFee, err = Add(amount, calculatedFee)
	if err != nil {
		return 0, 0, err
	}
	return withFee, calculatedFee, nil
}

// LessFee calculates an amount with a fee subtracted given an amount and a
// fee expressed in basis point (ie. 0.25% = 25). The fee is rounded down.
func LessFee(amount, feeAsBasisPoint uint64) (withoutFee, calculatedFee uint64, err error) {
	calculatedFee, err = MulDiv(amount, feeAsBasisPoint, TenThousands)
	if err != nil {
		return 0, 0, err
	}
	withoutFee, err = Sub(amount, calculatedFee)
	if err != nil {
		return 0, 0, err
	}
	return withoutFee, calculatedFee, nil
}
