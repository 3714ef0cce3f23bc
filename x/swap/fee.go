package swap

import (
	"github.com/holiman/uint256"
)

var hundred = uint256.NewInt(100)

// Fee returns floor(amount * feePercent / 100). The product is computed
// with a 512 bit intermediate so it never overflows. The result is never
// greater than amount.
func Fee(amount *uint256.Int, feePercent uint64) (*uint256.Int, error) {
	if err := validateFeePercent(feePercent); err != nil {
		return nil, err
	}
	if amount == nil || feePercent == 0 {
		return new(uint256.Int), nil
	}
	// feePercent <= 100 so the quotient always fits in 256 bits
	fee, _ := new(uint256.Int).MulDivOverflow(amount, uint256.NewInt(feePercent), hundred)
	return fee, nil
}
