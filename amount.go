package tokenswap

import (
	"strings"

	"github.com/holiman/uint256"

	"github.com/iov-one/tokenswap/errors"
)

// ParseAmount decodes a base 10 token amount. Amounts are 256 bit
// unsigned integers expressed in the smallest unit of the token.
func ParseAmount(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.Wrap(errors.ErrInvalidAmount, "empty")
	}
	amount, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidAmount, "%q: %s", s, err)
	}
	return amount, nil
}

// IsPositive returns true if the amount is set and greater than zero.
func IsPositive(amount *uint256.Int) bool {
	return amount != nil && !amount.IsZero()
}

// CloneAmount returns a copy that can be modified without affecting the
// original. A nil amount is returned as zero.
func CloneAmount(amount *uint256.Int) *uint256.Int {
	if amount == nil {
		return new(uint256.Int)
	}
	return new(uint256.Int).Set(amount)
}
