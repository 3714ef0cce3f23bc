package swaptest

import (
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/iov-one/tokenswap"
)

var addressSeq uint64

// NewAddress returns a unique, non zero address. Each call derives it from
// a fresh test condition, so addresses never collide with extension owned
// accounts.
func NewAddress() common.Address {
	n := atomic.AddUint64(&addressSeq, 1)
	return NewCondition(n).Address()
}

// NewCondition returns a condition in the test extension namespace.
func NewCondition(n uint64) tokenswap.Condition {
	return tokenswap.NewCondition("test", "seq", uint256.NewInt(n).Bytes())
}

// Amount parses a decimal amount and panics on failure.
func Amount(s string) *uint256.Int {
	a, err := tokenswap.ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}
