package token

import "github.com/iov-one/tokenswap/errors"

// token takes 110-119
var (
	ErrInsufficientFunds     = errors.Register(110, "insufficient funds")
	ErrInsufficientAllowance = errors.Register(111, "insufficient allowance")
	ErrUnknownToken          = errors.Register(112, "unknown token")
)
