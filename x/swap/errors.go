package swap

import (
	"github.com/iov-one/tokenswap/errors"
)

// swap takes 200-209
var (
	ErrInvalidToken       = errors.Register(200, "invalid token")
	ErrRequestNotFound    = errors.Register(201, "swap request not found")
	ErrNotSender          = errors.Register(202, "not the sender")
	ErrNotReceiver        = errors.Register(203, "not the receiver")
	ErrRequestNotPending  = errors.Register(204, "swap request not pending")
	ErrInvalidFeePercent  = errors.Register(205, "invalid fee percent")
	ErrNotInitialized     = errors.Register(206, "swap not initialized")
	ErrAlreadyInitialized = errors.Register(207, "swap already initialized")
)
