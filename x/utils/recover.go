package utils

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Recovery is a decorator to recover from panics in handlers,
// so we can log them as errors
type Recovery struct{}

var _ tokenswap.Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Check turns panics into normal errors
func (r Recovery) Check(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (_ *tokenswap.CheckResult, err error) {
	defer recoverPanic(ctx, tx, "check", &err)
	return next.Check(ctx, store, tx)
}

// Deliver turns panics into normal errors
func (r Recovery) Deliver(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (_ *tokenswap.DeliverResult, err error) {
	defer recoverPanic(ctx, tx, "deliver", &err)
	return next.Deliver(ctx, store, tx)
}

// recoverPanic must be deferred directly, recover returns nil otherwise.
func recoverPanic(ctx tokenswap.Context, tx tokenswap.Tx, call string, err *error) {
	if r := recover(); r != nil {
		*err = errors.Wrapf(errors.ErrPanic, "%v", r)
		tokenswap.GetLogger(ctx).Error("handler panic",
			"call", call, "path", tokenswap.GetPath(tx), "panic", r)
	}
}
