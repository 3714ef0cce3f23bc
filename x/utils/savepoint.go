package utils

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ tokenswap.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver so it will be triggered
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that will trigger on Check
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{
		onCheck:   true,
		onDeliver: s.onDeliver,
	}
}

// OnDeliver returns a savepoint that will trigger on Deliver
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{
		onCheck:   s.onCheck,
		onDeliver: true,
	}
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (*tokenswap.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}

	cstore, ok := store.(tokenswap.CacheableKVStore)
	if !ok {
		return next.Check(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	if res, err := next.Check(ctx, cache, tx); err != nil {
		cache.Discard()
		return nil, err
	} else if werr := cache.Write(); werr != nil {
		return nil, errors.Wrap(werr, "writing savepoint")
	} else {
		return res, nil
	}
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (*tokenswap.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}

	cstore, ok := store.(tokenswap.CacheableKVStore)
	if !ok {
		return next.Deliver(ctx, store, tx)
	}

	cache := cstore.CacheWrap()
	if res, err := next.Deliver(ctx, cache, tx); err != nil {
		cache.Discard()
		return nil, err
	} else if werr := cache.Write(); werr != nil {
		return nil, errors.Wrap(werr, "writing savepoint")
	} else {
		return res, nil
	}
}

// Atomic runs fn on a cache wrap of the store and commits its writes only
// if fn succeeds. Stores that cannot be cache wrapped are passed through,
// the caller is then responsible for rolling back.
func Atomic(store tokenswap.KVStore, fn func(tokenswap.KVStore) error) error {
	cstore, ok := store.(tokenswap.CacheableKVStore)
	if !ok {
		return fn(store)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
