package app

import (
	"reflect"

	"github.com/iov-one/tokenswap"
)

// Decorators holds a chain of decorators, not yet resolved by a Handler
type Decorators struct {
	chain []tokenswap.Decorator
}

/*
ChainDecorators takes a chain of decorators,
and upon adding a final Handler (often a Router),
returns a Handler that will execute this whole stack.

	app.ChainDecorators(
	  utils.NewRecovery(),
	  utils.NewLogging(),
	  utils.NewSavepoint().OnDeliver(),
	).WithHandler(
	  router,
	)
*/
func ChainDecorators(chain ...tokenswap.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new chain with given decorators appended. Nil values
// are skipped.
func (d Decorators) Chain(chain ...tokenswap.Decorator) Decorators {
	next := make([]tokenswap.Decorator, 0, len(d.chain)+len(chain))
	next = append(next, d.chain...)
	for _, dec := range chain {
		if !isNil(dec) {
			next = append(next, dec)
		}
	}
	return Decorators{chain: next}
}

func isNil(d tokenswap.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler resolves the stack and returns a concrete Handler
// that will pass through the chain of decorators before calling
// the final Handler.
func (d Decorators) WithHandler(h tokenswap.Handler) tokenswap.Handler {
	// the first decorator of the chain is the outermost one
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = step{d: d.chain[i], next: h}
	}
	return h
}

// step captures one decorator around the rest of the stack.
type step struct {
	d    tokenswap.Decorator
	next tokenswap.Handler
}

var _ tokenswap.Handler = step{}

func (s step) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	return s.d.Check(ctx, db, tx, s.next)
}

func (s step) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	return s.d.Deliver(ctx, db, tx, s.next)
}
