/*
Package tokenswap defines all common interfaces to weave
together the swap escrow and its collaborators, as well as
implementations of some of the simpler components
(when interfaces would be too much overhead).

We pass context through context.Context between
app, middleware, and handlers. To do so, tokenswap defines
some common keys to store info, such as the calling
identity and the logger.

There should exist two functions for every XYZ of type T
that we want to support in Context:

	WithXYZ(Context, T) Context
	GetXYZ(Context) (val T, ok bool)
*/
package tokenswap

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just an alias for the standard implementation.
// We use functions to extend it to our domain
type Context = context.Context

type contextKey int // local to the tokenswap module

const (
	contextKeySigner contextKey = iota
	contextKeyLogger
	contextKeyHeight
)

var (
	// DefaultLogger is used for all context that have not
	// set anything themselves
	DefaultLogger = log.NewNopLogger()
)

// WithSigner sets the identity that issued the current call.
// The host is responsible for having authenticated it.
func WithSigner(ctx Context, signer common.Address) Context {
	return context.WithValue(ctx, contextKeySigner, signer)
}

// GetSigner returns the identity that issued the current call.
func GetSigner(ctx Context) (common.Address, bool) {
	val, ok := ctx.Value(contextKeySigner).(common.Address)
	return val, ok
}

// WithHeight sets the sequence number of the call being processed.
// The application increments it for every delivered message.
func WithHeight(ctx Context, height int64) Context {
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the sequence number of the call being processed.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithLogger sets the logger for this Context
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// Logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}

// GetLogger returns the currently set logger, or
// DefaultLogger if none was set
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}
