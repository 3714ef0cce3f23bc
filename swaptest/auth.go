package swaptest

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/iov-one/tokenswap"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses.
// You can use either Signer or Signers (or both) attributes to reference
// addresses. This is for the convenience and each time all signers
// (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer. This is a
	// convenience attribute when creating an authentication method for a
	// single signer.
	Signer common.Address

	// Signers represents an authentication of multiple signers.
	Signers []common.Address
}

func (a *Auth) GetAddresses(tokenswap.Context) []common.Address {
	if !tokenswap.IsZeroAddress(a.Signer) {
		return append([]common.Address{a.Signer}, a.Signers...)
	}
	return a.Signers
}

func (a *Auth) HasAddress(ctx tokenswap.Context, addr common.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if s == addr {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve addresses.
type CtxAuth struct {
	// Key used to set and retrieve addresses from the context. For
	// convenience only string type keys are allowed.
	Key string
}

func (a *CtxAuth) SetAddresses(ctx tokenswap.Context, addrs ...common.Address) tokenswap.Context {
	return context.WithValue(ctx, a.Key, addrs)
}

func (a *CtxAuth) GetAddresses(ctx tokenswap.Context) []common.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	addrs, ok := val.([]common.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []common.Address got %T", val))
	}
	return addrs
}

func (a *CtxAuth) HasAddress(ctx tokenswap.Context, addr common.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if s == addr {
			return true
		}
	}
	return false
}
