package x

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/iov-one/tokenswap"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of
// handlers, so we can plug in another authentication system,
// rather than hard-coding one for all extensions.
type Authenticator interface {
	// GetAddresses reveals all identities that authorized the call,
	// the main signer first.
	GetAddresses(tokenswap.Context) []common.Address
	// HasAddress checks if the given identity authorized the call.
	HasAddress(tokenswap.Context, common.Address) bool
}

// ContextAuth authenticates the signer the host placed in the context
// with tokenswap.WithSigner.
type ContextAuth struct{}

var _ Authenticator = ContextAuth{}

func (ContextAuth) GetAddresses(ctx tokenswap.Context) []common.Address {
	signer, ok := tokenswap.GetSigner(ctx)
	if !ok || tokenswap.IsZeroAddress(signer) {
		return nil
	}
	return []common.Address{signer}
}

func (ContextAuth) HasAddress(ctx tokenswap.Context, addr common.Address) bool {
	signer, ok := tokenswap.GetSigner(ctx)
	return ok && !tokenswap.IsZeroAddress(signer) && signer == addr
}

// MultiAuth chains together many Authenticators into one
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetAddresses combines all addresses from all Authenticators
func (m MultiAuth) GetAddresses(ctx tokenswap.Context) []common.Address {
	var res []common.Address
	for _, impl := range m.impls {
		add := impl.GetAddresses(ctx)
		if len(add) > 0 {
			res = append(res, add...)
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this
func (m MultiAuth) HasAddress(ctx tokenswap.Context, addr common.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first authenticated address, or the zero address
// if the call is anonymous.
func MainSigner(ctx tokenswap.Context, auth Authenticator) common.Address {
	signers := auth.GetAddresses(ctx)
	if len(signers) == 0 {
		return common.Address{}
	}
	return signers[0]
}

// HasAllAddresses returns true if all elements in required are
// also in context.
func HasAllAddresses(ctx tokenswap.Context, auth Authenticator, required []common.Address) bool {
	for _, r := range required {
		if !auth.HasAddress(ctx, r) {
			return false
		}
	}
	return true
}
