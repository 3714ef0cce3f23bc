package swaptest

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestAuth(t *testing.T) {
	a, b, c := NewAddress(), NewAddress(), NewAddress()
	ctx := context.Background()

	auth := &Auth{}
	assert.Empty(t, auth.GetAddresses(ctx))
	assert.False(t, auth.HasAddress(ctx, a))

	auth = &Auth{Signer: a, Signers: []common.Address{b}}
	assert.Equal(t, []common.Address{a, b}, auth.GetAddresses(ctx))
	assert.True(t, auth.HasAddress(ctx, a))
	assert.True(t, auth.HasAddress(ctx, b))
	assert.False(t, auth.HasAddress(ctx, c))
}

func TestCtxAuth(t *testing.T) {
	a, b := NewAddress(), NewAddress()
	foo := &CtxAuth{Key: "foo"}
	bar := &CtxAuth{Key: "bar"}

	ctx := foo.SetAddresses(context.Background(), a)
	assert.Equal(t, []common.Address{a}, foo.GetAddresses(ctx))
	assert.True(t, foo.HasAddress(ctx, a))
	assert.False(t, foo.HasAddress(ctx, b))
	assert.Empty(t, bar.GetAddresses(ctx))
}

func TestNewAddressIsUnique(t *testing.T) {
	seen := make(map[common.Address]bool)
	for i := 0; i < 100; i++ {
		addr := NewAddress()
		assert.False(t, seen[addr])
		assert.NotEqual(t, common.Address{}, addr)
		seen[addr] = true
	}
}
