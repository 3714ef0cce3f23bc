package x

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/swaptest"
)

func TestAuth(t *testing.T) {
	a := swaptest.NewAddress()
	b := swaptest.NewAddress()
	c := swaptest.NewAddress()

	ctx1 := &swaptest.CtxAuth{Key: "foo"}
	ctx2 := &swaptest.CtxAuth{Key: "bar"}

	cases := map[string]struct {
		ctx          tokenswap.Context
		auth         Authenticator
		mainSigner   common.Address
		wantInCtx    common.Address
		wantNotInCtx common.Address
		wantAll      []common.Address
	}{
		"empty context": {
			ctx:          context.Background(),
			auth:         &swaptest.Auth{},
			wantNotInCtx: b,
		},
		"signer a": {
			ctx:          context.Background(),
			auth:         &swaptest.Auth{Signer: a},
			mainSigner:   a,
			wantInCtx:    a,
			wantNotInCtx: b,
			wantAll:      []common.Address{a},
		},
		"chained signers keep order": {
			ctx: context.Background(),
			auth: ChainAuth(
				&swaptest.Auth{Signer: b},
				&swaptest.Auth{Signer: a}),
			mainSigner:   b,
			wantInCtx:    a,
			wantNotInCtx: c,
			wantAll:      []common.Address{b, a},
		},
		"ctxAuth with different key sees nothing": {
			ctx:          ctx1.SetAddresses(context.Background(), a, b),
			auth:         ctx2,
			wantNotInCtx: a,
		},
		"context signer": {
			ctx:          tokenswap.WithSigner(context.Background(), c),
			auth:         ContextAuth{},
			mainSigner:   c,
			wantInCtx:    c,
			wantNotInCtx: a,
			wantAll:      []common.Address{c},
		},
		"zero context signer is anonymous": {
			ctx:          tokenswap.WithSigner(context.Background(), common.Address{}),
			auth:         ContextAuth{},
			wantNotInCtx: common.Address{},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.mainSigner, MainSigner(tc.ctx, tc.auth))
			if !tokenswap.IsZeroAddress(tc.wantInCtx) {
				assert.True(t, tc.auth.HasAddress(tc.ctx, tc.wantInCtx))
			}
			assert.False(t, tc.auth.HasAddress(tc.ctx, tc.wantNotInCtx))
			assert.Equal(t, tc.wantAll, tc.auth.GetAddresses(tc.ctx))
			assert.True(t, HasAllAddresses(tc.ctx, tc.auth, tc.wantAll))
		})
	}
}
