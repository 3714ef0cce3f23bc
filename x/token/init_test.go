package token

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest"
)

func TestGenesis(t *testing.T) {
	owner, alice := swaptest.NewAddress(), swaptest.NewAddress()

	cases := map[string]struct {
		genesis string
		wantErr *errors.Error
	}{
		"tokens with balances": {
			genesis: fmt.Sprintf(`{"tokens": [
				{"symbol": "AAA", "name": "A", "decimals": 18, "owner": %q,
				 "balances": [{"holder": %q, "amount": "1000000000000000000000"}]}
			]}`, owner.Hex(), alice.Hex()),
		},
		"no tokens": {
			genesis: `{}`,
		},
		"invalid amount": {
			genesis: fmt.Sprintf(`{"tokens": [
				{"symbol": "AAA", "owner": %q, "balances": [{"holder": %q, "amount": "-1"}]}
			]}`, owner.Hex(), alice.Hex()),
			wantErr: errors.ErrInvalidAmount,
		},
		"missing owner": {
			genesis: `{"tokens": [{"symbol": "AAA"}]}`,
			wantErr: errors.ErrEmpty,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts tokenswap.Options
			require.NoError(t, json.Unmarshal([]byte(tc.genesis), &opts))

			db := store.MemStore()
			var ini Initializer
			err := ini.FromGenesis(context.Background(), opts, db)
			if tc.wantErr != nil {
				assert.True(t, tc.wantErr.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)
		})
	}

	// a loaded ledger is usable
	var opts tokenswap.Options
	require.NoError(t, json.Unmarshal([]byte(fmt.Sprintf(`{"tokens": [
		{"symbol": "AAA", "owner": %q, "balances": [{"holder": %q, "amount": "7"}]}
	]}`, owner.Hex(), alice.Hex())), &opts))
	db := store.MemStore()
	ctrl := NewController()
	require.NoError(t, (&Initializer{Ctrl: ctrl}).FromGenesis(context.Background(), opts, db))
	assertBalance(t, db, ctrl, TokenAddress("AAA"), alice, "7")
}
