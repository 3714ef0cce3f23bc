package utils

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest"
)

type testMsg struct{}

func (testMsg) Path() string    { return "test/msg" }
func (testMsg) Validate() error { return nil }

func TestSavepoint(t *testing.T) {
	// always write ok, ov before calling functions
	ok, ov := []byte("demo"), []byte("data")
	// some key, value to try to write
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}
	// a default error if desired
	derr := fmt.Errorf("something went wrong")

	cases := map[string]struct {
		save    Savepoint
		handler *swaptest.Handler
		check   bool
		wantErr bool
		written [][]byte
		missing [][]byte
	}{
		"savepoint deactivated, both written": {
			save:    NewSavepoint(),
			handler: &swaptest.Handler{WriteKey: nk, WriteValue: nv, CheckErr: derr},
			check:   true,
			wantErr: true,
			written: [][]byte{ok, nk},
		},
		"savepoint activated on check rolls back": {
			save:    NewSavepoint().OnCheck(),
			handler: &swaptest.Handler{WriteKey: nk, WriteValue: nv, CheckErr: derr},
			check:   true,
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"savepoint activated on deliver rolls back": {
			save:    NewSavepoint().OnDeliver(),
			handler: &swaptest.Handler{WriteKey: nk, WriteValue: nv, DeliverErr: derr},
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"double activation maintains both behaviors": {
			save:    NewSavepoint().OnDeliver().OnCheck(),
			handler: &swaptest.Handler{WriteKey: nk, WriteValue: nv, DeliverErr: derr},
			wantErr: true,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"check savepoint does not affect deliver": {
			save:    NewSavepoint().OnCheck(),
			handler: &swaptest.Handler{WriteKey: nk, WriteValue: nv, DeliverErr: derr},
			wantErr: true,
			written: [][]byte{ok, nk},
		},
		"success is committed": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &swaptest.Handler{WriteKey: nk, WriteValue: nv},
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			require.NoError(t, kv.Set(ok, ov))
			tx := tokenswap.NewTx(testMsg{})

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, tx, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, tx, tc.handler)
			}
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.True(t, has, "%x", k)
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				require.NoError(t, err)
				assert.False(t, has, "%x", k)
			}
		})
	}
}

func TestAtomic(t *testing.T) {
	kv := store.MemStore()

	err := Atomic(kv, func(db tokenswap.KVStore) error {
		require.NoError(t, db.Set([]byte("a"), []byte("1")))
		return fmt.Errorf("fail")
	})
	assert.Error(t, err)
	has, err := kv.Has([]byte("a"))
	require.NoError(t, err)
	assert.False(t, has)

	err = Atomic(kv, func(db tokenswap.KVStore) error {
		return db.Set([]byte("a"), []byte("1"))
	})
	require.NoError(t, err)
	has, err = kv.Has([]byte("a"))
	require.NoError(t, err)
	assert.True(t, has)
}
