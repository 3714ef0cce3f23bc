package orm

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
)

type counter struct {
	Owner []byte
	Count uint64
}

func (c *counter) Marshal() ([]byte, error)   { return rlp.EncodeToBytes(c) }
func (c *counter) Unmarshal(raw []byte) error { return rlp.DecodeBytes(raw, c) }

func (c *counter) Validate() error {
	if len(c.Owner) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	return nil
}

type other struct{ counter }

func ownerIndexer(m Model) ([]byte, error) {
	c, ok := m.(*counter)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidType, m)
	}
	return c.Owner, nil
}

func newCounterBucket() ModelBucket {
	return NewModelBucket("cnts", &counter{}, WithIndex("owner", ownerIndexer, false))
}

func TestModelBucketPutOneDelete(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	var c counter
	err := b.One(db, []byte("a"), &c)
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, []byte("a"))))

	require.NoError(t, b.Put(db, []byte("a"), &counter{Owner: []byte("alice"), Count: 7}))
	require.NoError(t, b.One(db, []byte("a"), &c))
	assert.Equal(t, counter{Owner: []byte("alice"), Count: 7}, c)
	assert.NoError(t, b.Has(db, []byte("a")))

	raw, err := db.Get([]byte("cnts:a"))
	require.NoError(t, err)
	assert.NotNil(t, raw)

	require.NoError(t, b.Delete(db, []byte("a")))
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, []byte("a"))))
	assert.True(t, errors.ErrNotFound.Is(b.Delete(db, []byte("a"))))
}

func TestModelBucketRejects(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	cases := map[string]struct {
		run     func() error
		wantErr *errors.Error
	}{
		"invalid model": {
			run:     func() error { return b.Put(db, []byte("x"), &counter{}) },
			wantErr: errors.ErrEmpty,
		},
		"wrong model type on put": {
			run:     func() error { return b.Put(db, []byte("x"), &other{}) },
			wantErr: errors.ErrInvalidType,
		},
		"wrong model type on load": {
			run:     func() error { return b.One(db, []byte("x"), &other{}) },
			wantErr: errors.ErrInvalidType,
		},
		"unknown index": {
			run: func() error {
				var res []*counter
				_, err := b.ByIndex(db, "nope", []byte("x"), &res)
				return err
			},
			wantErr: ErrInvalidIndex,
		},
		"destination not a slice pointer": {
			run: func() error {
				var res []*counter
				_, err := b.ByIndex(db, "owner", []byte("x"), res)
				return err
			},
			wantErr: errors.ErrInvalidType,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.run()
			assert.True(t, tc.wantErr.Is(err), "%+v", err)
		})
	}
}

func TestModelBucketIndex(t *testing.T) {
	db := store.MemStore()
	b := newCounterBucket()

	require.NoError(t, b.Put(db, []byte("2"), &counter{Owner: []byte("alice"), Count: 2}))
	require.NoError(t, b.Put(db, []byte("1"), &counter{Owner: []byte("alice"), Count: 1}))
	require.NoError(t, b.Put(db, []byte("3"), &counter{Owner: []byte("bob"), Count: 3}))

	var res []*counter
	keys, err := b.ByIndex(db, "owner", []byte("alice"), &res)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("1"), []byte("2")}, keys)
	require.Len(t, res, 2)
	assert.Equal(t, uint64(1), res[0].Count)
	assert.Equal(t, uint64(2), res[1].Count)

	// moving an entity updates the index
	require.NoError(t, b.Put(db, []byte("2"), &counter{Owner: []byte("bob"), Count: 2}))
	res = nil
	keys, err = b.ByIndex(db, "owner", []byte("bob"), &res)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("2"), []byte("3")}, keys)

	require.NoError(t, b.Delete(db, []byte("1")))
	res = nil
	keys, err = b.ByIndex(db, "owner", []byte("alice"), &res)
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Empty(t, res)

	// the emptied index entry is removed
	ok, err := db.Has([]byte("_i.cnts_owner:alice"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUniqueIndex(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("uniq", &counter{}, WithIndex("owner", ownerIndexer, true))

	require.NoError(t, b.Put(db, []byte("1"), &counter{Owner: []byte("alice")}))
	err := b.Put(db, []byte("2"), &counter{Owner: []byte("alice")})
	assert.True(t, errors.ErrDuplicate.Is(err))

	var res []*counter
	keys, err := b.ByIndex(db, "owner", []byte("alice"), &res)
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("1")}, keys)
}
