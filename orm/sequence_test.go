package orm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	a := NewSequence("swap", "id")
	b := NewSequence("swap", "other")

	latest, err := a.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), latest)

	first, err := a.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, EncodeSequence(1), first)

	second, err := a.NextVal(db)
	require.NoError(t, err)
	assert.Equal(t, -1, bytes.Compare(first, second))

	n, err := b.NextInt(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n)

	latest, err = a.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), latest)

	raw, err := db.Get([]byte("_s.swap:id"))
	require.NoError(t, err)
	assert.Equal(t, second, raw)
}

func TestSequenceOverflow(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("swap", "id")
	require.NoError(t, db.Set(s.id, EncodeSequence(^uint64(0))))
	_, err := s.NextInt(db)
	assert.True(t, errors.ErrOverflow.Is(err))
}

func TestDecodeSequence(t *testing.T) {
	v, err := DecodeSequence(nil)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)

	_, err = DecodeSequence([]byte{1, 2})
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestMultiRef(t *testing.T) {
	m, err := NewMultiRef([]byte("c"), []byte("a"), []byte("b"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, m.Refs)

	assert.True(t, errors.ErrDuplicate.Is(m.Add([]byte("b"))))
	require.NoError(t, m.Remove([]byte("b")))
	assert.True(t, errors.ErrNotFound.Is(m.Remove([]byte("b"))))

	raw, err := m.Marshal()
	require.NoError(t, err)
	var got MultiRef
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, m.Refs, got.Refs)
}
