package orm

import (
	"bytes"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Indexer calculates the secondary index key for a model. Returning a nil
// key means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// Index maintains a secondary index from an indexer computed value to
// the primary keys of all models that produce it.
type Index struct {
	name    string
	id      []byte
	unique  bool
	indexer Indexer
}

// NewIndex constructs an index.
// If unique is true, a value may only point to a single primary key.
func NewIndex(bucket, name string, indexer Indexer, unique bool) Index {
	return Index{
		name:    name,
		id:      []byte("_i." + bucket + "_" + name + ":"),
		unique:  unique,
		indexer: indexer,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// indexKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i Index) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the model stored under pk in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
//
// Otherwise, it will check indexer(prev) and indexer(save)
// and make sure the key is now stored in the right location
func (i Index) Update(db tokenswap.KVStore, pk []byte, prev, save Model) error {
	type s struct{ a, b bool }
	switch (s{prev == nil, save == nil}) {
	case s{true, true}:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil model")
	case s{true, false}:
		val, err := i.indexer(save)
		if err != nil {
			return err
		}
		return i.insert(db, val, pk)
	case s{false, true}:
		val, err := i.indexer(prev)
		if err != nil {
			return err
		}
		return i.remove(db, val, pk)
	default:
		was, err := i.indexer(prev)
		if err != nil {
			return err
		}
		is, err := i.indexer(save)
		if err != nil {
			return err
		}
		// nothing changed, nothing to do
		if bytes.Equal(was, is) {
			return nil
		}
		if err := i.remove(db, was, pk); err != nil {
			return err
		}
		return i.insert(db, is, pk)
	}
}

// Keys returns all primary keys stored under the given index value, sorted
// in byte order. No match returns an empty result.
func (i Index) Keys(db tokenswap.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	if len(value) == 0 {
		return nil, nil
	}
	cur, err := db.Get(i.indexKey(value))
	if err != nil || cur == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{cur}, nil
	}
	var data MultiRef
	if err := data.Unmarshal(cur); err != nil {
		return nil, err
	}
	return data.Refs, nil
}

func (i Index) remove(db tokenswap.KVStore, index []byte, pk []byte) error {
	// don't deal with empty keys
	if len(index) == 0 {
		return nil
	}

	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrap(errors.ErrNotFound, "cannot remove index from nothing")
	}
	if i.unique {
		// if something else was here, don't delete
		if !bytes.Equal(cur, pk) {
			return errors.Wrap(errors.ErrNotFound, "cannot remove index from invalid object")
		}
		return db.Delete(key)
	}

	// otherwise, remove one from a list....
	var data MultiRef
	if err := data.Unmarshal(cur); err != nil {
		return err
	}
	if err := data.Remove(pk); err != nil {
		return err
	}
	// nothing left, delete this key
	if data.Size() == 0 {
		return db.Delete(key)
	}
	save, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, save)
}

func (i Index) insert(db tokenswap.KVStore, index []byte, pk []byte) error {
	// don't deal with empty keys
	if len(index) == 0 {
		return nil
	}

	key := i.indexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrap(errors.ErrDuplicate, i.name)
		}
		return db.Set(key, pk)
	}

	// otherwise, add one to a list....
	var data MultiRef
	if cur != nil {
		if err := data.Unmarshal(cur); err != nil {
			return err
		}
	}
	if err := data.Add(pk); err != nil {
		return err
	}
	save, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, save)
}
