package orm

import (
	"reflect"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	tokenswap.Persistent
	Validate() error
}

// ModelSlicePtr is a pointer to a slice of model pointers, for example
// *[]*swap.SwapRequest. ByIndex fills it with the matching models.
type ModelSlicePtr interface{}

// ModelBucket is implemented by buckets that operates on Models rather than
// raw bytes.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db tokenswap.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists and
	// ErrNotFound otherwise.
	Has(db tokenswap.ReadOnlyKVStore, key []byte) error

	// ByIndex returns all models referenced by the given index value. The
	// destination must be a pointer to a slice of model pointers. Primary
	// keys of the loaded models are returned in the same order.
	ByIndex(db tokenswap.ReadOnlyKVStore, indexName string, value []byte, dest ModelSlicePtr) ([][]byte, error)

	// Put saves given model in the database and updates all indexes.
	Put(db tokenswap.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db tokenswap.KVStore, key []byte) error
}

// ModelBucketOption configures a bucket when it is created.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build a secondary index using given
// indexer function.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic("index " + name + " declared twice")
		}
		mb.indexes[name] = NewIndex(mb.name, name, indexer, unique)
	}
}

// NewModelBucket returns a ModelBucket storing models of the same type as
// the given prototype under the "<name>:" prefix.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	tp := reflect.TypeOf(m)
	if tp.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   tp.Elem(),
		indexes: make(map[string]Index),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]Index
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) One(db tokenswap.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrInvalidType, "%T cannot be represented as %s", dest, reflect.PtrTo(mb.model))
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot load from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return nil
}

func (mb *modelBucket) Has(db tokenswap.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot check the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model.Name())
	}
	return nil
}

func (mb *modelBucket) ByIndex(db tokenswap.ReadOnlyKVStore, indexName string, value []byte, dest ModelSlicePtr) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "unknown index %q", indexName)
	}

	slice := reflect.ValueOf(dest)
	if slice.Kind() != reflect.Ptr || slice.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrInvalidType, "destination must be a pointer to a slice, got %T", dest)
	}
	if slice.Elem().Type().Elem() != reflect.PtrTo(mb.model) {
		return nil, errors.Wrapf(errors.ErrInvalidType, "%T cannot hold %s", dest, mb.model.Name())
	}

	keys, err := idx.Keys(db, value)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read index")
	}
	res := slice.Elem()
	for _, key := range keys {
		m := reflect.New(mb.model)
		if err := mb.One(db, key, m.Interface().(Model)); err != nil {
			return nil, errors.Wrapf(err, "index %q points to a missing entity", indexName)
		}
		res = reflect.Append(res, m)
	}
	slice.Elem().Set(res)
	return keys, nil
}

func (mb *modelBucket) Put(db tokenswap.KVStore, key []byte, m Model) error {
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrInvalidType, "cannot store %T in %q bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}

	if len(mb.indexes) > 0 {
		prev, err := mb.load(db, key)
		if err != nil {
			return err
		}
		for name, idx := range mb.indexes {
			if err := idx.Update(db, key, prev, m); err != nil {
				return errors.Wrapf(err, "cannot update %q index", name)
			}
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

func (mb *modelBucket) Delete(db tokenswap.KVStore, key []byte) error {
	prev, err := mb.load(db, key)
	if err != nil {
		return err
	}
	if prev == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model.Name())
	}
	for name, idx := range mb.indexes {
		if err := idx.Update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "cannot update %q index", name)
		}
	}
	return db.Delete(mb.dbKey(key))
}

// load returns the stored model or nil if there is none.
func (mb *modelBucket) load(db tokenswap.ReadOnlyKVStore, key []byte) (Model, error) {
	m := reflect.New(mb.model).Interface().(Model)
	switch err := mb.One(db, key, m); {
	case err == nil:
		return m, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, err
	}
}
