package store

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/iov-one/tokenswap/errors"
)

// LevelDB is a persistent store backed by goleveldb. Writes issued through
// a CacheWrap are committed with a single leveldb batch, so a process crash
// never leaves half of a state transition on disk.
type LevelDB struct {
	db *leveldb.DB
	wo *opt.WriteOptions
}

var _ CacheableKVStore = (*LevelDB)(nil)

// OpenLevelDB opens (or creates) the database in dir. With sync set every
// committed batch is fsynced before Write returns.
func OpenLevelDB(dir string, sync bool) (*LevelDB, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open %q: %s", dir, err)
	}
	return &LevelDB{db: db, wo: &opt.WriteOptions{Sync: sync}}, nil
}

// MemLevelDB returns a leveldb instance kept entirely in memory.
func MemLevelDB() (*LevelDB, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open memory storage: %s", err)
	}
	return &LevelDB{db: db, wo: &opt.WriteOptions{}}, nil
}

// Close releases the database files.
func (l *LevelDB) Close() error {
	if err := l.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (l *LevelDB) Get(key []byte) ([]byte, error) {
	val, err := l.db.Get(key, nil)
	switch {
	case err == leveldb.ErrNotFound:
		return nil, nil
	case err != nil:
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

func (l *LevelDB) Has(key []byte) (bool, error) {
	ok, err := l.db.Has(key, nil)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

func (l *LevelDB) Set(key, value []byte) error {
	if err := l.db.Put(key, value, l.wo); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (l *LevelDB) Delete(key []byte) error {
	if err := l.db.Delete(key, l.wo); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// NewBatch returns an atomic batch writing to this database.
func (l *LevelDB) NewBatch() Batch {
	return &levelBatch{db: l.db, wo: l.wo, batch: new(leveldb.Batch)}
}

// CacheWrap stages writes in memory until Write is called.
func (l *LevelDB) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(l, l.NewBatch, nil)
}

type levelBatch struct {
	db    *leveldb.DB
	wo    *opt.WriteOptions
	batch *leveldb.Batch
}

func (b *levelBatch) Set(key, value []byte) error {
	b.batch.Put(key, value)
	return nil
}

func (b *levelBatch) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

func (b *levelBatch) Write() error {
	defer b.batch.Reset()
	if err := b.db.Write(b.batch, b.wo); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
