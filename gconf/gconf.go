package gconf

import (
	"github.com/iov-one/tokenswap/errors"
)

// ReadStore is a subset of tokenswap.ReadOnlyKVStore.
type ReadStore interface {
	Get([]byte) ([]byte, error)
}

// Store is a subset of tokenswap.KVStore.
type Store interface {
	ReadStore
	Set([]byte, []byte) error
}

func key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save will Validate the object, before writing it to a special "configuration"
// singleton for that package name.
func Save(db Store, pkg string, src ValidMarshaler) error {
	key := key(pkg)
	if err := src.Validate(); err != nil {
		return errors.Wrapf(err, "validation: key %q", key)
	}
	raw, err := src.Marshal()
	if err != nil {
		return errors.Wrapf(err, "marshal: key %q", key)
	}
	return db.Set(key, raw)
}

// ValidMarshaler is implemented by object that can serialize itself to a binary
// representation.
// You must add your own Validate method
type ValidMarshaler interface {
	Marshal() ([]byte, error)
	Validate() error
}

// Load reads the configuration of given package into dst. ErrNotFound is
// returned if the configuration was never saved.
func Load(db ReadStore, pkg string, dst Unmarshaler) error {
	key := key(pkg)
	raw, err := db.Get(key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "key %q", key)
	}
	if err := dst.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "unmarshal: key %q", key)
	}
	return nil
}

// Exists returns true if a configuration for given package was saved.
func Exists(db ReadStore, pkg string) (bool, error) {
	raw, err := db.Get(key(pkg))
	if err != nil {
		return false, err
	}
	return raw != nil, nil
}

// Create saves the configuration only if none exists yet. ErrDuplicate is
// returned otherwise.
func Create(db Store, pkg string, src ValidMarshaler) error {
	switch ok, err := Exists(db, pkg); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "configuration for %q", pkg)
	}
	return Save(db, pkg, src)
}

// Unmarshaler is implemented by object that can load their state from given
// binary representation.
type Unmarshaler interface {
	Unmarshal([]byte) error
}

type Configuration interface {
	ValidMarshaler
	Unmarshaler
}
