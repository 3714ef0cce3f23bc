// Package store provides the key-value stores the ledger runs on: an
// in-memory btree, a btree cache wrap for staged commits and a goleveldb
// backend.
package store

import "github.com/iov-one/tokenswap"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = tokenswap.ReadOnlyKVStore
type SetDeleter = tokenswap.SetDeleter
type KVStore = tokenswap.KVStore
type Batch = tokenswap.Batch
type CacheableKVStore = tokenswap.CacheableKVStore
type KVCacheWrap = tokenswap.KVCacheWrap
