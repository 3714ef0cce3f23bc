package app

import (
	"sync"

	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

var genesisKey = []byte("_app:genesis")

// Application runs messages against a store. All calls are serialized, each
// runs on a fresh cache wrap of the store that is written back only if the
// call succeeds. Events of a delivered message are released to the sink
// once its writes are committed.
type Application struct {
	mu      sync.Mutex
	db      tokenswap.CacheableKVStore
	handler tokenswap.Handler
	sink    tokenswap.EventSink
	logger  log.Logger
	height  orm.Sequence
}

// NewApplication returns an application delivering to handler. sink may
// be nil.
func NewApplication(db tokenswap.CacheableKVStore, handler tokenswap.Handler, sink tokenswap.EventSink) *Application {
	return &Application{
		db:      db,
		handler: handler,
		sink:    sink,
		logger:  log.NewNopLogger(),
		height:  orm.NewSequence("_app", "height"),
	}
}

// WithLogger sets the logger passed to every call.
func (a *Application) WithLogger(logger log.Logger) *Application {
	a.logger = logger
	return a
}

// InitGenesis loads the initial state. It fails with ErrGenesisLoaded if
// the store was already initialized.
func (a *Application) InitGenesis(ctx tokenswap.Context, opts tokenswap.Options, init tokenswap.Initializer) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx = tokenswap.WithLogInfo(tokenswap.WithLogger(ctx, a.logger), "call", "genesis")
	cache := a.db.CacheWrap()
	defer cache.Discard()

	switch ok, err := cache.Has(genesisKey); {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case ok:
		return errors.Wrap(ErrGenesisLoaded, "store is not empty")
	}
	if err := init.FromGenesis(ctx, opts, cache); err != nil {
		return errors.Wrap(err, "genesis")
	}
	if err := cache.Set(genesisKey, []byte{1}); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Height returns the number of delivered messages.
func (a *Application) Height() (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	h, err := a.height.Latest(a.db)
	return int64(h), err
}

// Check runs the message without persisting anything.
func (a *Application) Check(ctx tokenswap.Context, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cache := a.db.CacheWrap()
	defer cache.Discard()

	ctx = tokenswap.WithLogInfo(tokenswap.WithLogger(ctx, a.logger),
		"call", "check",
		"path", tokenswap.GetPath(tx))
	return a.handler.Check(ctx, cache, tx)
}

// Deliver runs the message and commits its writes if it succeeds.
func (a *Application) Deliver(ctx tokenswap.Context, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	cache := a.db.CacheWrap()
	height, err := a.height.NextInt(cache)
	if err != nil {
		cache.Discard()
		return nil, errors.Wrap(err, "height")
	}
	ctx = tokenswap.WithHeight(ctx, int64(height))
	ctx = tokenswap.WithLogInfo(tokenswap.WithLogger(ctx, a.logger),
		"call", "deliver",
		"height", height,
		"path", tokenswap.GetPath(tx))

	res, err := a.handler.Deliver(ctx, cache, tx)
	if err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		cache.Discard()
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}

	if a.sink != nil {
		for _, ev := range res.Events {
			a.sink.Notify(ctx, ev)
		}
	}
	return res, nil
}

// View runs fn against the committed state.
func (a *Application) View(fn func(db tokenswap.ReadOnlyKVStore) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return fn(a.db)
}
