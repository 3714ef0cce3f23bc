package swap

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/gconf"
)

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ tokenswap.Initializer = (*Initializer)(nil)

// FromGenesis stores the configuration declared under conf.swap. A genesis
// without it leaves the swap uninitialized, so it can later be set up
// with an InitializeMsg.
func (*Initializer) FromGenesis(ctx tokenswap.Context, opts tokenswap.Options, db tokenswap.KVStore) error {
	var conf Configuration
	switch err := gconf.InitConfig(db, opts, confPkg, &conf); {
	case err == nil:
		tokenswap.GetLogger(ctx).Info("swap initialized from genesis",
			"administrator", conf.Administrator.Hex(),
			"treasury", conf.Treasury.Hex(),
			"fee_percent", conf.FeePercent)
		return nil
	case errors.ErrNotFound.Is(err):
		return nil
	default:
		return err
	}
}
