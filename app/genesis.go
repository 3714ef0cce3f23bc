package app

import (
	"encoding/json"
	"os"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// LoadGenesis reads a JSON genesis document. Each top level key is read by
// the initializer of the extension owning it.
func LoadGenesis(filePath string) (tokenswap.Options, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	var opts tokenswap.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "genesis %s: %s", filePath, err)
	}
	return opts, nil
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...tokenswap.Initializer) tokenswap.Initializer {
	return chainInitializer{inits: inits}
}

type chainInitializer struct {
	inits []tokenswap.Initializer
}

// FromGenesis passes opts to all Initializers in the list,
// aborting at the first error.
func (c chainInitializer) FromGenesis(ctx tokenswap.Context, opts tokenswap.Options, db tokenswap.KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(ctx, opts, db); err != nil {
			return err
		}
	}
	return nil
}
