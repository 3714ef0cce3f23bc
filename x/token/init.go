package token

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

const optKey = "tokens"

// GenesisToken is used to parse the json from genesis file.
// Amounts are decimal strings, addresses are 0x prefixed hex.
type GenesisToken struct {
	Symbol   string           `json:"symbol"`
	Name     string           `json:"name"`
	Decimals uint8            `json:"decimals"`
	Owner    common.Address   `json:"owner"`
	Balances []GenesisBalance `json:"balances"`
}

// GenesisBalance is the initial balance of a single holder.
type GenesisBalance struct {
	Holder common.Address `json:"holder"`
	Amount string         `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct {
	Ctrl Controller
}

var _ tokenswap.Initializer = (*Initializer)(nil)

// FromGenesis creates all tokens declared under "tokens" and mints the
// declared balances.
func (i *Initializer) FromGenesis(ctx tokenswap.Context, opts tokenswap.Options, db tokenswap.KVStore) error {
	var tokens []GenesisToken
	if err := opts.ReadOptions(optKey, &tokens); err != nil {
		return err
	}
	ctrl := i.Ctrl
	if ctrl == nil {
		ctrl = NewController()
	}
	for j, gt := range tokens {
		t, err := ctrl.Create(db, gt.Owner, gt.Symbol, gt.Name, gt.Decimals)
		if err != nil {
			return errors.Wrapf(err, "token at position %d", j)
		}
		for _, b := range gt.Balances {
			amount, err := tokenswap.ParseAmount(b.Amount)
			if err != nil {
				return errors.Wrapf(err, "balance of %s in %s", b.Holder.Hex(), t.Symbol)
			}
			if err := ctrl.Mint(db, t.Address(), b.Holder, amount); err != nil {
				return errors.Wrapf(err, "balance of %s in %s", b.Holder.Hex(), t.Symbol)
			}
		}
		tokenswap.GetLogger(ctx).Info("token created from genesis", "symbol", t.Symbol, "address", t.Address().Hex())
	}
	return nil
}
