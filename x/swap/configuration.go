package swap

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/gconf"
)

const confPkg = "swap"

// MaxFeePercent is the highest fee that can be configured.
const MaxFeePercent = 100

// Configuration is the global swap configuration. Administrator and
// Treasury are set once, FeePercent can be changed by the administrator.
type Configuration struct {
	Administrator common.Address `json:"administrator"`
	Treasury      common.Address `json:"treasury"`
	FeePercent    uint64         `json:"fee_percent"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Marshal() ([]byte, error)   { return rlp.EncodeToBytes(c) }
func (c *Configuration) Unmarshal(raw []byte) error { return rlp.DecodeBytes(raw, c) }

func (c *Configuration) Validate() error {
	var errs error
	if tokenswap.IsZeroAddress(c.Administrator) {
		errs = errors.AppendField(errs, "Administrator", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "Treasury", validateTreasury(c.Treasury))
	errs = errors.AppendField(errs, "FeePercent", validateFeePercent(c.FeePercent))
	return errs
}

// IsAdministrator returns true if addr may change the fee.
func (c *Configuration) IsAdministrator(addr common.Address) bool {
	return !tokenswap.IsZeroAddress(addr) && c.Administrator == addr
}

// validateTreasury rejects the vault, fees paid to it would stay in custody
// without belonging to any request.
func validateTreasury(addr common.Address) error {
	switch {
	case tokenswap.IsZeroAddress(addr):
		return errors.ErrEmpty
	case addr == VaultAddress:
		return errors.Wrap(errors.ErrInvalidInput, "treasury cannot be the vault")
	}
	return nil
}

// validateReceiver rejects the vault, it can never sign an approval.
func validateReceiver(addr common.Address) error {
	switch {
	case tokenswap.IsZeroAddress(addr):
		return errors.ErrEmpty
	case addr == VaultAddress:
		return errors.Wrap(errors.ErrInvalidInput, "receiver cannot be the vault")
	}
	return nil
}

func validateFeePercent(p uint64) error {
	if p > MaxFeePercent {
		return errors.Wrapf(ErrInvalidFeePercent, "%d is not in [0, %d]", p, MaxFeePercent)
	}
	return nil
}

// loadConf returns the stored configuration or ErrNotInitialized.
func loadConf(db tokenswap.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confPkg, &conf); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(ErrNotInitialized, "no configuration")
		}
		return nil, errors.Wrap(err, "load configuration")
	}
	return &conf, nil
}
