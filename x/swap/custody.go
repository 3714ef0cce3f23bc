package swap

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x/token"
)

// VaultAddress is the account holding all escrowed tokens. It is derived
// from a condition so no private key exists for it.
var VaultAddress = tokenswap.NewCondition("swap", "vault", []byte("custody")).Address()

// Custody is the only component that moves tokens on behalf of the swap.
// It does not provide atomicity itself, callers run it inside a savepoint.
type Custody struct {
	tokens token.Mover
	vault  common.Address
}

// NewCustody returns a custody adapter holding funds in VaultAddress.
func NewCustody(tokens token.Mover) Custody {
	return Custody{tokens: tokens, vault: VaultAddress}
}

// Vault returns the address holding escrowed funds.
func (c Custody) Vault() common.Address {
	return c.vault
}

// PullInto moves amount of tok from the account of from into the vault.
// from must have approved the vault as spender for at least amount.
func (c Custody) PullInto(db tokenswap.KVStore, tok, from common.Address, amount *uint256.Int) error {
	if !tokenswap.IsPositive(amount) {
		return errors.Wrap(errors.ErrInvalidAmount, "pull must be positive")
	}
	if err := c.tokens.TransferFrom(db, tok, c.vault, from, c.vault, amount); err != nil {
		return errors.Wrapf(err, "pull %s of %s from %s", amount.Dec(), tok.Hex(), from.Hex())
	}
	return nil
}

// PushFrom moves amount of tok from the vault to to. A zero amount is a
// no-op. The vault holding less than amount means the escrow bookkeeping
// is broken and is reported as ErrInvariant.
func (c Custody) PushFrom(db tokenswap.KVStore, tok, to common.Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return nil
	}
	err := c.tokens.Transfer(db, tok, c.vault, to, amount)
	switch {
	case err == nil:
		return nil
	case token.ErrInsufficientFunds.Is(err):
		return errors.Wrapf(errors.ErrInvariant, "vault cannot pay %s of %s: %s", amount.Dec(), tok.Hex(), err)
	default:
		return errors.Wrapf(err, "push %s of %s to %s", amount.Dec(), tok.Hex(), to.Hex())
	}
}
