package token

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

const (
	pathCreateMsg   = "token/create"
	pathMintMsg     = "token/mint"
	pathTransferMsg = "token/transfer"
	pathApproveMsg  = "token/approve"
)

var _ tokenswap.Msg = (*CreateMsg)(nil)
var _ tokenswap.Msg = (*MintMsg)(nil)
var _ tokenswap.Msg = (*TransferMsg)(nil)
var _ tokenswap.Msg = (*ApproveMsg)(nil)

// CreateMsg registers a new token owned by the signer.
type CreateMsg struct {
	Symbol   string
	Name     string
	Decimals uint8
}

// MintMsg issues new tokens. Only the token owner may sign it.
type MintMsg struct {
	Token  common.Address
	To     common.Address
	Amount *uint256.Int
}

// TransferMsg moves tokens from the signer to another account.
type TransferMsg struct {
	Token  common.Address
	To     common.Address
	Amount *uint256.Int
}

// ApproveMsg sets the allowance of a spender over the signer's balance.
type ApproveMsg struct {
	Token   common.Address
	Spender common.Address
	Amount  *uint256.Int
}

func (CreateMsg) Path() string   { return pathCreateMsg }
func (MintMsg) Path() string     { return pathMintMsg }
func (TransferMsg) Path() string { return pathTransferMsg }
func (ApproveMsg) Path() string  { return pathApproveMsg }

func (m *CreateMsg) Validate() error {
	if !isSymbol(m.Symbol) {
		return errors.Field("Symbol", errors.ErrInvalidInput, "%q", m.Symbol)
	}
	return nil
}

func (m *MintMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Token", validateAddress(m.Token))
	errs = errors.AppendField(errs, "To", validateAddress(m.To))
	if !tokenswap.IsPositive(m.Amount) {
		errs = errors.AppendField(errs, "Amount", errors.ErrInvalidAmount)
	}
	return errs
}

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Token", validateAddress(m.Token))
	errs = errors.AppendField(errs, "To", validateAddress(m.To))
	if m.Amount == nil {
		errs = errors.AppendField(errs, "Amount", errors.ErrEmpty)
	}
	return errs
}

func (m *ApproveMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Token", validateAddress(m.Token))
	errs = errors.AppendField(errs, "Spender", validateAddress(m.Spender))
	if m.Amount == nil {
		errs = errors.AppendField(errs, "Amount", errors.ErrEmpty)
	}
	return errs
}

func validateAddress(a common.Address) error {
	if tokenswap.IsZeroAddress(a) {
		return errors.ErrEmpty
	}
	return nil
}
