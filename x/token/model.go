package token

import (
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

var isSymbol = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,11}$`).MatchString

// TokenAddress returns the address of the token with given symbol.
func TokenAddress(symbol string) common.Address {
	return tokenswap.NewCondition("token", "erc20", []byte(symbol)).Address()
}

// Token describes a single fungible token.
type Token struct {
	Symbol   string
	Name     string
	Decimals uint8
	// Owner is the only identity allowed to mint.
	Owner  common.Address
	Supply *uint256.Int
}

var _ orm.Model = (*Token)(nil)

func (t *Token) Marshal() ([]byte, error)   { return rlp.EncodeToBytes(t) }
func (t *Token) Unmarshal(raw []byte) error { return rlp.DecodeBytes(raw, t) }

// Address returns the identity of this token.
func (t *Token) Address() common.Address {
	return TokenAddress(t.Symbol)
}

func (t *Token) Validate() error {
	var errs error
	if !isSymbol(t.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.Wrapf(errors.ErrInvalidInput, "%q", t.Symbol))
	}
	if len(t.Name) > 64 {
		errs = errors.AppendField(errs, "Name", errors.ErrInvalidInput)
	}
	if t.Decimals > 36 {
		errs = errors.AppendField(errs, "Decimals", errors.ErrInvalidInput)
	}
	if tokenswap.IsZeroAddress(t.Owner) {
		errs = errors.AppendField(errs, "Owner", errors.ErrEmpty)
	}
	if t.Supply == nil {
		errs = errors.AppendField(errs, "Supply", errors.ErrEmpty)
	}
	return errs
}

// Holding is the balance of an account or an allowance granted to a
// spender. Both are a single amount.
type Holding struct {
	Amount *uint256.Int
}

var _ orm.Model = (*Holding)(nil)

func (h *Holding) Marshal() ([]byte, error)   { return rlp.EncodeToBytes(h) }
func (h *Holding) Unmarshal(raw []byte) error { return rlp.DecodeBytes(raw, h) }

func (h *Holding) Validate() error {
	if h.Amount == nil {
		return errors.Field("Amount", errors.ErrEmpty, "")
	}
	return nil
}

// NewTokenBucket returns a bucket storing tokens under their address.
func NewTokenBucket() orm.ModelBucket {
	return orm.NewModelBucket("token", &Token{},
		orm.WithIndex("owner", ownerIndex, false))
}

func ownerIndex(m orm.Model) ([]byte, error) {
	t, ok := m.(*Token)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidModel, m)
	}
	return t.Owner.Bytes(), nil
}

// NewBalanceBucket returns a bucket storing balances under
// token address + holder address.
func NewBalanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokbal", &Holding{})
}

// NewAllowanceBucket returns a bucket storing allowances under
// token address + owner address + spender address.
func NewAllowanceBucket() orm.ModelBucket {
	return orm.NewModelBucket("tokallow", &Holding{})
}

func balanceKey(token, holder common.Address) []byte {
	return append(token.Bytes(), holder.Bytes()...)
}

func allowanceKey(token, owner, spender common.Address) []byte {
	key := append(token.Bytes(), owner.Bytes()...)
	return append(key, spender.Bytes()...)
}
