package token

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

// Mover moves tokens between accounts. This is what other extensions
// need to hold tokens in custody.
type Mover interface {
	// Transfer moves amount of token from the balance of from to the
	// balance of to. The caller must have authorized from.
	Transfer(db tokenswap.KVStore, token, from, to common.Address, amount *uint256.Int) error

	// TransferFrom moves amount of token from the balance of from to the
	// balance of to, consuming the allowance from granted to spender.
	TransferFrom(db tokenswap.KVStore, token, spender, from, to common.Address, amount *uint256.Int) error
}

// Controller is the full token ledger API.
type Controller interface {
	Mover

	// Create registers a new token owned by owner, with zero supply.
	Create(db tokenswap.KVStore, owner common.Address, symbol, name string, decimals uint8) (*Token, error)

	// Mint adds amount to the balance of to and the supply of token.
	Mint(db tokenswap.KVStore, token, to common.Address, amount *uint256.Int) error

	// Approve sets the amount spender may move from the balance of owner.
	// A new approval replaces the previous one.
	Approve(db tokenswap.KVStore, token, owner, spender common.Address, amount *uint256.Int) error

	// Token returns the token registered under given address.
	Token(db tokenswap.ReadOnlyKVStore, token common.Address) (*Token, error)

	// Balance returns the balance of holder. Unknown holders have zero.
	Balance(db tokenswap.ReadOnlyKVStore, token, holder common.Address) (*uint256.Int, error)

	// Allowance returns what spender may still move from owner.
	Allowance(db tokenswap.ReadOnlyKVStore, token, owner, spender common.Address) (*uint256.Int, error)
}

// BaseController is the default Controller implementation.
type BaseController struct {
	tokens     orm.ModelBucket
	balances   orm.ModelBucket
	allowances orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using the default buckets.
func NewController() BaseController {
	return BaseController{
		tokens:     NewTokenBucket(),
		balances:   NewBalanceBucket(),
		allowances: NewAllowanceBucket(),
	}
}

func (c BaseController) Create(db tokenswap.KVStore, owner common.Address, symbol, name string, decimals uint8) (*Token, error) {
	t := &Token{
		Symbol:   symbol,
		Name:     name,
		Decimals: decimals,
		Owner:    owner,
		Supply:   new(uint256.Int),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	key := t.Address().Bytes()
	switch err := c.tokens.Has(db, key); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "token %s", symbol)
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	if err := c.tokens.Put(db, key, t); err != nil {
		return nil, errors.Wrap(err, "cannot store token")
	}
	return t, nil
}

func (c BaseController) Token(db tokenswap.ReadOnlyKVStore, token common.Address) (*Token, error) {
	var t Token
	if err := c.tokens.One(db, token.Bytes(), &t); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrUnknownToken, "%s", token.Hex())
		}
		return nil, err
	}
	return &t, nil
}

func (c BaseController) Mint(db tokenswap.KVStore, token, to common.Address, amount *uint256.Int) error {
	if !tokenswap.IsPositive(amount) {
		return errors.Wrap(errors.ErrInvalidAmount, "mint must be positive")
	}
	if tokenswap.IsZeroAddress(to) {
		return errors.Wrap(errors.ErrInvalidInput, "cannot mint to the zero address")
	}
	t, err := c.Token(db, token)
	if err != nil {
		return err
	}
	supply, overflow := new(uint256.Int).AddOverflow(t.Supply, amount)
	if overflow {
		return errors.Wrapf(errors.ErrOverflow, "supply of %s", t.Symbol)
	}
	bal, err := c.Balance(db, token, to)
	if err != nil {
		return err
	}
	// supply bounds every balance, so the holder cannot overflow here
	bal.Add(bal, amount)

	t.Supply = supply
	if err := c.tokens.Put(db, token.Bytes(), t); err != nil {
		return errors.Wrap(err, "cannot store token")
	}
	return c.setBalance(db, token, to, bal)
}

func (c BaseController) Transfer(db tokenswap.KVStore, token, from, to common.Address, amount *uint256.Int) error {
	if _, err := c.Token(db, token); err != nil {
		return err
	}
	return c.move(db, token, from, to, amount)
}

func (c BaseController) TransferFrom(db tokenswap.KVStore, token, spender, from, to common.Address, amount *uint256.Int) error {
	if _, err := c.Token(db, token); err != nil {
		return err
	}
	allowed, err := c.Allowance(db, token, from, spender)
	if err != nil {
		return err
	}
	if allowed.Lt(amount) {
		return errors.Wrapf(ErrInsufficientAllowance, "%s of %s allowed, %s requested", allowed.Dec(), token.Hex(), amount.Dec())
	}
	// balance is checked before the allowance is consumed
	bal, err := c.Balance(db, token, from)
	if err != nil {
		return err
	}
	if bal.Lt(amount) {
		return errors.Wrapf(ErrInsufficientFunds, "%s of %s held, %s requested", bal.Dec(), token.Hex(), amount.Dec())
	}
	allowed.Sub(allowed, amount)
	if err := c.setAllowance(db, token, from, spender, allowed); err != nil {
		return err
	}
	return c.move(db, token, from, to, amount)
}

// move checks all preconditions before writing anything.
func (c BaseController) move(db tokenswap.KVStore, token, from, to common.Address, amount *uint256.Int) error {
	if amount == nil {
		return errors.Wrap(errors.ErrInvalidAmount, "nil")
	}
	if tokenswap.IsZeroAddress(to) {
		return errors.Wrap(errors.ErrInvalidInput, "cannot transfer to the zero address")
	}
	sender, err := c.Balance(db, token, from)
	if err != nil {
		return err
	}
	if sender.Lt(amount) {
		return errors.Wrapf(ErrInsufficientFunds, "%s of %s held, %s requested", sender.Dec(), token.Hex(), amount.Dec())
	}
	if from == to || amount.IsZero() {
		return nil
	}
	recipient, err := c.Balance(db, token, to)
	if err != nil {
		return err
	}
	if _, overflow := recipient.AddOverflow(recipient, amount); overflow {
		return errors.Wrapf(errors.ErrOverflow, "balance of %s", to.Hex())
	}
	sender.Sub(sender, amount)

	if err := c.setBalance(db, token, from, sender); err != nil {
		return err
	}
	return c.setBalance(db, token, to, recipient)
}

func (c BaseController) Approve(db tokenswap.KVStore, token, owner, spender common.Address, amount *uint256.Int) error {
	if amount == nil {
		return errors.Wrap(errors.ErrInvalidAmount, "nil")
	}
	if tokenswap.IsZeroAddress(spender) {
		return errors.Wrap(errors.ErrInvalidInput, "cannot approve the zero address")
	}
	if _, err := c.Token(db, token); err != nil {
		return err
	}
	return c.setAllowance(db, token, owner, spender, tokenswap.CloneAmount(amount))
}

func (c BaseController) Balance(db tokenswap.ReadOnlyKVStore, token, holder common.Address) (*uint256.Int, error) {
	return loadHolding(db, c.balances, balanceKey(token, holder))
}

func (c BaseController) Allowance(db tokenswap.ReadOnlyKVStore, token, owner, spender common.Address) (*uint256.Int, error) {
	return loadHolding(db, c.allowances, allowanceKey(token, owner, spender))
}

func (c BaseController) setBalance(db tokenswap.KVStore, token, holder common.Address, amount *uint256.Int) error {
	return saveHolding(db, c.balances, balanceKey(token, holder), amount)
}

func (c BaseController) setAllowance(db tokenswap.KVStore, token, owner, spender common.Address, amount *uint256.Int) error {
	return saveHolding(db, c.allowances, allowanceKey(token, owner, spender), amount)
}

// loadHolding returns a copy the caller may modify. Missing entries are zero.
func loadHolding(db tokenswap.ReadOnlyKVStore, b orm.ModelBucket, key []byte) (*uint256.Int, error) {
	var h Holding
	switch err := b.One(db, key, &h); {
	case err == nil:
		return tokenswap.CloneAmount(h.Amount), nil
	case errors.ErrNotFound.Is(err):
		return new(uint256.Int), nil
	default:
		return nil, err
	}
}

// saveHolding removes zero entries so the store only holds live balances.
func saveHolding(db tokenswap.KVStore, b orm.ModelBucket, key []byte, amount *uint256.Int) error {
	if amount.IsZero() {
		err := b.Delete(db, key)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return b.Put(db, key, &Holding{Amount: amount})
}
