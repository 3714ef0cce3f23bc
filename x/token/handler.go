package token

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x"
)

// Event types emitted by the token handlers.
const (
	EventCreated  = "token.created"
	EventMint     = "token.mint"
	EventTransfer = "token.transfer"
	EventApproval = "token.approval"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r tokenswap.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&CreateMsg{}, CreateHandler{auth: auth, ctrl: ctrl})
	r.Handle(&MintMsg{}, MintHandler{auth: auth, ctrl: ctrl})
	r.Handle(&TransferMsg{}, TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(&ApproveMsg{}, ApproveHandler{auth: auth, ctrl: ctrl})
}

// CreateHandler registers new tokens.
type CreateHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tokenswap.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	switch _, err := h.ctrl.Token(db, TokenAddress(msg.Symbol)); {
	case err == nil:
		return nil, errors.Wrapf(errors.ErrDuplicate, "token %s", msg.Symbol)
	case !ErrUnknownToken.Is(err):
		return nil, err
	}
	return &tokenswap.CheckResult{}, nil
}

func (h CreateHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	t, err := h.ctrl.Create(db, owner, msg.Symbol, msg.Name, msg.Decimals)
	if err != nil {
		return nil, err
	}
	addr := t.Address()
	return &tokenswap.DeliverResult{
		Data: addr.Bytes(),
		Log:  "token " + t.Symbol + " created",
		Events: []tokenswap.Event{
			tokenswap.NewEvent(EventCreated, "token", addr.Hex(), "symbol", t.Symbol, "owner", owner.Hex()),
		},
	}, nil
}

func (h CreateHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*CreateMsg, common.Address, error) {
	var msg CreateMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, common.Address{}, errors.Wrap(err, "load msg")
	}
	owner := x.MainSigner(ctx, h.auth)
	if tokenswap.IsZeroAddress(owner) {
		return nil, common.Address{}, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return &msg, owner, nil
}

// MintHandler issues new tokens on behalf of the token owner.
type MintHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tokenswap.Handler = MintHandler{}

func (h MintHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{}, nil
}

func (h MintHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Mint(db, msg.Token, msg.To, msg.Amount); err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{
		Events: []tokenswap.Event{
			tokenswap.NewEvent(EventMint, "token", msg.Token.Hex(), "to", msg.To.Hex(), "amount", msg.Amount.Dec()),
		},
	}, nil
}

func (h MintHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*MintMsg, error) {
	var msg MintMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	t, err := h.ctrl.Token(db, msg.Token)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, t.Owner) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "only the owner of %s can mint", t.Symbol)
	}
	return &msg, nil
}

// TransferHandler moves tokens owned by the signer.
type TransferHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tokenswap.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{}, nil
}

func (h TransferHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, from, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Transfer(db, msg.Token, from, msg.To, msg.Amount); err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{
		Events: []tokenswap.Event{
			tokenswap.NewEvent(EventTransfer, "token", msg.Token.Hex(), "from", from.Hex(), "to", msg.To.Hex(), "amount", msg.Amount.Dec()),
		},
	}, nil
}

func (h TransferHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*TransferMsg, common.Address, error) {
	var msg TransferMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, common.Address{}, errors.Wrap(err, "load msg")
	}
	from := x.MainSigner(ctx, h.auth)
	if tokenswap.IsZeroAddress(from) {
		return nil, common.Address{}, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return &msg, from, nil
}

// ApproveHandler sets allowances over the signer's balance.
type ApproveHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tokenswap.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	msg, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Token(db, msg.Token); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Approve(db, msg.Token, owner, msg.Spender, msg.Amount); err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{
		Events: []tokenswap.Event{
			tokenswap.NewEvent(EventApproval, "token", msg.Token.Hex(), "owner", owner.Hex(), "spender", msg.Spender.Hex(), "amount", msg.Amount.Dec()),
		},
	}, nil
}

func (h ApproveHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*ApproveMsg, common.Address, error) {
	var msg ApproveMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, common.Address{}, errors.Wrap(err, "load msg")
	}
	owner := x.MainSigner(ctx, h.auth)
	if tokenswap.IsZeroAddress(owner) {
		return nil, common.Address{}, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return &msg, owner, nil
}
