package swap

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
	"github.com/iov-one/tokenswap/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r tokenswap.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(&RequestMsg{}, RequestHandler{auth: auth, ctrl: ctrl})
	r.Handle(&ApproveMsg{}, ApproveHandler{auth: auth, ctrl: ctrl})
	r.Handle(&CancelMsg{}, CancelHandler{auth: auth, ctrl: ctrl})
	r.Handle(&RejectMsg{}, RejectHandler{auth: auth, ctrl: ctrl})
	r.Handle(&InitializeMsg{}, InitializeHandler{auth: auth, ctrl: ctrl})
	r.Handle(&SetTaxFeeMsg{}, SetTaxFeeHandler{auth: auth, ctrl: ctrl})
}

// RequestHandler escrows the signer's tokens and opens a request.
type RequestHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tokenswap.Handler = RequestHandler{}

func (h RequestHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	if _, err := h.ctrl.Configuration(db); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{}, nil
}

func (h RequestHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	req, err := h.ctrl.RequestSwap(db, sender, msg.Receiver, msg.SrcToken, msg.SrcAmount, msg.DestToken, msg.DestAmount)
	if err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{
		Data:   orm.EncodeSequence(req.ID),
		Events: []tokenswap.Event{createdEvent(req)},
	}, nil
}

func (h RequestHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*RequestMsg, common.Address, error) {
	var msg RequestMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, common.Address{}, errors.Wrap(err, "load msg")
	}
	sender, err := signer(ctx, h.auth)
	if err != nil {
		return nil, common.Address{}, err
	}
	return &msg, sender, nil
}

// ApproveHandler settles a request on behalf of its receiver.
type ApproveHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tokenswap.Handler = ApproveHandler{}

func (h ApproveHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	var msg ApproveMsg
	if _, err := loadPending(ctx, h.auth, h.ctrl, db, tx, &msg, &msg.ID, isReceiver); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{}, nil
}

func (h ApproveHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	var msg ApproveMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	s, err := h.ctrl.ApproveSwap(db, caller, msg.ID)
	if err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{
		Data:   orm.EncodeSequence(msg.ID),
		Events: []tokenswap.Event{approvedEvent(s)},
	}, nil
}

// CancelHandler withdraws a request on behalf of its sender.
type CancelHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tokenswap.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	var msg CancelMsg
	if _, err := loadPending(ctx, h.auth, h.ctrl, db, tx, &msg, &msg.ID, isSender); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{}, nil
}

func (h CancelHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	var msg CancelMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	req, err := h.ctrl.CancelSwapRequest(db, caller, msg.ID)
	if err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{
		Data:   orm.EncodeSequence(msg.ID),
		Events: []tokenswap.Event{cancelledEvent(req)},
	}, nil
}

// RejectHandler declines a request on behalf of its receiver.
type RejectHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tokenswap.Handler = RejectHandler{}

func (h RejectHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	var msg RejectMsg
	if _, err := loadPending(ctx, h.auth, h.ctrl, db, tx, &msg, &msg.ID, isReceiver); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{}, nil
}

func (h RejectHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	var msg RejectMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	req, err := h.ctrl.RejectSwap(db, caller, msg.ID)
	if err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{
		Data:   orm.EncodeSequence(msg.ID),
		Events: []tokenswap.Event{rejectedEvent(req)},
	}, nil
}

// InitializeHandler configures the swap once. The signer becomes the
// administrator.
type InitializeHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tokenswap.Handler = InitializeHandler{}

func (h InitializeHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	switch _, err := h.ctrl.Configuration(db); {
	case err == nil:
		return nil, errors.Wrap(ErrAlreadyInitialized, "configuration exists")
	case !ErrNotInitialized.Is(err):
		return nil, err
	}
	return &tokenswap.CheckResult{}, nil
}

func (h InitializeHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, admin, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf, err := h.ctrl.Initialize(db, admin, msg.Treasury, msg.FeePercent)
	if err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{
		Log:    "swap initialized",
		Events: []tokenswap.Event{confEvent(EventInitialized, conf)},
	}, nil
}

func (h InitializeHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*InitializeMsg, common.Address, error) {
	var msg InitializeMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, common.Address{}, errors.Wrap(err, "load msg")
	}
	admin, err := signer(ctx, h.auth)
	if err != nil {
		return nil, common.Address{}, err
	}
	return &msg, admin, nil
}

// SetTaxFeeHandler changes the fee percent on behalf of the administrator.
type SetTaxFeeHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tokenswap.Handler = SetTaxFeeHandler{}

func (h SetTaxFeeHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{}, nil
}

func (h SetTaxFeeHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	conf, err := h.ctrl.SetTaxFee(db, caller, msg.FeePercent)
	if err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{
		Events: []tokenswap.Event{confEvent(EventFeeChanged, conf)},
	}, nil
}

// validate loads the message and ensures the main signer is the
// administrator.
func (h SetTaxFeeHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*SetTaxFeeMsg, common.Address, error) {
	var msg SetTaxFeeMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, common.Address{}, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, h.auth)
	if err != nil {
		return nil, common.Address{}, err
	}
	conf, err := h.ctrl.Configuration(db)
	if err != nil {
		return nil, common.Address{}, err
	}
	if !conf.IsAdministrator(caller) {
		return nil, common.Address{}, errors.Wrap(errors.ErrUnauthorized, "only the administrator can set the fee")
	}
	return &msg, caller, nil
}

func signer(ctx tokenswap.Context, auth x.Authenticator) (common.Address, error) {
	addr := x.MainSigner(ctx, auth)
	if tokenswap.IsZeroAddress(addr) {
		return addr, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}
	return addr, nil
}

type party func(req *SwapRequest, caller common.Address) error

func isSender(req *SwapRequest, caller common.Address) error {
	if req.Sender != caller {
		return errors.Wrapf(ErrNotSender, "request %d", req.ID)
	}
	return nil
}

func isReceiver(req *SwapRequest, caller common.Address) error {
	if req.Receiver != caller {
		return errors.Wrapf(ErrNotReceiver, "request %d", req.ID)
	}
	return nil
}

// loadPending runs the checks a transition performs before it moves any
// token. msg is filled from tx and id must point into msg.
func loadPending(
	ctx tokenswap.Context,
	auth x.Authenticator,
	ctrl Controller,
	db tokenswap.KVStore,
	tx tokenswap.Tx,
	msg tokenswap.Msg,
	id *uint64,
	allowed party,
) (*SwapRequest, error) {
	if err := tokenswap.LoadMsg(tx, msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	caller, err := signer(ctx, auth)
	if err != nil {
		return nil, err
	}
	req, err := ctrl.Get(db, *id)
	if err != nil {
		return nil, err
	}
	if err := allowed(req, caller); err != nil {
		return nil, err
	}
	if err := pendingStatus(req); err != nil {
		return nil, err
	}
	return req, nil
}
