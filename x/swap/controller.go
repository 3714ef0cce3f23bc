package swap

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/gconf"
	"github.com/iov-one/tokenswap/orm"
	"github.com/iov-one/tokenswap/x/token"
	"github.com/iov-one/tokenswap/x/utils"
)

// Settlement describes the outcome of an approved swap.
type Settlement struct {
	Request    *SwapRequest
	FeePercent uint64
	SrcFee     *uint256.Int
	DestFee    *uint256.Int
	Treasury   common.Address
}

// Controller owns the swap request ledger. Every state transition is a
// single unit: it runs on a savepoint of the given store and either all of
// its writes, token movements included, are kept or none are.
type Controller struct {
	bucket  orm.ModelBucket
	seq     orm.Sequence
	custody Custody
}

// NewController returns a controller moving tokens with given token mover.
func NewController(tokens token.Mover) Controller {
	return Controller{
		bucket:  NewRequestBucket(),
		seq:     NewRequestSequence(),
		custody: NewCustody(tokens),
	}
}

// Vault returns the address holding escrowed funds.
func (c Controller) Vault() common.Address {
	return c.custody.Vault()
}

// Configuration returns the current configuration or ErrNotInitialized.
func (c Controller) Configuration(db tokenswap.ReadOnlyKVStore) (*Configuration, error) {
	return loadConf(db)
}

// Initialize sets administrator and treasury. It succeeds only once.
func (c Controller) Initialize(db tokenswap.KVStore, admin, treasury common.Address, feePercent uint64) (*Configuration, error) {
	conf := &Configuration{
		Administrator: admin,
		Treasury:      treasury,
		FeePercent:    feePercent,
	}
	if err := validateFeePercent(feePercent); err != nil {
		return nil, err
	}
	if err := gconf.Create(db, confPkg, conf); err != nil {
		if errors.ErrDuplicate.Is(err) {
			return nil, errors.Wrap(ErrAlreadyInitialized, "configuration exists")
		}
		return nil, err
	}
	return conf, nil
}

// SetTaxFee replaces the fee percent. Only the administrator may call it.
// On failure the previous value is kept.
func (c Controller) SetTaxFee(db tokenswap.KVStore, caller common.Address, feePercent uint64) (*Configuration, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !conf.IsAdministrator(caller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the administrator can set the fee")
	}
	if err := validateFeePercent(feePercent); err != nil {
		return nil, err
	}
	conf.FeePercent = feePercent
	if err := gconf.Save(db, confPkg, conf); err != nil {
		return nil, errors.Wrap(err, "save configuration")
	}
	return conf, nil
}

// RequestSwap escrows srcAmount of srcToken from sender and records a
// pending request for receiver.
func (c Controller) RequestSwap(
	db tokenswap.KVStore,
	sender, receiver common.Address,
	srcToken common.Address, srcAmount *uint256.Int,
	destToken common.Address, destAmount *uint256.Int,
) (*SwapRequest, error) {
	if err := validateToken(srcToken); err != nil {
		return nil, errors.Wrap(err, "source token")
	}
	if err := validateToken(destToken); err != nil {
		return nil, errors.Wrap(err, "destination token")
	}
	if err := validateAmount(srcAmount); err != nil {
		return nil, errors.Wrap(err, "source amount")
	}
	if err := validateAmount(destAmount); err != nil {
		return nil, errors.Wrap(err, "destination amount")
	}
	if err := validateReceiver(receiver); err != nil {
		return nil, errors.Wrap(err, "receiver")
	}
	if _, err := loadConf(db); err != nil {
		return nil, err
	}

	req := &SwapRequest{
		Sender:     sender,
		Receiver:   receiver,
		SrcToken:   srcToken,
		SrcAmount:  tokenswap.CloneAmount(srcAmount),
		DestToken:  destToken,
		DestAmount: tokenswap.CloneAmount(destAmount),
		Status:     StatusPending,
	}
	err := utils.Atomic(db, func(db tokenswap.KVStore) error {
		if err := c.custody.PullInto(db, srcToken, sender, srcAmount); err != nil {
			return err
		}
		id, err := c.seq.NextInt(db)
		if err != nil {
			return errors.Wrap(err, "cannot acquire id")
		}
		req.ID = id
		return c.bucket.Put(db, req.Key(), req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// ApproveSwap settles a pending request. Must be called by the receiver.
// The fee percent in effect now is applied to both legs.
func (c Controller) ApproveSwap(db tokenswap.KVStore, caller common.Address, id uint64) (*Settlement, error) {
	req, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if err := isReceiver(req, caller); err != nil {
		return nil, err
	}
	if err := pendingStatus(req); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	srcFee, err := Fee(req.SrcAmount, conf.FeePercent)
	if err != nil {
		return nil, err
	}
	destFee, err := Fee(req.DestAmount, conf.FeePercent)
	if err != nil {
		return nil, err
	}
	srcNet := new(uint256.Int).Sub(req.SrcAmount, srcFee)
	destNet := new(uint256.Int).Sub(req.DestAmount, destFee)

	err = utils.Atomic(db, func(db tokenswap.KVStore) error {
		if err := c.custody.PullInto(db, req.DestToken, req.Receiver, req.DestAmount); err != nil {
			return err
		}
		if err := c.custody.PushFrom(db, req.SrcToken, conf.Treasury, srcFee); err != nil {
			return err
		}
		if err := c.custody.PushFrom(db, req.DestToken, conf.Treasury, destFee); err != nil {
			return err
		}
		if err := c.custody.PushFrom(db, req.SrcToken, req.Receiver, srcNet); err != nil {
			return err
		}
		if err := c.custody.PushFrom(db, req.DestToken, req.Sender, destNet); err != nil {
			return err
		}
		req.Status = StatusApproved
		return c.bucket.Put(db, req.Key(), req)
	})
	if err != nil {
		req.Status = StatusPending
		return nil, err
	}
	return &Settlement{
		Request:    req,
		FeePercent: conf.FeePercent,
		SrcFee:     srcFee,
		DestFee:    destFee,
		Treasury:   conf.Treasury,
	}, nil
}

// CancelSwapRequest refunds the sender in full. Must be called by the
// sender.
func (c Controller) CancelSwapRequest(db tokenswap.KVStore, caller common.Address, id uint64) (*SwapRequest, error) {
	req, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if err := isSender(req, caller); err != nil {
		return nil, err
	}
	if err := pendingStatus(req); err != nil {
		return nil, err
	}
	return c.refund(db, req, StatusCancelled)
}

// RejectSwap refunds the sender in full. Must be called by the receiver.
func (c Controller) RejectSwap(db tokenswap.KVStore, caller common.Address, id uint64) (*SwapRequest, error) {
	req, err := c.Get(db, id)
	if err != nil {
		return nil, err
	}
	if err := isReceiver(req, caller); err != nil {
		return nil, err
	}
	if err := pendingStatus(req); err != nil {
		return nil, err
	}
	return c.refund(db, req, StatusRejected)
}

func (c Controller) refund(db tokenswap.KVStore, req *SwapRequest, status Status) (*SwapRequest, error) {
	err := utils.Atomic(db, func(db tokenswap.KVStore) error {
		if err := c.custody.PushFrom(db, req.SrcToken, req.Sender, req.SrcAmount); err != nil {
			return err
		}
		req.Status = status
		return c.bucket.Put(db, req.Key(), req)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

func pendingStatus(req *SwapRequest) error {
	if req.Status != StatusPending {
		return errors.Wrapf(ErrRequestNotPending, "request %d is %s", req.ID, req.Status)
	}
	return nil
}

// Get returns the request with given id. Unknown ids, 0 included, fail
// with ErrRequestNotFound.
func (c Controller) Get(db tokenswap.ReadOnlyKVStore, id uint64) (*SwapRequest, error) {
	if id == 0 {
		return nil, errors.Wrap(ErrRequestNotFound, "id 0")
	}
	var req SwapRequest
	if err := c.bucket.One(db, orm.EncodeSequence(id), &req); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrapf(ErrRequestNotFound, "id %d", id)
		}
		return nil, err
	}
	return &req, nil
}

// BySender returns all requests created by sender, oldest first.
func (c Controller) BySender(db tokenswap.ReadOnlyKVStore, sender common.Address) ([]*SwapRequest, error) {
	var res []*SwapRequest
	if _, err := c.bucket.ByIndex(db, "sender", sender.Bytes(), &res); err != nil {
		return nil, err
	}
	return res, nil
}

// ByReceiver returns all requests addressed to receiver, oldest first.
func (c Controller) ByReceiver(db tokenswap.ReadOnlyKVStore, receiver common.Address) ([]*SwapRequest, error) {
	var res []*SwapRequest
	if _, err := c.bucket.ByIndex(db, "receiver", receiver.Bytes(), &res); err != nil {
		return nil, err
	}
	return res, nil
}
