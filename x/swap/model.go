package swap

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

// Status is the lifecycle state of a swap request. Only a pending request
// can change, every other status is terminal.
type Status uint8

const (
	StatusPending Status = iota + 1
	StatusCancelled
	StatusRejected
	StatusApproved
)

var statusNames = map[Status]string{
	StatusPending:   "pending",
	StatusCancelled: "cancelled",
	StatusRejected:  "rejected",
	StatusApproved:  "approved",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Status(%d)", s)
}

// Validate returns an error for values outside of the declared set.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errors.Wrapf(errors.ErrInvalidState, "status %d", s)
	}
	return nil
}

// IsTerminal returns true once a request left the pending state.
func (s Status) IsTerminal() bool {
	return s != StatusPending
}

// SwapRequest is a single two-party swap. All fields but Status are fixed
// at creation.
type SwapRequest struct {
	ID         uint64
	Sender     common.Address
	Receiver   common.Address
	SrcToken   common.Address
	SrcAmount  *uint256.Int
	DestToken  common.Address
	DestAmount *uint256.Int
	Status     Status
}

var _ orm.Model = (*SwapRequest)(nil)

func (r *SwapRequest) Marshal() ([]byte, error)   { return rlp.EncodeToBytes(r) }
func (r *SwapRequest) Unmarshal(raw []byte) error { return rlp.DecodeBytes(raw, r) }

func (r *SwapRequest) Validate() error {
	var errs error
	if r.ID == 0 {
		errs = errors.AppendField(errs, "ID", errors.ErrEmpty)
	}
	if tokenswap.IsZeroAddress(r.Sender) {
		errs = errors.AppendField(errs, "Sender", errors.ErrEmpty)
	}
	if tokenswap.IsZeroAddress(r.Receiver) {
		errs = errors.AppendField(errs, "Receiver", errors.ErrEmpty)
	}
	errs = errors.AppendField(errs, "SrcToken", validateToken(r.SrcToken))
	errs = errors.AppendField(errs, "DestToken", validateToken(r.DestToken))
	errs = errors.AppendField(errs, "SrcAmount", validateAmount(r.SrcAmount))
	errs = errors.AppendField(errs, "DestAmount", validateAmount(r.DestAmount))
	errs = errors.AppendField(errs, "Status", r.Status.Validate())
	return errs
}

// Key returns the primary key of this request.
func (r *SwapRequest) Key() []byte {
	return orm.EncodeSequence(r.ID)
}

func validateToken(t common.Address) error {
	if tokenswap.IsZeroAddress(t) {
		return ErrInvalidToken
	}
	return nil
}

func validateAmount(a *uint256.Int) error {
	if !tokenswap.IsPositive(a) {
		return errors.ErrInvalidAmount
	}
	return nil
}

const bucketName = "swap"

// NewRequestBucket returns a bucket storing requests under their big
// endian encoded ID, indexed by sender and receiver.
func NewRequestBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &SwapRequest{},
		orm.WithIndex("sender", senderIndex, false),
		orm.WithIndex("receiver", receiverIndex, false),
	)
}

func senderIndex(m orm.Model) ([]byte, error) {
	r, ok := m.(*SwapRequest)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidModel, m)
	}
	return r.Sender.Bytes(), nil
}

func receiverIndex(m orm.Model) ([]byte, error) {
	r, ok := m.(*SwapRequest)
	if !ok {
		return nil, errors.WithType(errors.ErrInvalidModel, m)
	}
	return r.Receiver.Bytes(), nil
}

// NewRequestSequence returns the sequence allocating request IDs.
func NewRequestSequence() orm.Sequence {
	return orm.NewSequence(bucketName, "id")
}
