package swap

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

const (
	pathRequestMsg    = "swap/request"
	pathApproveMsg    = "swap/approve"
	pathCancelMsg     = "swap/cancel"
	pathRejectMsg     = "swap/reject"
	pathInitializeMsg = "swap/initialize"
	pathSetTaxFeeMsg  = "swap/set_fee"
)

var _ tokenswap.Msg = (*RequestMsg)(nil)
var _ tokenswap.Msg = (*ApproveMsg)(nil)
var _ tokenswap.Msg = (*CancelMsg)(nil)
var _ tokenswap.Msg = (*RejectMsg)(nil)
var _ tokenswap.Msg = (*InitializeMsg)(nil)
var _ tokenswap.Msg = (*SetTaxFeeMsg)(nil)

// RequestMsg creates a swap request. The signer becomes the sender.
type RequestMsg struct {
	Receiver   common.Address
	SrcToken   common.Address
	SrcAmount  *uint256.Int
	DestToken  common.Address
	DestAmount *uint256.Int
}

// ApproveMsg settles a request. Must be signed by the receiver.
type ApproveMsg struct {
	ID uint64
}

// CancelMsg withdraws a request. Must be signed by the sender.
type CancelMsg struct {
	ID uint64
}

// RejectMsg declines a request. Must be signed by the receiver.
type RejectMsg struct {
	ID uint64
}

// InitializeMsg sets up the swap. The signer becomes the administrator.
type InitializeMsg struct {
	Treasury   common.Address
	FeePercent uint64
}

// SetTaxFeeMsg changes the fee percent. Must be signed by the
// administrator.
type SetTaxFeeMsg struct {
	FeePercent uint64
}

//--------- Path routing --------

func (RequestMsg) Path() string    { return pathRequestMsg }
func (ApproveMsg) Path() string    { return pathApproveMsg }
func (CancelMsg) Path() string     { return pathCancelMsg }
func (RejectMsg) Path() string     { return pathRejectMsg }
func (InitializeMsg) Path() string { return pathInitializeMsg }
func (SetTaxFeeMsg) Path() string  { return pathSetTaxFeeMsg }

//--------- Validation --------

func (m *RequestMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Receiver", validateReceiver(m.Receiver))
	errs = errors.AppendField(errs, "SrcToken", validateToken(m.SrcToken))
	errs = errors.AppendField(errs, "SrcAmount", validateAmount(m.SrcAmount))
	errs = errors.AppendField(errs, "DestToken", validateToken(m.DestToken))
	errs = errors.AppendField(errs, "DestAmount", validateAmount(m.DestAmount))
	return errs
}

func (m *ApproveMsg) Validate() error { return validateID(m.ID) }
func (m *CancelMsg) Validate() error  { return validateID(m.ID) }
func (m *RejectMsg) Validate() error  { return validateID(m.ID) }

func (m *InitializeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Treasury", validateTreasury(m.Treasury))
	errs = errors.AppendField(errs, "FeePercent", validateFeePercent(m.FeePercent))
	return errs
}

func (m *SetTaxFeeMsg) Validate() error {
	return errors.Field("FeePercent", validateFeePercent(m.FeePercent), "")
}

func validateID(id uint64) error {
	if id == 0 {
		return errors.Field("ID", ErrRequestNotFound, "id 0 is never assigned")
	}
	return nil
}
