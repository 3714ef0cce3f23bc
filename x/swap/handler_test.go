package swap

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
	"github.com/iov-one/tokenswap/swaptest"
)

type router map[string]tokenswap.Handler

func (r router) Handle(m tokenswap.Msg, h tokenswap.Handler) { r[m.Path()] = h }

func TestHandlers(t *testing.T) {
	type step struct {
		signer  func(f *fixture) common.Address
		msg     func(f *fixture) tokenswap.Msg
		wantErr *errors.Error
	}
	admin := func(f *fixture) common.Address { return f.admin }
	sender := func(f *fixture) common.Address { return f.sender }
	receiver := func(f *fixture) common.Address { return f.receiver }
	anonymous := func(*fixture) common.Address { return common.Address{} }

	initialize := step{signer: admin, msg: func(f *fixture) tokenswap.Msg {
		return &InitializeMsg{Treasury: f.treasury, FeePercent: 5}
	}}
	request := step{signer: sender, msg: func(f *fixture) tokenswap.Msg {
		return &RequestMsg{
			Receiver:   f.receiver,
			SrcToken:   f.aaa,
			SrcAmount:  swaptest.Amount(oneEther),
			DestToken:  f.bbb,
			DestAmount: swaptest.Amount(twoEther),
		}
	}}
	byID := func(signer func(*fixture) common.Address, build func(id uint64) tokenswap.Msg, wantErr *errors.Error) step {
		return step{signer: signer, msg: func(*fixture) tokenswap.Msg { return build(1) }, wantErr: wantErr}
	}
	approve := func(id uint64) tokenswap.Msg { return &ApproveMsg{ID: id} }
	cancel := func(id uint64) tokenswap.Msg { return &CancelMsg{ID: id} }
	reject := func(id uint64) tokenswap.Msg { return &RejectMsg{ID: id} }

	cases := map[string]struct {
		steps      []step
		wantEvent  string
		wantStatus Status
	}{
		"request and approve": {
			steps:      []step{initialize, request, byID(receiver, approve, nil)},
			wantEvent:  EventRequestApproved,
			wantStatus: StatusApproved,
		},
		"request and cancel": {
			steps:      []step{initialize, request, byID(sender, cancel, nil)},
			wantEvent:  EventRequestCancelled,
			wantStatus: StatusCancelled,
		},
		"request and reject": {
			steps:      []step{initialize, request, byID(receiver, reject, nil)},
			wantEvent:  EventRequestRejected,
			wantStatus: StatusRejected,
		},
		"sender cannot approve": {
			steps:      []step{initialize, request, byID(sender, approve, ErrNotReceiver)},
			wantEvent:  EventRequestCreated,
			wantStatus: StatusPending,
		},
		"receiver cannot cancel": {
			steps:      []step{initialize, request, byID(receiver, cancel, ErrNotSender)},
			wantEvent:  EventRequestCreated,
			wantStatus: StatusPending,
		},
		"anonymous approval": {
			steps:      []step{initialize, request, byID(anonymous, approve, errors.ErrUnauthorized)},
			wantEvent:  EventRequestCreated,
			wantStatus: StatusPending,
		},
		"approve twice": {
			steps: []step{initialize, request,
				byID(receiver, approve, nil),
				byID(receiver, approve, ErrRequestNotPending),
			},
			wantEvent:  EventRequestApproved,
			wantStatus: StatusApproved,
		},
		"request before initialization": {
			steps: []step{
				{signer: sender, msg: request.msg, wantErr: ErrNotInitialized},
			},
		},
		"initialize twice": {
			steps: []step{initialize,
				{signer: sender, msg: initialize.msg, wantErr: ErrAlreadyInitialized},
			},
			wantEvent: EventInitialized,
		},
		"only administrator sets the fee": {
			steps: []step{initialize,
				{signer: sender, msg: func(*fixture) tokenswap.Msg { return &SetTaxFeeMsg{FeePercent: 1} }, wantErr: errors.ErrUnauthorized},
			},
			wantEvent: EventInitialized,
		},
		"administrator sets the fee": {
			steps: []step{initialize,
				{signer: admin, msg: func(*fixture) tokenswap.Msg { return &SetTaxFeeMsg{FeePercent: 1} }},
			},
			wantEvent: EventFeeChanged,
		},
		"fee above limit": {
			steps: []step{initialize,
				{signer: admin, msg: func(*fixture) tokenswap.Msg { return &SetTaxFeeMsg{FeePercent: 101} }, wantErr: ErrInvalidFeePercent},
			},
			wantEvent: EventInitialized,
		},
		"vault as treasury": {
			steps: []step{
				{signer: admin, msg: func(*fixture) tokenswap.Msg { return &InitializeMsg{Treasury: VaultAddress, FeePercent: 5} }, wantErr: errors.ErrInvalidInput},
			},
		},
		"vault as receiver": {
			steps: []step{initialize,
				{signer: sender, msg: func(f *fixture) tokenswap.Msg {
					return &RequestMsg{
						Receiver:   VaultAddress,
						SrcToken:   f.aaa,
						SrcAmount:  swaptest.Amount(oneEther),
						DestToken:  f.bbb,
						DestAmount: swaptest.Amount(twoEther),
					}
				}, wantErr: errors.ErrInvalidInput},
			},
			wantEvent: EventInitialized,
		},
		"id zero": {
			steps: []step{initialize,
				{signer: receiver, msg: func(*fixture) tokenswap.Msg { return &ApproveMsg{} }, wantErr: ErrRequestNotFound},
			},
			wantEvent: EventInitialized,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			auth := &swaptest.CtxAuth{Key: "auth"}
			ctrl := NewController(f.tokens)
			r := make(router)
			RegisterRoutes(r, auth, ctrl)

			var lastEvent string
			for i, s := range tc.steps {
				ctx := context.Background()
				if signer := s.signer(f); !tokenswap.IsZeroAddress(signer) {
					ctx = auth.SetAddresses(ctx, signer)
				}
				msg := s.msg(f)
				h := r[msg.Path()]
				require.NotNil(t, h, msg.Path())
				tx := tokenswap.NewTx(msg)

				if _, err := h.Check(ctx, f.db, tx); s.wantErr != nil {
					assert.True(t, s.wantErr.Is(err), "step %d check: %+v", i, err)
				} else {
					require.NoError(t, err, "step %d check", i)
				}
				res, err := h.Deliver(ctx, f.db, tx)
				if s.wantErr != nil {
					assert.True(t, s.wantErr.Is(err), "step %d: %+v", i, err)
					continue
				}
				require.NoError(t, err, "step %d", i)
				require.Len(t, res.Events, 1)
				lastEvent = res.Events[0].Type
				if id, ok := RequestID(res.Events[0]); ok {
					assert.Equal(t, orm.EncodeSequence(id), res.Data)
				}
			}
			assert.Equal(t, tc.wantEvent, lastEvent)

			if tc.wantStatus != 0 {
				assert.Equal(t, tc.wantStatus, f.status(t, ctrl, 1))
			}
		})
	}
}

func TestSetTaxFeeChecksMainSigner(t *testing.T) {
	f := newFixture(t)
	ctrl := NewController(f.tokens)
	f.initialize(t, ctrl, 5)
	tx := tokenswap.NewTx(&SetTaxFeeMsg{FeePercent: 7})
	ctx := context.Background()

	// the administrator co-signing does not make someone else the caller
	h := SetTaxFeeHandler{auth: &swaptest.Auth{Signers: []common.Address{f.sender, f.admin}}, ctrl: ctrl}
	_, err := h.Check(ctx, f.db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)
	_, err = h.Deliver(ctx, f.db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err), "%+v", err)

	h = SetTaxFeeHandler{auth: &swaptest.Auth{Signers: []common.Address{f.admin, f.sender}}, ctrl: ctrl}
	res, err := h.Deliver(ctx, f.db, tx)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	pct, _ := res.Events[0].Attr("fee_percent")
	assert.Equal(t, "7", pct)

	conf, err := ctrl.Configuration(f.db)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), conf.FeePercent)
}

func TestApprovedEvent(t *testing.T) {
	f := newFixture(t)
	ctrl := NewController(f.tokens)
	f.initialize(t, ctrl, 5)
	req := f.request(t, ctrl, oneEther, twoEther)

	s, err := ctrl.ApproveSwap(f.db, f.receiver, req.ID)
	require.NoError(t, err)
	ev := approvedEvent(s)

	id, ok := RequestID(ev)
	require.True(t, ok)
	assert.Equal(t, req.ID, id)
	fee, ok := ev.Attr("src_fee")
	require.True(t, ok)
	assert.Equal(t, "50000000000000000", fee)
	pct, _ := ev.Attr("fee_percent")
	assert.Equal(t, "5", pct)
}
