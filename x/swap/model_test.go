package swap

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/swaptest"
	"github.com/iov-one/tokenswap/x/token"
)

func validRequest() *SwapRequest {
	return &SwapRequest{
		ID:         7,
		Sender:     swaptest.NewAddress(),
		Receiver:   swaptest.NewAddress(),
		SrcToken:   token.TokenAddress("AAA"),
		SrcAmount:  swaptest.Amount("10"),
		DestToken:  token.TokenAddress("BBB"),
		DestAmount: swaptest.Amount("20"),
		Status:     StatusPending,
	}
}

func TestSwapRequestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(r *SwapRequest)
		wantErr *errors.Error
	}{
		"valid":            {mutate: func(*SwapRequest) {}},
		"missing id":       {mutate: func(r *SwapRequest) { r.ID = 0 }, wantErr: errors.ErrEmpty},
		"missing sender":   {mutate: func(r *SwapRequest) { r.Sender = common.Address{} }, wantErr: errors.ErrEmpty},
		"missing receiver": {mutate: func(r *SwapRequest) { r.Receiver = common.Address{} }, wantErr: errors.ErrEmpty},
		"zero token":       {mutate: func(r *SwapRequest) { r.DestToken = common.Address{} }, wantErr: ErrInvalidToken},
		"nil amount":       {mutate: func(r *SwapRequest) { r.SrcAmount = nil }, wantErr: errors.ErrInvalidAmount},
		"zero amount":      {mutate: func(r *SwapRequest) { r.DestAmount = swaptest.Amount("0") }, wantErr: errors.ErrInvalidAmount},
		"unknown status":   {mutate: func(r *SwapRequest) { r.Status = 9 }, wantErr: errors.ErrInvalidState},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			r := validRequest()
			tc.mutate(r)
			err := r.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "%+v", err)
		})
	}
}

func TestSwapRequestEncoding(t *testing.T) {
	r := validRequest()
	raw, err := r.Marshal()
	require.NoError(t, err)

	var got SwapRequest
	require.NoError(t, got.Unmarshal(raw))
	assert.Equal(t, r, &got)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 7}, got.Key())
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "approved", StatusApproved.String())
	assert.Equal(t, "Status(0)", Status(0).String())
	assert.False(t, StatusPending.IsTerminal())
	for _, s := range []Status{StatusCancelled, StatusRejected, StatusApproved} {
		assert.True(t, s.IsTerminal(), s.String())
	}
}

func TestMsgValidate(t *testing.T) {
	request := func(receiver common.Address) *RequestMsg {
		return &RequestMsg{
			Receiver:   receiver,
			SrcToken:   token.TokenAddress("AAA"),
			SrcAmount:  swaptest.Amount("10"),
			DestToken:  token.TokenAddress("BBB"),
			DestAmount: swaptest.Amount("20"),
		}
	}
	cases := map[string]struct {
		msg     interface{ Validate() error }
		wantErr *errors.Error
	}{
		"request":                  {msg: request(swaptest.NewAddress())},
		"request without receiver": {msg: request(common.Address{}), wantErr: errors.ErrEmpty},
		"request to the vault":     {msg: request(VaultAddress), wantErr: errors.ErrInvalidInput},
		"initialize":               {msg: &InitializeMsg{Treasury: swaptest.NewAddress(), FeePercent: 5}},
		"initialize without treasury": {
			msg:     &InitializeMsg{FeePercent: 5},
			wantErr: errors.ErrEmpty,
		},
		"vault as treasury": {
			msg:     &InitializeMsg{Treasury: VaultAddress},
			wantErr: errors.ErrInvalidInput,
		},
		"configuration with vault treasury": {
			msg:     &Configuration{Administrator: swaptest.NewAddress(), Treasury: VaultAddress},
			wantErr: errors.ErrInvalidInput,
		},
		"configuration": {
			msg: &Configuration{Administrator: swaptest.NewAddress(), Treasury: swaptest.NewAddress(), FeePercent: 100},
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.msg.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "%+v", err)
		})
	}
}
