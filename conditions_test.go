package tokenswap

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap/errors"
)

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond    Condition
		wantExt string
		wantTyp string
		wantErr bool
	}{
		"vault": {
			cond:    NewCondition("swap", "vault", []byte("custody")),
			wantExt: "swap",
			wantTyp: "vault",
		},
		"binary data with newline": {
			cond:    NewCondition("token", "erc20", []byte{0x0a, 0xff}),
			wantExt: "token",
			wantTyp: "erc20",
		},
		"extension too short": {
			cond:    NewCondition("ab", "vault", []byte("x")),
			wantErr: true,
		},
		"no data": {
			cond:    Condition("swap/vault/"),
			wantErr: true,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, _, err := tc.cond.Parse()
			if tc.wantErr {
				assert.True(t, errors.ErrInvalidInput.Is(err))
				assert.Error(t, tc.cond.Validate())
				assert.Contains(t, tc.cond.String(), "Invalid Condition")
				return
			}
			require.NoError(t, err)
			assert.NoError(t, tc.cond.Validate())
			assert.Equal(t, tc.wantExt, ext)
			assert.Equal(t, tc.wantTyp, typ)
		})
	}
}

func TestConditionAddress(t *testing.T) {
	a := NewCondition("swap", "vault", []byte("custody")).Address()
	b := NewCondition("swap", "vault", []byte("custody")).Address()
	c := NewCondition("swap", "vault", []byte("other")).Address()

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.False(t, IsZeroAddress(a))
	assert.True(t, IsZeroAddress(common.Address{}))
}

func TestParseAddress(t *testing.T) {
	want := NewCondition("test", "seq", []byte{1}).Address()

	got, err := ParseAddress(want.Hex())
	require.NoError(t, err)
	assert.Equal(t, want, got)

	for _, bad := range []string{"", "0x12", "not an address", want.Hex() + "00"} {
		_, err := ParseAddress(bad)
		assert.True(t, errors.ErrInvalidInput.Is(err), bad)
	}
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount(" 1000000000000000000 ")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", a.Dec())
	assert.True(t, IsPositive(a))

	zero, err := ParseAmount("0")
	require.NoError(t, err)
	assert.False(t, IsPositive(zero))
	assert.False(t, IsPositive(nil))

	for _, bad := range []string{"", "-1", "1.5", "0x10"} {
		_, err := ParseAmount(bad)
		assert.True(t, errors.ErrInvalidAmount.Is(err), bad)
	}

	clone := CloneAmount(a)
	clone.SetUint64(1)
	assert.Equal(t, "1000000000000000000", a.Dec())
	assert.True(t, CloneAmount(nil).IsZero())
}
