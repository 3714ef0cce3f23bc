package swap

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap/swaptest"
)

func TestFee(t *testing.T) {
	maxAmount := new(uint256.Int).SetAllOne()

	cases := map[string]struct {
		amount  *uint256.Int
		percent uint64
		want    string
		wantErr bool
	}{
		"five percent":        {amount: swaptest.Amount("1000000000000000000"), percent: 5, want: "50000000000000000"},
		"truncated":           {amount: swaptest.Amount("19"), percent: 5, want: "0"},
		"rounds down":         {amount: swaptest.Amount("199"), percent: 1, want: "1"},
		"zero percent":        {amount: swaptest.Amount("12345"), percent: 0, want: "0"},
		"everything":          {amount: swaptest.Amount("12345"), percent: 100, want: "12345"},
		"nil amount":          {amount: nil, percent: 5, want: "0"},
		"max amount all":      {amount: maxAmount, percent: 100, want: maxAmount.Dec()},
		"max amount half":     {amount: maxAmount, percent: 50, want: new(uint256.Int).Rsh(maxAmount, 1).Dec()},
		"percent above limit": {amount: swaptest.Amount("1"), percent: 101, wantErr: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			fee, err := Fee(tc.amount, tc.percent)
			if tc.wantErr {
				assert.True(t, ErrInvalidFeePercent.Is(err), "%+v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, fee.Dec())
			if tc.amount != nil {
				assert.False(t, fee.Gt(tc.amount))
			}
		})
	}
}
