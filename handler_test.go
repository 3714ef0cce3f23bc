package tokenswap

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iov-one/tokenswap/errors"
)

type echoMsg struct {
	Value string
}

func (echoMsg) Path() string { return "test/echo" }

func (m *echoMsg) Validate() error {
	if m.Value == "" {
		return errors.Field("Value", errors.ErrEmpty, "")
	}
	return nil
}

type otherMsg struct{}

func (otherMsg) Path() string    { return "test/other" }
func (otherMsg) Validate() error { return nil }

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		dest    interface{}
		wantErr *errors.Error
	}{
		"valid": {
			tx:   NewTx(&echoMsg{Value: "hi"}),
			dest: &echoMsg{},
		},
		"invalid content": {
			tx:      NewTx(&echoMsg{}),
			dest:    &echoMsg{},
			wantErr: errors.ErrEmpty,
		},
		"wrong type": {
			tx:      NewTx(otherMsg{}),
			dest:    &echoMsg{},
			wantErr: errors.ErrInvalidType,
		},
		"not a pointer": {
			tx:      NewTx(&echoMsg{Value: "hi"}),
			dest:    echoMsg{},
			wantErr: errors.ErrHuman,
		},
		"no message": {
			tx:      NewTx(nil),
			dest:    &echoMsg{},
			wantErr: errors.ErrInvalidInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := LoadMsg(tc.tx, tc.dest)
			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, "hi", tc.dest.(*echoMsg).Value)
				return
			}
			assert.True(t, tc.wantErr.Is(err), "%+v", err)
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/echo", GetPath(NewTx(&echoMsg{})))
	assert.Equal(t, "(missing)", GetPath(NewTx(nil)))
	assert.Equal(t, "(missing)", GetPath(nil))
	assert.True(t, IsValidPath("swap/set_fee"))
	assert.False(t, IsValidPath("swap:approve"))
}

func TestReadOptions(t *testing.T) {
	var opts Options
	require.NoError(t, json.Unmarshal([]byte(`{"list": [{"key": 1}, {"key": 2}], "bad": "x"}`), &opts))

	var list []struct{ Key int }
	require.NoError(t, opts.ReadOptions("list", &list))
	assert.Len(t, list, 2)

	var missing []struct{ Key int }
	require.NoError(t, opts.ReadOptions("missing", &missing))
	assert.Nil(t, missing)

	err := opts.ReadOptions("bad", &list)
	assert.True(t, errors.ErrInvalidInput.Is(err))
}

func TestEvent(t *testing.T) {
	ev := NewEvent("swap.created", "id", "1", "sender", "0x01", "dangling")
	assert.Len(t, ev.Attributes, 2)

	v, ok := ev.Attr("sender")
	assert.True(t, ok)
	assert.Equal(t, "0x01", v)
	_, ok = ev.Attr("dangling")
	assert.False(t, ok)
}
