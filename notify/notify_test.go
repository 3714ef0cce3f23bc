package notify

import (
	"bytes"
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/tokenswap"
)

type panicSink struct{}

func (panicSink) Notify(tokenswap.Context, tokenswap.Event) { panic("boom") }

func TestNotifierFanOut(t *testing.T) {
	var first, second Recorder
	n := NewNotifier(&first, panicSink{})
	n.Subscribe(&second)

	ctx := context.Background()
	n.Notify(ctx, tokenswap.NewEvent("swap.created", "id", "1"))
	n.Notify(ctx, tokenswap.NewEvent("swap.approved", "id", "1"))

	assert.Equal(t, []string{"swap.created", "swap.approved"}, first.Types())
	assert.Equal(t, first.Events(), second.Events())

	first.Reset()
	assert.Empty(t, first.Events())
	assert.Len(t, second.Events(), 2)
}

func TestMetricsSink(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetricsSink(reg)
	require.NoError(t, err)

	ctx := context.Background()
	m.Notify(ctx, tokenswap.NewEvent("swap.created"))
	m.Notify(ctx, tokenswap.NewEvent("swap.created"))
	m.Notify(ctx, tokenswap.NewEvent("swap.rejected"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.Count("swap.created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Count("swap.rejected")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.Count("swap.approved")))

	// the same collector cannot be registered twice
	_, err = NewMetricsSink(reg)
	assert.Error(t, err)
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewTMLogger(log.NewSyncWriter(&buf))
	ctx := tokenswap.WithLogger(context.Background(), logger)

	LogSink{}.Notify(ctx, tokenswap.NewEvent("swap.cancelled", "id", "42"))
	out := buf.String()
	assert.Contains(t, out, "swap.cancelled")
	assert.Contains(t, out, "id=42")
	assert.Contains(t, out, "module=notify")
}
