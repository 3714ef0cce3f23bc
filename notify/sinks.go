package notify

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/iov-one/tokenswap"
)

// LogSink writes every event to the logger of the context.
type LogSink struct{}

var _ tokenswap.EventSink = LogSink{}

func (LogSink) Notify(ctx tokenswap.Context, ev tokenswap.Event) {
	keyvals := make([]interface{}, 0, 2+2*len(ev.Attributes))
	keyvals = append(keyvals, "type", ev.Type)
	for _, a := range ev.Attributes {
		keyvals = append(keyvals, a.Key, a.Value)
	}
	tokenswap.GetLogger(ctx).With("module", "notify").Info("event", keyvals...)
}

// MetricsSink counts events by type.
type MetricsSink struct {
	events *prometheus.CounterVec
}

var _ tokenswap.EventSink = (*MetricsSink)(nil)

// NewMetricsSink creates the counters and registers them with reg.
func NewMetricsSink(reg prometheus.Registerer) (*MetricsSink, error) {
	m := &MetricsSink{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tokenswap",
			Subsystem: "events",
			Name:      "emitted_total",
			Help:      "Count of committed events segmented by type.",
		}, []string{"type"}),
	}
	if err := reg.Register(m.events); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *MetricsSink) Notify(_ tokenswap.Context, ev tokenswap.Event) {
	m.events.WithLabelValues(ev.Type).Inc()
}

// Count returns the counter of given event type.
func (m *MetricsSink) Count(eventType string) prometheus.Counter {
	return m.events.WithLabelValues(eventType)
}

// Recorder keeps every event in memory. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []tokenswap.Event
}

var _ tokenswap.EventSink = (*Recorder)(nil)

func (r *Recorder) Notify(_ tokenswap.Context, ev tokenswap.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of all recorded events, oldest first.
func (r *Recorder) Events() []tokenswap.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]tokenswap.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the types of all recorded events, oldest first.
func (r *Recorder) Types() []string {
	events := r.Events()
	out := make([]string, len(events))
	for i, ev := range events {
		out[i] = ev.Type
	}
	return out
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
