package notify

import (
	"sync"

	"github.com/iov-one/tokenswap"
)

// Notifier is an EventSink forwarding every event to all registered sinks
// in registration order.
type Notifier struct {
	mu    sync.RWMutex
	sinks []tokenswap.EventSink
}

var _ tokenswap.EventSink = (*Notifier)(nil)

// NewNotifier returns a notifier dispatching to given sinks.
func NewNotifier(sinks ...tokenswap.EventSink) *Notifier {
	return &Notifier{sinks: sinks}
}

// Subscribe adds a sink. It receives only events notified afterwards.
func (n *Notifier) Subscribe(s tokenswap.EventSink) {
	n.mu.Lock()
	n.sinks = append(n.sinks, s)
	n.mu.Unlock()
}

// Notify implements tokenswap.EventSink.
func (n *Notifier) Notify(ctx tokenswap.Context, ev tokenswap.Event) {
	n.mu.RLock()
	sinks := n.sinks
	n.mu.RUnlock()

	for _, s := range sinks {
		notifyOne(ctx, s, ev)
	}
}

func notifyOne(ctx tokenswap.Context, s tokenswap.EventSink, ev tokenswap.Event) {
	defer func() {
		if r := recover(); r != nil {
			tokenswap.GetLogger(ctx).Error("event sink panic", "event", ev.Type, "panic", r)
		}
	}()
	s.Notify(ctx, ev)
}
