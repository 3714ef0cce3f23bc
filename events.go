package tokenswap

// Event is a notification about a committed state change. Events are
// informational only, observers cannot influence the call that produced
// them.
type Event struct {
	Type       string
	Attributes []Attribute
}

// Attribute is a single key/value pair attached to an Event.
type Attribute struct {
	Key   string
	Value string
}

// NewEvent builds an event from alternating key and value strings.
// A trailing key without a value is dropped.
func NewEvent(eventType string, keyvals ...string) Event {
	attrs := make([]Attribute, 0, len(keyvals)/2)
	for i := 0; i+1 < len(keyvals); i += 2 {
		attrs = append(attrs, Attribute{Key: keyvals[i], Value: keyvals[i+1]})
	}
	return Event{Type: eventType, Attributes: attrs}
}

// Attr returns the value of the first attribute with the given key.
func (e Event) Attr(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// EventSink receives committed events.
type EventSink interface {
	Notify(ctx Context, ev Event)
}
