package swap

import (
	"strconv"

	"github.com/iov-one/tokenswap"
)

// Event types emitted on request lifecycle changes. Every request event
// carries the request id under the "id" attribute.
const (
	EventRequestCreated   = "swap.created"
	EventRequestApproved  = "swap.approved"
	EventRequestCancelled = "swap.cancelled"
	EventRequestRejected  = "swap.rejected"

	EventInitialized = "swap.initialized"
	EventFeeChanged  = "swap.fee_changed"
)

// RequestID returns the id attribute of a request event.
func RequestID(ev tokenswap.Event) (uint64, bool) {
	raw, ok := ev.Attr("id")
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	return id, err == nil
}

func requestEvent(typ string, r *SwapRequest, keyvals ...string) tokenswap.Event {
	base := []string{
		"id", strconv.FormatUint(r.ID, 10),
		"sender", r.Sender.Hex(),
		"receiver", r.Receiver.Hex(),
	}
	return tokenswap.NewEvent(typ, append(base, keyvals...)...)
}

func createdEvent(r *SwapRequest) tokenswap.Event {
	return requestEvent(EventRequestCreated, r,
		"src_token", r.SrcToken.Hex(),
		"src_amount", r.SrcAmount.Dec(),
		"dest_token", r.DestToken.Hex(),
		"dest_amount", r.DestAmount.Dec(),
	)
}

func approvedEvent(s *Settlement) tokenswap.Event {
	return requestEvent(EventRequestApproved, s.Request,
		"fee_percent", strconv.FormatUint(s.FeePercent, 10),
		"src_fee", s.SrcFee.Dec(),
		"dest_fee", s.DestFee.Dec(),
	)
}

func cancelledEvent(r *SwapRequest) tokenswap.Event {
	return requestEvent(EventRequestCancelled, r)
}

func rejectedEvent(r *SwapRequest) tokenswap.Event {
	return requestEvent(EventRequestRejected, r)
}

func confEvent(typ string, c *Configuration) tokenswap.Event {
	return tokenswap.NewEvent(typ,
		"administrator", c.Administrator.Hex(),
		"treasury", c.Treasury.Hex(),
		"fee_percent", strconv.FormatUint(c.FeePercent, 10),
	)
}
