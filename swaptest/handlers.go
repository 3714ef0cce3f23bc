package swaptest

import "github.com/iov-one/tokenswap"

// Handler is a mock implementation of the tokenswap.Handler interface.
//
// If WriteKey is set, the key/value pair is written to the store before
// returning, regardless of the configured error. This allows to test
// rollback behaviour of decorators.
type Handler struct {
	checkCall   int
	CheckResult tokenswap.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult tokenswap.DeliverResult
	DeliverErr    error

	WriteKey   []byte
	WriteValue []byte
}

var _ tokenswap.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	h.checkCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.CheckResult
	return &res, h.CheckErr
}

func (h *Handler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	h.deliverCall++
	if err := h.write(db); err != nil {
		return nil, err
	}
	res := h.DeliverResult
	return &res, h.DeliverErr
}

func (h *Handler) write(db tokenswap.KVStore) error {
	if h.WriteKey == nil {
		return nil
	}
	return db.Set(h.WriteKey, h.WriteValue)
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
