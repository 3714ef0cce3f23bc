package app

import (
	"fmt"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Router dispatches a transaction to the handler registered for the path
// of its message.
type Router struct {
	routes map[string]tokenswap.Handler
}

var _ tokenswap.Registry = (*Router)(nil)
var _ tokenswap.Handler = (*Router)(nil)

// NewRouter returns a router without any routes.
func NewRouter() *Router {
	return &Router{routes: make(map[string]tokenswap.Handler)}
}

// Handle registers a handler for the path of given message. It panics on
// an invalid or already registered path, this is a setup error.
func (r *Router) Handle(m tokenswap.Msg, h tokenswap.Handler) {
	path := m.Path()
	if !tokenswap.IsValidPath(path) {
		panic(fmt.Sprintf("invalid path: %q", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %q", path))
	}
	r.routes[path] = h
}

// Handler returns the handler registered for path. An unknown path
// results in a handler that always fails with ErrNoSuchPath.
func (r *Router) Handler(path string) tokenswap.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return noSuchPathHandler{path: path}
}

// Paths returns the number of registered routes.
func (r *Router) Paths() int {
	return len(r.routes)
}

func (r *Router) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	return r.Handler(tokenswap.GetPath(tx)).Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	return r.Handler(tokenswap.GetPath(tx)).Deliver(ctx, db, tx)
}

type noSuchPathHandler struct {
	path string
}

func (h noSuchPathHandler) Check(tokenswap.Context, tokenswap.KVStore, tokenswap.Tx) (*tokenswap.CheckResult, error) {
	return nil, errors.Wrapf(ErrNoSuchPath, "path %q", h.path)
}

func (h noSuchPathHandler) Deliver(tokenswap.Context, tokenswap.KVStore, tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	return nil, errors.Wrapf(ErrNoSuchPath, "path %q", h.path)
}
