package app

import (
	"github.com/iov-one/tokenswap/errors"
)

var (
	// ErrNoSuchPath is returned for messages without a registered handler.
	ErrNoSuchPath = errors.Register(20, "path not registered")

	// ErrGenesisLoaded is returned when genesis is applied to a store that
	// already holds state.
	ErrGenesisLoaded = errors.Register(21, "genesis already loaded")
)
