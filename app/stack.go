package app

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/x"
	"github.com/iov-one/tokenswap/x/swap"
	"github.com/iov-one/tokenswap/x/token"
	"github.com/iov-one/tokenswap/x/utils"
)

// Chain returns the decorators every message passes through.
func Chain() Decorators {
	return ChainDecorators(
		utils.NewRecovery(),
		utils.NewLogging(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Routes returns a router with the token and swap extensions registered.
func Routes(auth x.Authenticator, tokens token.Controller) *Router {
	r := NewRouter()
	token.RegisterRoutes(r, auth, tokens)
	swap.RegisterRoutes(r, auth, swap.NewController(tokens))
	return r
}

// Stack is the complete handler: Chain around Routes.
func Stack(auth x.Authenticator, tokens token.Controller) tokenswap.Handler {
	return Chain().WithHandler(Routes(auth, tokens))
}

// Initializers loads the genesis sections of all extensions.
func Initializers(tokens token.Controller) tokenswap.Initializer {
	return ChainInitializers(
		&token.Initializer{Ctrl: tokens},
		&swap.Initializer{},
	)
}
