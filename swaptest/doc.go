// Package swaptest provides mocks and helpers for testing extensions:
// authenticators, handlers, decorators and address generators.
package swaptest
