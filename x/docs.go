/*
Package x contains the extensions of the swap ledger.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together by the app package to construct
the application.

Follow standard go naming conventions and avoid stutter.
Use eg. `swap.RequestMsg` in place of `swap.SwapRequestMsg`.
*/
package x
