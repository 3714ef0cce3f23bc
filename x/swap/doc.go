/*
Package swap implements a two-party token for token swap with escrow.

A sender opens a request offering SrcAmount of SrcToken for DestAmount of
DestToken. The offered tokens are pulled into the vault right away, so the
sender must first approve the vault as spender with the token extension.

The receiver can approve the request, which pulls DestAmount from the
receiver and pays both sides, or reject it. The sender can cancel it while
it is pending. Cancelling and rejecting refund the sender in full.

On approval a fee of FeePercent is taken from both legs and paid to the
treasury. The fee percent in effect at approval time is used, not the one
at request time. Only the administrator chosen at initialization can
change it.

Every transition either applies all of its token movements and the status
change, or none of them.
*/
package swap
