/*
Package token implements fungible token ledgers with the allowance
semantics of an ERC-20 contract.

Each token is identified by an address derived from its symbol. Balances
and allowances are kept per token. A holder can move its own balance with
Transfer, or let another identity (the spender) move a bounded amount on
its behalf with Approve and TransferFrom. Only the token owner can mint.

The swap extension uses the Controller of this package as its custody
collaborator.
*/
package token
