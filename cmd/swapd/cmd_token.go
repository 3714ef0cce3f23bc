package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x/token"
)

func tokenCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage tokens, balances and allowances",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "create <symbol> <name> <decimals>",
			Short: "Register a new token owned by --from",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				decimals, err := strconv.ParseUint(args[2], 10, 8)
				if err != nil {
					return errors.Wrapf(errors.ErrInvalidInput, "decimals: %s", err)
				}
				return e.submit(cmd, &token.CreateMsg{
					Symbol:   strings.ToUpper(args[0]),
					Name:     args[1],
					Decimals: uint8(decimals),
				})
			},
		},
		&cobra.Command{
			Use:   "mint <token> <to> <amount>",
			Short: "Issue new tokens, --from must own the token",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				tok, to, amount, err := parseTransfer(args)
				if err != nil {
					return err
				}
				return e.submit(cmd, &token.MintMsg{Token: tok, To: to, Amount: amount})
			},
		},
		&cobra.Command{
			Use:   "transfer <token> <to> <amount>",
			Short: "Move tokens from --from to another holder",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				tok, to, amount, err := parseTransfer(args)
				if err != nil {
					return err
				}
				return e.submit(cmd, &token.TransferMsg{Token: tok, To: to, Amount: amount})
			},
		},
		&cobra.Command{
			Use:   "approve <token> <spender> <amount>",
			Short: "Allow spender to move up to amount from --from",
			Long: `Allow spender to move up to amount from --from. A new approval
replaces the previous one. Use "vault" as spender to approve the swap escrow.`,
			Args: cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				tok, spender, amount, err := parseTransfer(args)
				if err != nil {
					return err
				}
				return e.submit(cmd, &token.ApproveMsg{Token: tok, Spender: spender, Amount: amount})
			},
		},
		&cobra.Command{
			Use:   "balance <token> <holder>",
			Short: "Show the balance of a holder",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				tok, err := parseToken(args[0])
				if err != nil {
					return err
				}
				holder, err := parseHolder(args[1])
				if err != nil {
					return err
				}
				return e.withApp(cmd, func(a *app.Application) error {
					return a.View(func(db tokenswap.ReadOnlyKVStore) error {
						b, err := e.tokens.Balance(db, tok, holder)
						if err != nil {
							return err
						}
						fmt.Fprintln(cmd.OutOrStdout(), b.Dec())
						return nil
					})
				})
			},
		},
		&cobra.Command{
			Use:   "allowance <token> <owner> <spender>",
			Short: "Show what spender may still move from owner",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				tok, err := parseToken(args[0])
				if err != nil {
					return err
				}
				owner, err := parseHolder(args[1])
				if err != nil {
					return err
				}
				spender, err := parseHolder(args[2])
				if err != nil {
					return err
				}
				return e.withApp(cmd, func(a *app.Application) error {
					return a.View(func(db tokenswap.ReadOnlyKVStore) error {
						b, err := e.tokens.Allowance(db, tok, owner, spender)
						if err != nil {
							return err
						}
						fmt.Fprintln(cmd.OutOrStdout(), b.Dec())
						return nil
					})
				})
			},
		},
	)
	return cmd
}

// parseToken accepts a token address or a symbol.
func parseToken(s string) (common.Address, error) {
	if common.IsHexAddress(s) {
		return tokenswap.ParseAddress(s)
	}
	return token.TokenAddress(strings.ToUpper(s)), nil
}

func parseTransfer(args []string) (common.Address, common.Address, *uint256.Int, error) {
	tok, err := parseToken(args[0])
	if err != nil {
		return common.Address{}, common.Address{}, nil, err
	}
	to, err := parseHolder(args[1])
	if err != nil {
		return common.Address{}, common.Address{}, nil, err
	}
	amount, err := tokenswap.ParseAmount(args[2])
	if err != nil {
		return common.Address{}, common.Address{}, nil, err
	}
	return tok, to, amount, nil
}
