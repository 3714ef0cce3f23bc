package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x/swap"
)

func swapCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Create and settle swap requests",
	}

	var (
		bySender   string
		byReceiver string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List requests by sender or receiver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if (bySender == "") == (byReceiver == "") {
				return errors.Wrap(errors.ErrInvalidInput, "exactly one of --sender or --receiver is required")
			}
			return e.withApp(cmd, func(a *app.Application) error {
				return a.View(func(db tokenswap.ReadOnlyKVStore) error {
					ctrl := swap.NewController(e.tokens)
					var (
						reqs []*swap.SwapRequest
						err  error
					)
					if bySender != "" {
						var addr common.Address
						if addr, err = tokenswap.ParseAddress(bySender); err != nil {
							return err
						}
						reqs, err = ctrl.BySender(db, addr)
					} else {
						var addr common.Address
						if addr, err = tokenswap.ParseAddress(byReceiver); err != nil {
							return err
						}
						reqs, err = ctrl.ByReceiver(db, addr)
					}
					if err != nil {
						return err
					}
					for _, r := range reqs {
						printRequest(cmd.OutOrStdout(), r)
					}
					return nil
				})
			})
		},
	}
	list.Flags().StringVar(&bySender, "sender", "", "list requests created by this address")
	list.Flags().StringVar(&byReceiver, "receiver", "", "list requests addressed to this address")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "request <receiver> <src-token> <src-amount> <dest-token> <dest-amount>",
			Short: "Escrow src-amount of src-token from --from and ask receiver for dest-amount of dest-token",
			Args:  cobra.ExactArgs(5),
			RunE: func(cmd *cobra.Command, args []string) error {
				receiver, err := tokenswap.ParseAddress(args[0])
				if err != nil {
					return err
				}
				srcToken, err := parseToken(args[1])
				if err != nil {
					return err
				}
				srcAmount, err := tokenswap.ParseAmount(args[2])
				if err != nil {
					return err
				}
				destToken, err := parseToken(args[3])
				if err != nil {
					return err
				}
				destAmount, err := tokenswap.ParseAmount(args[4])
				if err != nil {
					return err
				}
				return e.submit(cmd, &swap.RequestMsg{
					Receiver:   receiver,
					SrcToken:   srcToken,
					SrcAmount:  srcAmount,
					DestToken:  destToken,
					DestAmount: destAmount,
				})
			},
		},
		idCmd(e, "approve", "Settle a request, --from must be the receiver", func(id uint64) tokenswap.Msg {
			return &swap.ApproveMsg{ID: id}
		}),
		idCmd(e, "cancel", "Withdraw a request, --from must be the sender", func(id uint64) tokenswap.Msg {
			return &swap.CancelMsg{ID: id}
		}),
		idCmd(e, "reject", "Decline a request, --from must be the receiver", func(id uint64) tokenswap.Msg {
			return &swap.RejectMsg{ID: id}
		}),
		&cobra.Command{
			Use:   "show <id>",
			Short: "Show a single request",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				return e.withApp(cmd, func(a *app.Application) error {
					return a.View(func(db tokenswap.ReadOnlyKVStore) error {
						req, err := swap.NewController(e.tokens).Get(db, id)
						if err != nil {
							return err
						}
						printRequest(cmd.OutOrStdout(), req)
						return nil
					})
				})
			},
		},
		list,
	)
	return cmd
}

func idCmd(e *env, use, short string, build func(id uint64) tokenswap.Msg) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return e.submit(cmd, build(id))
		},
	}
}

func configCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the swap configuration",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show administrator, treasury and fee percent",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return e.withApp(cmd, func(a *app.Application) error {
					return a.View(func(db tokenswap.ReadOnlyKVStore) error {
						conf, err := swap.NewController(e.tokens).Configuration(db)
						if err != nil {
							return err
						}
						out := cmd.OutOrStdout()
						fmt.Fprintf(out, "administrator: %s\n", conf.Administrator.Hex())
						fmt.Fprintf(out, "treasury:      %s\n", conf.Treasury.Hex())
						fmt.Fprintf(out, "fee percent:   %d\n", conf.FeePercent)
						fmt.Fprintf(out, "vault:         %s\n", swap.VaultAddress.Hex())
						return nil
					})
				})
			},
		},
		&cobra.Command{
			Use:   "initialize <treasury> <fee-percent>",
			Short: "Set up the swap once, --from becomes the administrator",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				treasury, err := tokenswap.ParseAddress(args[0])
				if err != nil {
					return err
				}
				pct, err := parsePercent(args[1])
				if err != nil {
					return err
				}
				return e.submit(cmd, &swap.InitializeMsg{Treasury: treasury, FeePercent: pct})
			},
		},
		&cobra.Command{
			Use:   "set-fee <fee-percent>",
			Short: "Change the fee percent, --from must be the administrator",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pct, err := parsePercent(args[0])
				if err != nil {
					return err
				}
				return e.submit(cmd, &swap.SetTaxFeeMsg{FeePercent: pct})
			},
		},
	)
	return cmd
}

func parseID(s string) (uint64, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "id %q", s)
	}
	return id, nil
}

func parsePercent(s string) (uint64, error) {
	pct, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrInvalidInput, "fee percent %q", s)
	}
	return pct, nil
}

// parseHolder accepts an address or "vault" for the swap escrow account.
func parseHolder(s string) (common.Address, error) {
	if s == "vault" {
		return swap.VaultAddress, nil
	}
	return tokenswap.ParseAddress(s)
}

func printRequest(w io.Writer, r *swap.SwapRequest) {
	fmt.Fprintf(w, "#%d %s\n", r.ID, statusColor(r.Status))
	fmt.Fprintf(w, "  sender:   %s\n", r.Sender.Hex())
	fmt.Fprintf(w, "  receiver: %s\n", r.Receiver.Hex())
	fmt.Fprintf(w, "  offers:   %s of %s\n", r.SrcAmount.Dec(), r.SrcToken.Hex())
	fmt.Fprintf(w, "  wants:    %s of %s\n", r.DestAmount.Dec(), r.DestToken.Hex())
}

func statusColor(s swap.Status) string {
	switch s {
	case swap.StatusApproved:
		return color.GreenString(s.String())
	case swap.StatusPending:
		return color.YellowString(s.String())
	case swap.StatusRejected:
		return color.RedString(s.String())
	default:
		return color.MagentaString(s.String())
	}
}
