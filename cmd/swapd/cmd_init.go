package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/iov-one/tokenswap/app"
)

func initCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration to the home directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := WriteConfig(e.v, e.cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s configuration written to %s\n", color.GreenString("ok"), e.cfg.Home)
			return nil
		},
	}
}

func genesisCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "genesis <genesis.json>",
		Short: "Load the initial tokens, balances and swap configuration",
		Long: `Load a JSON genesis document into an empty database.

  {
    "tokens": [{"symbol": "AAA", "name": "A", "decimals": 18, "owner": "0x..",
                "balances": [{"holder": "0x..", "amount": "1000"}]}],
    "conf": {"swap": {"administrator": "0x..", "treasury": "0x..", "fee_percent": 5}}
  }

The "conf" section is optional, the swap can be initialized later with
"swapd config initialize".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := app.LoadGenesis(args[0])
			if err != nil {
				return err
			}
			return e.withApp(cmd, func(a *app.Application) error {
				if err := a.InitGenesis(cmd.Context(), opts, app.Initializers(e.tokens)); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s genesis loaded from %s\n", color.GreenString("ok"), args[0])
				return nil
			})
		},
	}
}
