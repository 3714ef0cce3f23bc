package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iov-one/tokenswap"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		// the version needs neither configuration nor database
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), tokenswap.Version())
		},
	}
}
