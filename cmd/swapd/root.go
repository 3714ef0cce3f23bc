package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/notify"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/x"
	"github.com/iov-one/tokenswap/x/token"
)

const (
	flagHome    = "home"
	flagFrom    = "from"
	flagDryRun  = "dry-run"
	flagMetrics = "metrics"
)

// env is shared by all commands of a single invocation.
type env struct {
	v      *viper.Viper
	cfg    *Config
	logger log.Logger
	tokens token.BaseController

	// set only with --metrics
	registry *prometheus.Registry
	metrics  *notify.MetricsSink
}

// run executes swapd with given arguments and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root, e := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		printError(stderr, err, e.cfg != nil && e.cfg.DebugErrors)
		return 1
	}
	return 0
}

// newRootCmd builds the swapd command tree.
func newRootCmd() (*cobra.Command, *env) {
	e := &env{tokens: token.NewController()}

	root := &cobra.Command{
		Use:   "swapd",
		Short: "Two party token swaps with escrow",
		Long: `swapd keeps token balances and swap requests in a local database.

A sender escrows tokens with "swap request", the receiver settles it with
"swap approve" or declines with "swap reject". A fee is paid to the
treasury on every settlement.

Examples:
  swapd genesis genesis.json
  swapd token approve AAA <vault> 1000 --from <sender>
  swapd swap request <receiver> AAA 1000 BBB 2000 --from <sender>
  swapd swap approve 1 --from <receiver>`,
		Version:       tokenswap.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			e.v = newViper(defaultHome())
			if err := e.v.BindPFlag("home", cmd.Root().PersistentFlags().Lookup(flagHome)); err != nil {
				return err
			}
			cfg, err := LoadConfig(e.v)
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger, err = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}
			if withMetrics, _ := cmd.Flags().GetBool(flagMetrics); withMetrics {
				e.registry = prometheus.NewRegistry()
				if e.metrics, err = notify.NewMetricsSink(e.registry); err != nil {
					return errors.Wrap(err, "metrics")
				}
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if e.registry == nil {
				return nil
			}
			return printMetrics(cmd.OutOrStdout(), e.registry)
		},
	}
	root.PersistentFlags().String(flagHome, "", "directory for config and data (default $HOME/.swapd)")
	root.PersistentFlags().String(flagFrom, "", "address signing the command")
	root.PersistentFlags().Bool(flagDryRun, false, "check the command without committing it")
	root.PersistentFlags().Bool(flagMetrics, false, "print event counters once the command is done")

	root.AddCommand(
		initCmd(e),
		genesisCmd(e),
		tokenCmd(e),
		swapCmd(e),
		configCmd(e),
		versionCmd(),
	)
	return root, e
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	allowed, err := log.AllowLevel(level)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "log level: %s", err)
	}
	return log.NewFilter(log.NewTMLogger(log.NewSyncWriter(w)), allowed), nil
}

// withApp opens the database, runs fn and closes the database.
func (e *env) withApp(cmd *cobra.Command, fn func(a *app.Application) error) error {
	db, err := store.OpenLevelDB(e.cfg.DBDir, e.cfg.SyncWrites)
	if err != nil {
		return err
	}
	defer db.Close()

	sink := notify.NewNotifier(notify.LogSink{}, printSink{w: cmd.OutOrStdout()})
	if e.metrics != nil {
		sink.Subscribe(e.metrics)
	}
	a := app.NewApplication(db, app.Stack(x.ContextAuth{}, e.tokens), sink).
		WithLogger(e.logger.With("module", "app"))
	return fn(a)
}

// submit runs msg signed by --from. With --dry-run only the checks are run.
func (e *env) submit(cmd *cobra.Command, msg tokenswap.Msg) error {
	from, err := signerFlag(cmd)
	if err != nil {
		return err
	}
	dryRun, _ := cmd.Flags().GetBool(flagDryRun)
	ctx := tokenswap.WithSigner(cmd.Context(), from)
	tx := tokenswap.NewTx(msg)

	return e.withApp(cmd, func(a *app.Application) error {
		out := cmd.OutOrStdout()
		if dryRun {
			res, err := a.Check(ctx, tx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s %s\n", color.YellowString("dry run"), msg.Path(), res.Log)
			return nil
		}
		res, err := a.Deliver(ctx, tx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s %s %s\n", color.GreenString("ok"), msg.Path(), res.Log)
		return nil
	})
}

func signerFlag(cmd *cobra.Command) (common.Address, error) {
	raw, _ := cmd.Flags().GetString(flagFrom)
	if raw == "" {
		return common.Address{}, errors.Wrap(errors.ErrUnauthorized, "--from is required")
	}
	return tokenswap.ParseAddress(raw)
}

// printSink writes committed events to the command output.
type printSink struct {
	w io.Writer
}

func (p printSink) Notify(_ tokenswap.Context, ev tokenswap.Event) {
	attrs := make([]string, len(ev.Attributes))
	for i, a := range ev.Attributes {
		attrs[i] = a.Key + "=" + a.Value
	}
	fmt.Fprintf(p.w, "  %s %s\n", color.CyanString(ev.Type), strings.Join(attrs, " "))
}

// printMetrics writes every gathered counter in the prometheus text format.
func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return errors.Wrap(err, "gather metrics")
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			fmt.Fprintf(w, "%s{%s} %v\n", mf.GetName(), strings.Join(labels, ","), m.GetCounter().GetValue())
		}
	}
	return nil
}

func printError(w io.Writer, err error, debug bool) {
	if debug {
		fmt.Fprintf(w, "%s %+v\n", color.RedString("Error:"), err)
		return
	}
	fmt.Fprintf(w, "%s %v (code %d)\n", color.RedString("Error:"), err, errors.Code(err))
}
