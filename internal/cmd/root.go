// Package cmd implements the scc command line tool.
package cmd

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	scc "github.com/sybila/biodivine-lib-algo-scc"
	"github.com/sybila/biodivine-lib-algo-scc/internal/config"
	"github.com/sybila/biodivine-lib-algo-scc/internal/logging"
	"github.com/sybila/biodivine-lib-algo-scc/internal/metrics"
	"github.com/sybila/biodivine-lib-algo-scc/network"
	"github.com/sybila/biodivine-lib-algo-scc/symbolic"
)

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"trim":         "decomposition.trim",
	"reach":        "decomposition.reachability",
	"pivot":        "decomposition.pivot",
	"parallel":     "decomposition.parallelism",
	"log-format":   "logging.format",
	"metrics-addr": "metrics.addr",
	"format":       "output.format",
}

// app is the state shared by the commands of one execution.
type app struct {
	v        *viper.Viper
	cfg      *config.Config
	logger   *zap.Logger
	registry *prometheus.Registry
	recorder *metrics.Recorder
	stop     context.CancelFunc
}

// Execute runs the scc tool with the arguments of the process.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd returns the root command with all its subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}
	root := &cobra.Command{
		Use:   "scc",
		Short: "Symbolic SCC decomposition of asynchronous Boolean networks",
		Long: `scc computes the non-trivial strongly connected components of the
asynchronous state-transition graph of a Boolean network, using BDDs to
represent sets of states.

Models are read from .bnet or .yaml files. Settings are taken, by increasing
priority, from defaults, the configuration file ($HOME/.config/scc/config.yaml
or ./config.yaml), environment variables (SCC_DECOMPOSITION_TRIM for
decomposition.trim) and flags.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringP("config", "c", "", "config file (default is $HOME/.config/scc/config.yaml)")
	pf.BoolP("verbose", "v", false, "log at debug level")
	pf.String("log-format", "", "log format: json or console")
	pf.String("metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	pf.StringP("format", "o", "", "output format: text, json or yaml")
	pf.Bool("no-inline", false, "do not inline variables with a constant update function")

	root.AddCommand(a.decomposeCmd(), a.classifyCmd(), a.infoCmd())
	return root
}

// setup loads the configuration, builds the logger and starts the metrics
// server.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := a.v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	cfgFile, _ := flags.GetString("config")
	if err := config.Init(a.v, cfgFile); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		a.v.Set("logging.level", "debug")
	}
	if noInline, _ := flags.GetBool("no-inline"); noInline {
		a.v.Set("model.inline_constants", false)
	}
	cfg, err := config.Load(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	a.logger = logger.Named("scc")
	a.registry = prometheus.NewRegistry()
	a.recorder = metrics.New(a.registry)

	ctx, cancel := context.WithCancel(cmd.Context())
	a.stop = cancel
	if addr := cfg.Metrics.Addr; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, a.registry, a.logger); err != nil {
				a.logger.Error("metrics server", zap.Error(err))
			}
		}()
	}
	a.logger.Debug("configuration loaded",
		zap.String("file", a.v.ConfigFileUsed()),
		zap.Stringer("decomposition", cfg.Scc()))
	return nil
}

// run wraps the body of a command so that resources are released whatever
// its outcome.
func (a *app) run(f func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer func() {
			if a.stop != nil {
				a.stop()
			}
			_ = a.logger.Sync()
		}()
		return f(cmd, args)
	}
}

// options returns the options of a decomposition.
func (a *app) options() []scc.Option {
	return []scc.Option{scc.WithLogger(a.logger), scc.WithObserver(a.recorder)}
}

// load reads the model in path and encodes its state-transition graph.
func (a *app) load(path string) (*symbolic.Graph, error) {
	net, err := network.Load(path)
	if err != nil {
		return nil, err
	}
	if a.cfg.Model.InlineConstants {
		before := net.NumVars()
		net = net.InlineConstants()
		if removed := before - net.NumVars(); removed > 0 {
			a.logger.Info("inlined constant variables", zap.Int("removed", removed))
		}
	}
	a.logger.Info("model loaded",
		zap.String("model", net.Name),
		zap.Int("variables", net.NumVars()),
		zap.Int("parameters", net.NumParameters()))
	return symbolic.NewGraph(net, a.cfg.BDDOptions()...)
}
