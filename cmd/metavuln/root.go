package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/metavuln/config"
	"github.com/katalvlaran/metavuln/converters"
	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/fba"
	"github.com/katalvlaran/metavuln/logging"
	"github.com/katalvlaran/metavuln/metrics"
	"github.com/katalvlaran/metavuln/store"
)

const (
	flagConfig      = "config"
	flagLogLevel    = "log-level"
	flagLogFormat   = "log-format"
	flagDB          = "db"
	flagMetrics     = "metrics-file"
	flagFraction    = "fraction"
	flagParallelism = "parallelism"
	flagFormat      = "format"
	flagObjective   = "objective"
	flagOutput      = "output"
)

var errFraction = errors.New("parameter 'fraction' must be a decimal number between 0.0 and 1.0")

// app carries the per-invocation state shared by every subcommand.
type app struct {
	out    io.Writer
	errOut io.Writer

	cfgPath string
	flags   config.Config

	cfg     config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, flags: config.Default()}

	root := &cobra.Command{
		Use:   "metavuln",
		Short: "Compute vulnerabilities on constraint-based metabolic models",
		Long: `metavuln finds chokepoint reactions, dead-end metabolites and essential
reactions and genes of a metabolic model, and exports models refined by
flux variability analysis or dead-end removal.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgPath, flagConfig, "", "YAML configuration file")
	pf.StringVar(&a.flags.Log.Level, flagLogLevel, a.flags.Log.Level, "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.Log.Format, flagLogFormat, a.flags.Log.Format, "log format: text or json")
	pf.StringVar(&a.flags.Store.Path, flagDB, "", "SQLite database recording every run")
	pf.StringVar(&a.flags.MetricsFile, flagMetrics, "", "write Prometheus metrics to this textfile after the run")

	root.AddCommand(a.reportCmd(), a.newModelCmd(), a.runsCmd(), licenseCmd())

	return root
}

// setup resolves the configuration: defaults, then the config file, then
// flags set on the command line.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if a.cfgPath != "" {
		var err error
		if cfg, err = config.Load(a.cfgPath); err != nil {
			return err
		}
	}

	fs := cmd.Flags()
	if fs.Changed(flagLogLevel) {
		cfg.Log.Level = a.flags.Log.Level
	}
	if fs.Changed(flagLogFormat) {
		cfg.Log.Format = a.flags.Log.Format
	}
	if fs.Changed(flagDB) {
		cfg.Store.Path = a.flags.Store.Path
	}
	if fs.Changed(flagMetrics) {
		cfg.MetricsFile = a.flags.MetricsFile
	}
	if fs.Changed(flagFraction) {
		cfg.Fraction = a.flags.Fraction
	}
	if fs.Changed(flagParallelism) {
		cfg.Parallelism = a.flags.Parallelism
	}
	if fs.Changed(flagFormat) {
		cfg.Format = a.flags.Format
	}

	if cfg.Fraction < 0 || cfg.Fraction > 1 || math.IsNaN(cfg.Fraction) {
		return errFraction
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format, a.errOut)
	if err != nil {
		return err
	}
	a.cfg, a.log, a.metrics = cfg, log, metrics.New()

	return nil
}

// oracle returns the simplex oracle configured from the solver section.
func (a *app) oracle() *fba.Simplex {
	return fba.NewSimplex(
		fba.WithTolerance(a.cfg.Solver.Tolerance),
		fba.WithBoundCap(a.cfg.Solver.BoundCap),
		fba.WithGeneThreshold(a.cfg.Solver.GeneThreshold),
		fba.WithObserver(a.metrics.OracleObserver()),
		fba.WithLogger(a.log),
	)
}

// loadModel reads a model file and optionally replaces its objective.
func (a *app) loadModel(path, objective string) (*core.Network, error) {
	n, err := converters.Load(path)
	if err != nil {
		return nil, err
	}
	if objective != "" {
		if err := n.SetObjective(objective); err != nil {
			return nil, fmt.Errorf("objective %q: %w", objective, err)
		}
	}
	a.log.Info("model loaded", "model", n.ID(), "path", path,
		"reactions", n.ReactionCount(), "metabolites", n.MetaboliteCount())

	return n, nil
}

// openStore opens the run database, or returns nil when none is configured.
func (a *app) openStore() (*store.Store, error) {
	if a.cfg.Store.Path == "" {
		return nil, nil
	}
	return store.Open(a.cfg.Store.Path)
}

// flushMetrics writes the metrics textfile when one is configured.
func (a *app) flushMetrics() error {
	if a.cfg.MetricsFile == "" {
		return nil
	}
	if err := a.metrics.WriteTextfile(a.cfg.MetricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// output opens path for writing; "" and "-" mean standard output.
func (a *app) output(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return a.out, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func (a *app) saved(path string) {
	if path != "" && path != "-" {
		fmt.Fprintf(a.out, "File successfully saved at: %s\n", path)
	}
}
