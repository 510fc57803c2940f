package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/metavuln/analysis"
	"github.com/katalvlaran/metavuln/pipeline"
	"github.com/katalvlaran/metavuln/report"
	"github.com/katalvlaran/metavuln/store"
	"github.com/katalvlaran/metavuln/sweep"
)

// reportFlags are shared by both report subcommands.
type reportFlags struct {
	objective string
	output    string
}

func (a *app) reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute vulnerabilities on constraint-based models",
	}
	cmd.AddCommand(a.criticalCmd(), a.growthCmd())
	return cmd
}

func (a *app) bindReportFlags(cmd *cobra.Command, rf *reportFlags) {
	f := cmd.Flags()
	f.StringVar(&rf.objective, flagObjective, "", "reaction id to use as the growth objective")
	f.StringVarP(&rf.output, flagOutput, "o", "", "report file; standard output when empty")
	f.StringVar(&a.flags.Format, flagFormat, a.flags.Format, "report format: json or tsv")
}

func (a *app) criticalCmd() *cobra.Command {
	var rf reportFlags
	cmd := &cobra.Command{
		Use:   "critical-reactions MODEL",
		Short: "Report chokepoints, dead ends and essential reactions across the four refinement stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCritical(cmd.Context(), args[0], rf)
		},
	}
	a.bindReportFlags(cmd, &rf)
	cmd.Flags().Float64Var(&a.flags.Fraction, flagFraction, a.flags.Fraction,
		"fraction of optimal growth enforced by flux variability analysis, in [0, 1]")
	return cmd
}

func (a *app) runCritical(ctx context.Context, path string, rf reportFlags) error {
	n, err := a.loadModel(path, rf.objective)
	if err != nil {
		return err
	}

	res, err := pipeline.CriticalPoints(ctx, analysis.CloneLoader(n), a.oracle(),
		pipeline.WithFraction(a.cfg.Fraction),
		pipeline.WithLogger(a.log),
		pipeline.WithObserver(a.metrics.StageObserver()),
	)
	if err != nil {
		return err
	}
	for _, stage := range pipeline.Stages {
		if msg, ok := res.Errors[stage]; ok {
			a.log.Warn("stage failed", "stage", stage, "error", msg)
		}
	}

	crit, err := report.CriticalSummary(res)
	if err != nil {
		return err
	}
	if err := a.writeReport(rf.output, crit, crit.Table()); err != nil {
		return err
	}
	if err := a.recordCritical(ctx, crit); err != nil {
		return err
	}

	return a.flushMetrics()
}

func (a *app) recordCritical(ctx context.Context, crit *report.Critical) error {
	st, err := a.openStore()
	if err != nil || st == nil {
		return err
	}
	defer st.Close()

	run := store.Run{ID: crit.RunID, Kind: store.KindCritical, Model: crit.Model, CreatedAt: time.Now().UTC()}
	if err := st.SaveRun(ctx, run); err != nil {
		return err
	}
	for _, snap := range crit.Snapshots {
		if err := st.SaveSnapshot(ctx, run.ID, snap); err != nil {
			return err
		}
	}
	a.log.Info("run stored", "run", run.ID, "db", st.Path())

	return nil
}

func (a *app) growthCmd() *cobra.Command {
	var rf reportFlags
	cmd := &cobra.Command{
		Use:   "growth-dependent-reactions MODEL",
		Short: "Report how reaction classes change as the enforced growth fraction rises",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGrowth(cmd.Context(), args[0], rf)
		},
	}
	a.bindReportFlags(cmd, &rf)
	cmd.Flags().IntVar(&a.flags.Parallelism, flagParallelism, a.flags.Parallelism,
		"fractions analysed concurrently")
	return cmd
}

func (a *app) runGrowth(ctx context.Context, path string, rf reportFlags) error {
	n, err := a.loadModel(path, rf.objective)
	if err != nil {
		return err
	}

	res, err := sweep.Run(ctx, analysis.CloneLoader(n), a.oracle(),
		sweep.WithParallelism(a.cfg.Parallelism),
		sweep.WithLogger(a.log),
		sweep.WithObserver(a.metrics.SweepObserver()),
	)
	if err != nil {
		return err
	}

	rep := report.SweepSummary(res)
	if err := a.writeReport(rf.output, rep, report.SweepTable(res)); err != nil {
		return err
	}
	if err := a.recordSweep(ctx, rep); err != nil {
		return err
	}

	return a.flushMetrics()
}

func (a *app) recordSweep(ctx context.Context, rep *report.Sweep) error {
	st, err := a.openStore()
	if err != nil || st == nil {
		return err
	}
	defer st.Close()

	run := store.Run{ID: rep.RunID, Kind: store.KindSweep, Model: rep.Model, CreatedAt: time.Now().UTC()}
	if err := st.SaveRun(ctx, run); err != nil {
		return err
	}
	if err := st.SaveSweep(ctx, run.ID, rep.Result); err != nil {
		return err
	}
	a.log.Info("run stored", "run", run.ID, "db", st.Path())

	return nil
}

// writeReport writes v as JSON or t as TSV, per the configured format.
func (a *app) writeReport(path string, v any, t *report.Table) (err error) {
	w, closeFn, err := a.output(path)
	if err != nil {
		return fmt.Errorf("open report: %w", err)
	}
	defer func() {
		if cerr := closeFn(); err == nil {
			err = cerr
		}
		if err == nil {
			a.saved(path)
		}
	}()

	if a.cfg.Format == "tsv" {
		return report.WriteTSV(w, t)
	}
	return report.WriteJSON(w, v)
}
