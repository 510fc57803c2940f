package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/metavuln/analysis"
	"github.com/katalvlaran/metavuln/converters"
)

const defaultModelFile = "output.json"

// refinement selects the steps applied before the model is saved.
type refinement struct {
	fva         bool
	removeDeads bool
}

func (a *app) newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new-model",
		Short: "Export a refined constraint-based model",
	}
	cmd.AddCommand(
		a.refineCmd("fva-constrained",
			"Export a model whose flux bounds are replaced by its flux variability ranges",
			refinement{fva: true}),
		a.refineCmd("without-dem",
			"Export a model with dead-end metabolites removed iteratively",
			refinement{removeDeads: true}),
		a.refineCmd("fva-constrained-without-dem",
			"Export a model constrained by flux variability, then stripped of dead-end metabolites",
			refinement{fva: true, removeDeads: true}),
	)
	return cmd
}

func (a *app) refineCmd(use, short string, r refinement) *cobra.Command {
	var objective, output string
	cmd := &cobra.Command{
		Use:   use + " MODEL",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRefine(cmd.Context(), args[0], objective, output, r)
		},
	}
	f := cmd.Flags()
	f.StringVar(&objective, flagObjective, "", "reaction id to use as the growth objective")
	f.StringVarP(&output, flagOutput, "o", defaultModelFile, "output model file: .json, .yml or .yaml")
	if r.fva {
		f.Float64Var(&a.flags.Fraction, flagFraction, a.flags.Fraction,
			"fraction of optimal growth enforced by flux variability analysis, in [0, 1]")
	}
	return cmd
}

func (a *app) runRefine(ctx context.Context, path, objective, output string, r refinement) error {
	n, err := a.loadModel(path, objective)
	if err != nil {
		return err
	}
	sess := analysis.New(n, a.oracle(), analysis.WithLogger(a.log))

	if r.fva {
		if err := sess.RunFVA(ctx, a.cfg.Fraction, true); err != nil {
			return fmt.Errorf("Couldn't run Flux Variability Analysis: %s", analysis.Describe(err))
		}
	}
	if r.removeDeads {
		if _, err := sess.RemoveDeadEnds(ctx); err != nil {
			return err
		}
	}

	if err := converters.Save(sess.Network(), output); err != nil {
		return err
	}
	a.saved(output)

	return a.flushMetrics()
}
