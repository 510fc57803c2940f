// SPDX-License-Identifier: MIT
// Package: metavuln/builder
//
// toy.go - a small glycolysis-shaped network with genes and rules.
//
//	EX_glc   glc_e <=>            [-10, 1000]
//	GLCt     glc_e --> glc_c      b1
//	HEX      glc_c --> g6p_c      b2 or b3
//	PGI      g6p_c <=> f6p_c      b4
//	PFK      f6p_c --> pyr_c      b5 and b6
//	G6PDH    g6p_c --> ru5p_c     b7
//	RPE      ru5p_c --> xu5p_c    b8   (dead branch)
//	BIOMASS  pyr_c -->            objective
//	BLOCKED  pyr_c --> ac_c       [0, 0]

package builder

import (
	"fmt"

	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/gpr"
)

type toyReaction struct {
	id     string
	lo, hi float64
	rule   string
	st     map[string]float64
}

var toyMetabolites = []core.Metabolite{
	{ID: "glc_e", Name: "D-Glucose", Compartment: "e", Formula: "C6H12O6"},
	{ID: "glc_c", Name: "D-Glucose", Compartment: "c", Formula: "C6H12O6"},
	{ID: "g6p_c", Name: "D-Glucose 6-phosphate", Compartment: "c", Formula: "C6H11O9P"},
	{ID: "f6p_c", Name: "D-Fructose 6-phosphate", Compartment: "c", Formula: "C6H11O9P"},
	{ID: "pyr_c", Name: "Pyruvate", Compartment: "c", Formula: "C3H3O3"},
	{ID: "ru5p_c", Name: "D-Ribulose 5-phosphate", Compartment: "c", Formula: "C5H9O8P"},
	{ID: "xu5p_c", Name: "D-Xylulose 5-phosphate", Compartment: "c", Formula: "C5H9O8P"},
	{ID: "ac_c", Name: "Acetate", Compartment: "c", Formula: "C2H3O2"},
}

var toyReactions = []toyReaction{
	{"EX_glc", -10, 1000, "", map[string]float64{"glc_e": -1}},
	{"GLCt", 0, 1000, "b1", map[string]float64{"glc_e": -1, "glc_c": 1}},
	{"HEX", 0, 1000, "b2 or b3", map[string]float64{"glc_c": -1, "g6p_c": 1}},
	{"PGI", -1000, 1000, "b4", map[string]float64{"g6p_c": -1, "f6p_c": 1}},
	{"PFK", 0, 1000, "b5 and b6", map[string]float64{"f6p_c": -1, "pyr_c": 2}},
	{"G6PDH", 0, 1000, "b7", map[string]float64{"g6p_c": -1, "ru5p_c": 1}},
	{"RPE", 0, 1000, "b8", map[string]float64{"ru5p_c": -1, "xu5p_c": 1}},
	{"BIOMASS", 0, 1000, "", map[string]float64{"pyr_c": -1}},
	{"BLOCKED", 0, 0, "", map[string]float64{"pyr_c": -1, "ac_c": 1}},
}

// ToyObjective is the objective reaction of Toy.
const ToyObjective = "BIOMASS"

// Toy adds the fixed toy network. Builder options are ignored.
// With glucose uptake capped at 10, the optimal BIOMASS flux is 20.
func Toy() Constructor {
	return func(n *core.Network, _ builderConfig) error {
		_ = n.AddCompartment("c", "cytosol")
		_ = n.AddCompartment("e", "extracellular")
		for _, m := range toyMetabolites {
			if err := n.AddMetabolite(m); err != nil {
				return fmt.Errorf("Toy: %w", err)
			}
		}
		for _, tr := range toyReactions {
			r := core.Reaction{ID: tr.id, Name: tr.id, LowerBound: tr.lo, UpperBound: tr.hi, GeneRule: tr.rule}
			if err := n.AddReaction(r, tr.st); err != nil {
				return fmt.Errorf("Toy: %w", err)
			}
			if err := linkRule(n, tr.id, tr.rule); err != nil {
				return fmt.Errorf("Toy: %w", err)
			}
		}
		return n.SetObjective(ToyObjective)
	}
}

// linkRule registers every gene named by rule and links it to rxnID.
func linkRule(n *core.Network, rxnID, rule string) error {
	parsed, err := gpr.Parse(rule)
	if err != nil {
		return err
	}
	for _, g := range parsed.Genes() {
		if _, ok := n.Gene(g); !ok {
			if err := n.AddGene(core.Gene{ID: g, Name: g}); err != nil {
				return err
			}
		}
		if err := n.LinkGene(g, rxnID); err != nil {
			return err
		}
	}
	return nil
}
