package converters

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/metavuln/core"
	"github.com/katalvlaran/metavuln/gpr"
)

type format int

const (
	formatJSON format = iota
	formatYAML
)

// formatOf maps a path to its format by extension.
func formatOf(op, path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yml", ".yaml":
		return formatYAML, nil
	case ".xml":
		return 0, fmt.Errorf("%s: %s: SBML is not supported: %w", op, path, ErrFormat)
	default:
		return 0, fmt.Errorf("%s: %s: model file must be .json, .yml or .yaml: %w", op, path, ErrFormat)
	}
}

// Load reads the model at path.
func Load(path string) (*core.Network, error) {
	f, err := formatOf("Load", path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("Load: %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Load: %w", err)
	}
	return Decode(data, f == formatYAML)
}

// Decode parses COBRA JSON, or YAML when yamlInput is set.
func Decode(data []byte, yamlInput bool) (*core.Network, error) {
	var doc modelDoc
	if yamlInput {
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("Decode: %v: %w", err, ErrFormat)
		}
		normalizeOmap(&root)
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("Decode: %v: %w", err, ErrFormat)
		}
	} else if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("Decode: %v: %w", err, ErrFormat)
	}
	if err := check(&doc); err != nil {
		return nil, err
	}
	return build(&doc)
}

// normalizeOmap rewrites every !!omap sequence of single-pair mappings
// into a plain mapping, in place.
func normalizeOmap(n *yaml.Node) {
	if n.Kind == yaml.SequenceNode && n.Tag == "!!omap" {
		merged := make([]*yaml.Node, 0, 2*len(n.Content))
		for _, item := range n.Content {
			if item.Kind == yaml.MappingNode {
				merged = append(merged, item.Content...)
			}
		}
		n.Kind, n.Tag, n.Content = yaml.MappingNode, "!!map", merged
	}
	for _, c := range n.Content {
		normalizeOmap(c)
	}
}

// build turns a validated document into a Network.
func build(doc *modelDoc) (*core.Network, error) {
	n := core.NewNetwork(doc.ID)
	invalid := func(field string, err error) error {
		return &ValidationError{Field: field, Msg: err.Error(), Err: err}
	}

	for id, name := range doc.Compartments {
		if err := n.AddCompartment(id, name); err != nil {
			return nil, invalid("compartments", err)
		}
	}
	for i, m := range doc.Metabolites {
		err := n.AddMetabolite(core.Metabolite{ID: m.ID, Name: m.Name, Compartment: m.Compartment, Formula: m.Formula})
		if err != nil {
			return nil, invalid(fmt.Sprintf("metabolites[%d]", i), err)
		}
	}
	for i, g := range doc.Genes {
		if err := n.AddGene(core.Gene{ID: g.ID, Name: g.Name}); err != nil {
			return nil, invalid(fmt.Sprintf("genes[%d]", i), err)
		}
	}

	objective := ""
	for i, r := range doc.Reactions {
		field := fmt.Sprintf("reactions[%d]", i)
		rule, err := gpr.Parse(r.GeneReactionRule)
		if err != nil {
			return nil, invalid(field+".gene_reaction_rule", err)
		}
		rxn := core.Reaction{
			ID:         r.ID,
			Name:       r.Name,
			LowerBound: r.LowerBound,
			UpperBound: r.UpperBound,
			GeneRule:   rule.String(),
			Subsystem:  r.Subsystem,
		}
		if err := n.AddReaction(rxn, r.Metabolites); err != nil {
			return nil, invalid(field, err)
		}
		for _, g := range rule.Genes() {
			if _, ok := n.Gene(g); !ok {
				if err := n.AddGene(core.Gene{ID: g}); err != nil {
					return nil, invalid(field, err)
				}
			}
			if err := n.LinkGene(g, r.ID); err != nil {
				return nil, invalid(field, err)
			}
		}
		if objective == "" && r.ObjectiveCoefficient != 0 {
			objective = r.ID
		}
	}
	if objective != "" {
		if err := n.SetObjective(objective); err != nil {
			return nil, invalid("reactions", err)
		}
	}

	return n, nil
}
