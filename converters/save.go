package converters

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/metavuln/core"
)

// Save writes n to path in the format chosen by its extension.
func Save(n *core.Network, path string) error {
	f, err := formatOf("Save", path)
	if err != nil {
		return err
	}
	data, err := Encode(n, f == formatYAML)
	if err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("Save: %w", err)
	}
	return nil
}

// Encode renders n as COBRA JSON, or YAML when yamlOutput is set.
// Entities are written sorted by id.
func Encode(n *core.Network, yamlOutput bool) ([]byte, error) {
	doc := document(n)
	if yamlOutput {
		return yaml.Marshal(doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

func document(n *core.Network) *modelDoc {
	doc := &modelDoc{
		ID:           n.ID(),
		Compartments: make(map[string]string),
		Metabolites:  make([]metaboliteDoc, 0, n.MetaboliteCount()),
		Reactions:    make([]reactionDoc, 0, n.ReactionCount()),
		Genes:        make([]geneDoc, 0),
		Version:      "1",
	}
	for _, c := range n.Compartments() {
		doc.Compartments[c] = n.CompartmentName(c)
	}
	for _, m := range n.Metabolites() {
		doc.Metabolites = append(doc.Metabolites, metaboliteDoc{
			ID: m.ID, Name: m.Name, Compartment: m.Compartment, Formula: m.Formula,
		})
	}
	objective := n.Objective()
	for _, r := range n.Reactions() {
		rd := reactionDoc{
			ID:               r.ID,
			Name:             r.Name,
			Metabolites:      n.Stoichiometry(r.ID),
			LowerBound:       r.LowerBound,
			UpperBound:       r.UpperBound,
			GeneReactionRule: r.GeneRule,
			Subsystem:        r.Subsystem,
		}
		if r.ID == objective {
			rd.ObjectiveCoefficient = 1
		}
		doc.Reactions = append(doc.Reactions, rd)
	}
	for _, g := range n.Genes() {
		doc.Genes = append(doc.Genes, geneDoc{ID: g.ID, Name: g.Name})
	}

	return doc
}
