// Package converters reads and writes metabolic models in the COBRA
// interchange formats and turns them into core.Network values.
//
// Supported formats, chosen by file extension:
//   - .json         COBRA JSON
//   - .yml, .yaml   COBRA YAML; !!omap sequences are read as mappings
//
// SBML (.xml) is recognised but unsupported. Any other extension yields
// ErrFormat, a missing file ErrNotFound, and a model that decodes but is
// semantically broken a *ValidationError carrying the first problem found.
//
// The objective is the first reaction, in file order, with a non-zero
// objective_coefficient. Genes named by gene_reaction_rule are created when
// the genes list omits them.
package converters
