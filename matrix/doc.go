// Package matrix builds the stoichiometric matrix of a Network.
//
// The stoichiometric matrix S has one row per metabolite and one column per
// reaction; S[i][j] is the coefficient of metabolite i in reaction j
// (negative for reactants, positive for products). It is the incidence
// matrix of the reaction hypergraph, weighted by coefficients.
//
// Rows and columns follow the sorted identifier order of the Network, so two
// builds of the same model are byte-identical. Metabolites that take part in
// no reaction produce all-zero rows and are left out.
//
// IndependentRows selects a maximal linearly independent subset of rows, the
// form required by standard-form LP solvers for the steady-state constraint
// S·v = 0.
package matrix
