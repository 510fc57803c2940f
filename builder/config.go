// SPDX-License-Identifier: MIT
// Package: metavuln/builder
//
// config.go - internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   - metabolite ids  "M0", "M1", ...
//   - reaction ids    "R1", "R2", ...
//   - compartment     "c"
//   - bounds          [0, 1000]
//   - rng             nil (pure unless seeded)

package builder

import (
	"math/rand"
	"strconv"
)

// builderConfig aggregates all knobs used by constructors.
type builderConfig struct {
	metPrefix   string
	rxnPrefix   string
	compartment string
	lower       float64
	upper       float64
	rng         *rand.Rand
}

const (
	defaultMetPrefix   = "M"
	defaultRxnPrefix   = "R"
	defaultCompartment = "c"
	defaultLower       = 0.0
	defaultUpper       = 1000.0
)

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	cfg := builderConfig{
		metPrefix:   defaultMetPrefix,
		rxnPrefix:   defaultRxnPrefix,
		compartment: defaultCompartment,
		lower:       defaultLower,
		upper:       defaultUpper,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c builderConfig) met(i int) string {
	return c.metPrefix + strconv.Itoa(i)
}

// BuilderOption customizes the builder configuration.
type BuilderOption func(*builderConfig)

// WithPrefixes sets metabolite and reaction id prefixes. Panics on empty input.
func WithPrefixes(met, rxn string) BuilderOption {
	if met == "" || rxn == "" {
		panic("builder: WithPrefixes with empty prefix")
	}
	return func(c *builderConfig) { c.metPrefix, c.rxnPrefix = met, rxn }
}

// WithCompartment sets the compartment of generated metabolites.
func WithCompartment(comp string) BuilderOption {
	return func(c *builderConfig) { c.compartment = comp }
}

// WithBounds sets the bounds of generated irreversible reactions.
// Panics when lower > upper.
func WithBounds(lower, upper float64) BuilderOption {
	if lower > upper {
		panic("builder: WithBounds lower > upper")
	}
	return func(c *builderConfig) { c.lower, c.upper = lower, upper }
}

// WithSeed installs a deterministic random source.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}
