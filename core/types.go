// Package core defines the Network arena together with the Reaction,
// Metabolite and Gene entities it owns.
//
// Entities never point at each other. Every relation lives in a table keyed
// by identifier, guarded by a single sync.RWMutex:
//
//	stoich[reactionID][metaboliteID] = coefficient
//	metRxns[metaboliteID][reactionID] = struct{}{}
//	geneRxns[geneID][reactionID]     = struct{}{}
//	rxnGenes[reactionID][geneID]     = struct{}{}
//
// This file declares the entity types, FluxRange, sentinel errors and the
// NewNetwork constructor.
//
// Errors:
//
//	ErrEmptyID             - entity identifier is the empty string.
//	ErrDuplicateID         - entity identifier already present.
//	ErrReactionNotFound    - requested reaction does not exist.
//	ErrMetaboliteNotFound  - requested metabolite does not exist.
//	ErrGeneNotFound        - requested gene does not exist.
//	ErrInvalidBounds       - NaN bound or lower > upper.
//	ErrInvalidCoefficient  - zero or NaN stoichiometric coefficient.
package core

import (
	"errors"
	"math"
	"sync"
)

// Sentinel errors for network operations.
var (
	// ErrEmptyID indicates that an entity was supplied with an empty identifier.
	ErrEmptyID = errors.New("core: empty identifier")

	// ErrDuplicateID indicates that an entity with the same identifier already exists.
	ErrDuplicateID = errors.New("core: duplicate identifier")

	// ErrReactionNotFound indicates an operation referenced a non-existent reaction.
	ErrReactionNotFound = errors.New("core: reaction not found")

	// ErrMetaboliteNotFound indicates an operation referenced a non-existent metabolite.
	ErrMetaboliteNotFound = errors.New("core: metabolite not found")

	// ErrGeneNotFound indicates an operation referenced a non-existent gene.
	ErrGeneNotFound = errors.New("core: gene not found")

	// ErrInvalidBounds indicates a NaN bound or a lower bound above the upper bound.
	ErrInvalidBounds = errors.New("core: invalid flux bounds")

	// ErrInvalidCoefficient indicates a zero or NaN stoichiometric coefficient.
	ErrInvalidCoefficient = errors.New("core: invalid stoichiometric coefficient")
)

// Reaction holds the scalar attributes of a reaction.
//
// Participating metabolites and associated genes are not stored here; query
// them through the owning Network (Stoichiometry, ReactionGenes).
type Reaction struct {
	// ID uniquely identifies the reaction within its Network.
	ID string

	// Name is the human-readable display name.
	Name string

	// LowerBound and UpperBound delimit the admissible flux.
	LowerBound float64
	UpperBound float64

	// GeneRule is the gene-reaction rule, e.g. "b0001 and (b0002 or b0003)".
	GeneRule string

	// Subsystem is an optional pathway label carried through save/load.
	Subsystem string
}

// Metabolite holds the scalar attributes of a metabolite.
type Metabolite struct {
	// ID uniquely identifies the metabolite within its Network.
	ID string

	// Name is the human-readable display name.
	Name string

	// Compartment is the compartment label, e.g. "c" or "e".
	Compartment string

	// Formula is the optional chemical formula.
	Formula string
}

// Gene holds the scalar attributes of a gene.
type Gene struct {
	// ID uniquely identifies the gene within its Network.
	ID string

	// Name is the human-readable display name.
	Name string
}

// FluxRange is the minimum and maximum feasible flux of one reaction.
type FluxRange struct {
	Min float64
	Max float64
}

// Network owns every Reaction, Metabolite and Gene of one model, the
// relation tables between them, the objective reaction and the most recently
// computed objective value.
//
// All methods are safe for concurrent use. Mutations are all-or-nothing:
// inputs are validated before the write lock mutates any table.
type Network struct {
	mu sync.RWMutex

	id        string
	objective string

	objectiveValue float64
	hasObjective   bool

	compartments map[string]string // id -> display name
	reactions    map[string]*Reaction
	metabolites  map[string]*Metabolite
	genes        map[string]*Gene

	stoich   map[string]map[string]float64
	metRxns  map[string]map[string]struct{}
	geneRxns map[string]map[string]struct{}
	rxnGenes map[string]map[string]struct{}
}

// NewNetwork creates an empty Network with the given model identifier.
// The objective value starts unknown (NaN).
func NewNetwork(id string) *Network {
	return &Network{
		id:             id,
		objectiveValue: math.NaN(),
		compartments:   make(map[string]string),
		reactions:      make(map[string]*Reaction),
		metabolites:    make(map[string]*Metabolite),
		genes:          make(map[string]*Gene),
		stoich:         make(map[string]map[string]float64),
		metRxns:        make(map[string]map[string]struct{}),
		geneRxns:       make(map[string]map[string]struct{}),
		rxnGenes:       make(map[string]map[string]struct{}),
	}
}
