// Package core provides the thread-safe in-memory Network that every
// analysis in metavuln reads and mutates.
//
// A Network is an arena: Reaction, Metabolite and Gene values are stored by
// identifier, and the relations between them live in separate tables rather
// than in mutual object references. Queries always return copies and sorted
// identifier lists, so results are deterministic and callers can never alias
// the live model.
//
// Direction:
//
//	Classify(lower, upper) derives FORWARD, BACKWARD or REVERSIBLE from bounds
//	after snapping magnitudes below Epsilon (5e-6) to zero. Blocked reactions
//	(both bounds ~0) are FORWARD and also reported by DeadReactions.
//
// Mutation:
//
//	AddMetabolite, AddReaction, AddGene, LinkGene, RemoveMetabolites,
//	RemoveReactions, SetBounds, ApplyFluxRanges. Each call validates first and
//	then mutates under one write lock; a failed call changes nothing.
//
// Cloning:
//
//	Clone returns a fully detached deep copy, used to run independent
//	analyses (one per sweep fraction, one per knockout) without sharing state.
package core
