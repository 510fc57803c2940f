package fba

import (
	"errors"
	"fmt"
)

var (
	// ErrInfeasible indicates that no flux vector satisfies the constraints.
	ErrInfeasible = errors.New("fba: model is infeasible")

	// ErrUnbounded indicates that the objective can grow without limit.
	ErrUnbounded = errors.New("fba: model is unbounded")

	// ErrNoObjective indicates a network without an objective reaction.
	ErrNoObjective = errors.New("fba: objective reaction not set")

	// ErrLooplessUnsupported indicates a loopless FVA request.
	ErrLooplessUnsupported = errors.New("fba: loopless flux variability is not supported")
)

// SolverError wraps any other solver failure with the operation that hit it.
type SolverError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *SolverError) Error() string {
	return fmt.Sprintf("fba: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying solver error.
func (e *SolverError) Unwrap() error {
	return e.Err
}
