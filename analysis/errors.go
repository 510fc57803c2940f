package analysis

import "errors"

// ErrNotComputed indicates that a result was read before its producing
// operation ran.
var ErrNotComputed = errors.New("analysis: result not computed")
