package core

import "math"

// Epsilon is the magnitude below which a flux bound or growth value is
// treated as exactly zero.
const Epsilon = 5e-6

// Direction is the flux directionality of a reaction, derived from its
// current bounds. It is never stored.
type Direction int

const (
	// Forward reactions carry flux from reactants to products only.
	// Blocked reactions (both bounds ~0) are also Forward.
	Forward Direction = iota
	// Backward reactions carry flux from products to reactants only.
	Backward
	// Reversible reactions may carry flux both ways.
	Reversible
)

// String returns FORWARD, BACKWARD or REVERSIBLE.
func (d Direction) String() string {
	switch d {
	case Forward:
		return "FORWARD"
	case Backward:
		return "BACKWARD"
	case Reversible:
		return "REVERSIBLE"
	default:
		return "UNKNOWN"
	}
}

// snap maps values within Epsilon of zero to exactly zero.
func snap(v float64) float64 {
	if math.Abs(v) < Epsilon {
		return 0
	}
	return v
}

// Classify returns the Direction implied by a pair of flux bounds.
//
// Bounds are epsilon-snapped first; then:
//
//	both zero     -> Forward
//	lower >= 0    -> Forward
//	upper > 0     -> Reversible
//	otherwise     -> Backward
func Classify(lower, upper float64) Direction {
	lower, upper = snap(lower), snap(upper)
	switch {
	case lower == 0 && upper == 0:
		return Forward
	case lower >= 0:
		return Forward
	case upper > 0:
		return Reversible
	default:
		return Backward
	}
}

// IsDeadBounds reports whether both bounds are within Epsilon of zero.
func IsDeadBounds(lower, upper float64) bool {
	return math.Abs(lower) < Epsilon && math.Abs(upper) < Epsilon
}
