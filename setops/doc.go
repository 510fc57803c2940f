// Package setops provides the set algebra used to compare vulnerability
// sets between pipeline stages.
//
// Set[T] is a plain map-backed set. Difference, Intersection and Union
// never modify their arguments. Compare splits two sets into the
// only-before / both / only-after partition every stage report needs, and
// CompareStages applies it to consecutive stages of a two- or four-stage
// run.
package setops
