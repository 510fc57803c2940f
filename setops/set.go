package setops

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrStageCount indicates CompareStages was given neither two nor four sets.
var ErrStageCount = errors.New("setops: need two or four stages")

// ErrLabelCount indicates the label and set counts differ.
var ErrLabelCount = errors.New("setops: labels and sets differ in length")

// Set is an unordered collection of distinct values.
type Set[T comparable] map[T]struct{}

// Of returns a Set holding items.
func Of[T comparable](items ...T) Set[T] {
	s := make(Set[T], len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Difference returns the elements of a not in b.
func Difference[T comparable](a, b Set[T]) Set[T] {
	out := make(Set[T])
	for v := range a {
		if !b.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Intersection returns the elements present in both a and b.
func Intersection[T comparable](a, b Set[T]) Set[T] {
	if len(b) < len(a) {
		a, b = b, a
	}
	out := make(Set[T])
	for v := range a {
		if b.Has(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Union returns the elements of any of the sets.
func Union[T comparable](sets ...Set[T]) Set[T] {
	out := make(Set[T])
	for _, s := range sets {
		for v := range s {
			out[v] = struct{}{}
		}
	}
	return out
}

// Sorted returns the elements of s in ascending order.
func Sorted[T cmp.Ordered](s Set[T]) []T {
	out := make([]T, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}

// Comparison partitions two sets.
type Comparison[T cmp.Ordered] struct {
	OnlyBefore []T `json:"only_before"`
	Both       []T `json:"both"`
	OnlyAfter  []T `json:"only_after"`
}

// Compare partitions before and after into sorted only-before, shared and
// only-after lists.
func Compare[T cmp.Ordered](before, after Set[T]) Comparison[T] {
	return Comparison[T]{
		OnlyBefore: Sorted(Difference(before, after)),
		Both:       Sorted(Intersection(before, after)),
		OnlyAfter:  Sorted(Difference(after, before)),
	}
}

// StageComparison is the Comparison between two labelled stages.
type StageComparison[T cmp.Ordered] struct {
	Before string `json:"before"`
	After  string `json:"after"`
	Comparison[T]
}

// CompareStages compares every consecutive pair of stages. With four
// stages it also compares the first with the last, so a full pipeline run
// yields initial/dem, dem/fva, fva/fva_dem and initial/fva_dem.
func CompareStages[T cmp.Ordered](labels []string, sets ...Set[T]) ([]StageComparison[T], error) {
	if len(labels) != len(sets) {
		return nil, fmt.Errorf("CompareStages: %d labels, %d sets: %w", len(labels), len(sets), ErrLabelCount)
	}
	if len(sets) != 2 && len(sets) != 4 {
		return nil, fmt.Errorf("CompareStages: %d sets: %w", len(sets), ErrStageCount)
	}
	out := make([]StageComparison[T], 0, len(sets))
	pair := func(i, j int) {
		out = append(out, StageComparison[T]{
			Before:     labels[i],
			After:      labels[j],
			Comparison: Compare(sets[i], sets[j]),
		})
	}
	for i := 0; i+1 < len(sets); i++ {
		pair(i, i+1)
	}
	if len(sets) == 4 {
		pair(0, 3)
	}

	return out, nil
}
