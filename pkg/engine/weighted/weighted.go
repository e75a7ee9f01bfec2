// Package weighted implements a weighted choice table.
package weighted

import (
	"errors"
	"fmt"

	"nightshift/pkg/engine/rng"
)

var (
	// ErrEmpty is returned when selecting from a table with no elements.
	ErrEmpty = errors.New("weighted: table is empty")
	// ErrNoWeight is returned when every element has weight zero.
	ErrNoWeight = errors.New("weighted: total weight is zero")
	// ErrNegativeWeight is returned when a negative weight is assigned.
	ErrNegativeWeight = errors.New("weighted: negative weight")
)

// Table maps elements to non-negative integer weights and samples one
// proportionally. Elements are walked in insertion order.
type Table[T comparable] struct {
	order   []T
	weights map[T]int
	total   int
}

// New creates an empty table.
func New[T comparable]() *Table[T] {
	return &Table[T]{weights: make(map[T]int)}
}

// Len returns the number of elements.
func (t *Table[T]) Len() int { return len(t.order) }

// Total returns the running sum of weights.
func (t *Table[T]) Total() int { return t.total }

// Weight returns the weight of elem and whether it is present.
func (t *Table[T]) Weight(elem T) (int, bool) {
	w, ok := t.weights[elem]
	return w, ok
}

// AddOrSet assigns weight to elem, adding it if it is new. It reports
// whether elem was already present. Negative weights are rejected and leave
// the table unchanged.
func (t *Table[T]) AddOrSet(elem T, weight int) (existed bool, err error) {
	if weight < 0 {
		return false, fmt.Errorf("%w: %v -> %d", ErrNegativeWeight, elem, weight)
	}
	old, existed := t.weights[elem]
	if !existed {
		t.order = append(t.order, elem)
	}
	t.weights[elem] = weight
	t.total += weight - old
	return existed, nil
}

// SelectRandom draws a uniform integer in [0, Total()) from src and walks
// the elements in insertion order, subtracting each weight until the
// remainder is less than the current element's weight.
func (t *Table[T]) SelectRandom(src *rng.Stream) (T, error) {
	var zero T
	if len(t.order) == 0 {
		return zero, ErrEmpty
	}
	if t.total == 0 {
		return zero, ErrNoWeight
	}
	roll := src.Int(0, t.total)
	for _, elem := range t.order {
		w := t.weights[elem]
		if roll < w {
			return elem, nil
		}
		roll -= w
	}
	// unreachable while total matches the sum of weights
	return t.order[len(t.order)-1], nil
}

// MustSelect is SelectRandom for tables built from constants; it panics on error.
func (t *Table[T]) MustSelect(src *rng.Stream) T {
	elem, err := t.SelectRandom(src)
	if err != nil {
		panic(err)
	}
	return elem
}
