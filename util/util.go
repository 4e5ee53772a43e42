package util

import (
	"math/rand"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Mod is the euclidean modulo, always in [0, m) for m > 0.
func Mod[A constraints.Integer](a A, m A) A {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// FloorDiv rounds toward negative infinity.
func FloorDiv[A constraints.Integer](a A, b A) A {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Choice panics on an empty slice, like rand.Intn.
func Choice[A any](rng *rand.Rand, items []A) A {
	return items[rng.Intn(len(items))]
}

func Distinct[A comparable](items []A) []A {
	var res []A
	for _, v := range items {
		if !slices.Contains(res, v) {
			res = append(res, v)
		}
	}
	return res
}

