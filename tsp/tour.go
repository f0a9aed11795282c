/* Copyright 2021, Arkadiusz Zarychta */

package tsp

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Edge is a directed arc of a tour. It is written to JSON as [from,to].
type Edge struct {
	From int
	To   int
}

func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{e.From, e.To})
}

func (e *Edge) UnmarshalJSON(b []byte) error {
	var p [2]int
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	e.From, e.To = p[0], p[1]
	return nil
}

// ValidateEdges checks that edges form exactly one directed Hamiltonian cycle
// over the cities 0..n-1. Every error satisfies errors.Is(err, ErrInvalidTour).
func ValidateEdges(edges []Edge, n int) error {
	if len(edges) != n {
		return errors.Wrapf(ErrInvalidTour, "%d edges for %d cities", len(edges), n)
	}
	succ := make([]int, n)
	indeg := make([]int, n)
	for i := range succ {
		succ[i] = -1
	}
	for _, e := range edges {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return errors.Wrapf(ErrInvalidTour, "edge (%d,%d) out of range", e.From, e.To)
		}
		if e.From == e.To {
			return errors.Wrapf(ErrInvalidTour, "self loop at %d", e.From)
		}
		if succ[e.From] >= 0 {
			return errors.Wrapf(ErrInvalidTour, "city %d is left twice", e.From)
		}
		succ[e.From] = e.To
		indeg[e.To]++
	}
	for c, k := range indeg {
		if k != 1 {
			return errors.Wrapf(ErrInvalidTour, "city %d is entered %d times", c, k)
		}
	}
	if sub := findsubtour(succ); len(sub) < n {
		return errors.Wrapf(ErrInvalidTour, "subtour %v", sub)
	}
	return nil
}

// findsubtour returns the shortest cycle of the permutation succ.
func findsubtour(succ []int) []int {
	n := len(succ)
	seen := make([]bool, n)
	tour := make([]int, 0, n)
	bestStart, bestLen := 0, n+1
	for node := 0; node < n; node++ {
		if seen[node] {
			continue
		}
		start := len(tour)
		for c := node; !seen[c]; c = succ[c] {
			seen[c] = true
			tour = append(tour, c)
		}
		if l := len(tour) - start; l < bestLen {
			bestStart, bestLen = start, l
		}
	}
	return tour[bestStart : bestStart+bestLen]
}

// TourCost sums d over the edges.
func TourCost(d [][]float64, edges []Edge) float64 {
	cost := 0.0
	for _, e := range edges {
		cost += d[e.From][e.To]
	}
	return cost
}
