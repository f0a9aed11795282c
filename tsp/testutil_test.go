package tsp_test

import (
	"math"
	"math/rand"

	"git.solver4all.com/azaryc2s/mtz/lp"
)

const costTol = 1e-6

// randomMatrix returns an n x n matrix of integer distances in [1, 50].
func randomMatrix(n int, seed int64, symmetric bool) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || (symmetric && j < i) {
				continue
			}
			d[i][j] = float64(1 + rng.Intn(50))
			if symmetric {
				d[j][i] = d[i][j]
			}
		}
	}
	return d
}

// bruteForce returns the optimal tour cost by enumerating every permutation
// of the cities 1..n-1.
func bruteForce(d [][]float64) float64 {
	n := len(d)
	perm := make([]int, 0, n-1)
	used := make([]bool, n)
	best := math.Inf(1)
	var rec func(last int, cost float64)
	rec = func(last int, cost float64) {
		if len(perm) == n-1 {
			if c := cost + d[last][0]; c < best {
				best = c
			}
			return
		}
		for c := 1; c < n; c++ {
			if used[c] {
				continue
			}
			used[c] = true
			perm = append(perm, c)
			rec(c, cost+d[last][c])
			perm = perm[:len(perm)-1]
			used[c] = false
		}
	}
	rec(0, 0)
	return best
}

// stubSolver answers every model with a fixed result.
type stubSolver struct {
	res   *lp.Result
	err   error
	calls int
}

func (s *stubSolver) Solve(*lp.Model) (*lp.Result, error) {
	s.calls++
	return s.res, s.err
}
