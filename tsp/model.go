/* Copyright 2021, Arkadiusz Zarychta */

package tsp

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"git.solver4all.com/azaryc2s/mtz/lp"
)

// ModelName is the name given to every MTZ model.
const ModelName = "tsp_mtz"

// Formulation is the MTZ model of one distance matrix together with the
// mapping from cities to model variables.
type Formulation struct {
	N     int
	Model *lp.Model
}

// Arc returns the model index of x[i][j], or -1 for i == j.
func (f *Formulation) Arc(i, j int) int {
	if i == j {
		return -1
	}
	if j > i {
		j--
	}
	return i*(f.N-1) + j
}

// Order returns the model index of u[i], or -1 for the depot 0.
func (f *Formulation) Order(i int) int {
	if i == 0 {
		return -1
	}
	return f.N*(f.N-1) + i - 1
}

// BuildMTZ builds the Miller-Tucker-Zemlin model of the asymmetric TSP on d:
//
//	min   sum d[i][j] x[i][j]
//	s.t.  sum_i x[i][j] = 1                       for every j
//	      sum_j x[i][j] = 1                       for every i
//	      u[i] - u[j] + (n-1) x[i][j] <= n-2      for 1 <= i != j <= n-1
//	      x binary, 0 <= u <= n-1
//
// City 0 is the anchor of the ordering and gets no u variable.
// The diagonal of d is never read.
func BuildMTZ(d [][]float64) (*Formulation, error) {
	n, err := validateMatrix(d)
	if err != nil {
		return nil, err
	}
	f := &Formulation{N: n, Model: lp.NewModel(ModelName)}
	m := f.Model

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if _, err = m.AddVar(d[i][j], 0, 1, lp.Binary, fmt.Sprintf("x_%d_%d", i, j)); err != nil {
				return nil, err
			}
		}
	}
	for i := 1; i < n; i++ {
		if _, err = m.AddVar(0, 0, float64(n-1), lp.Continuous, fmt.Sprintf("u_%d", i)); err != nil {
			return nil, err
		}
	}

	ones := make([]float64, n-1)
	for k := range ones {
		ones[k] = 1
	}
	for j := 0; j < n; j++ {
		ind := make([]int32, 0, n-1)
		for i := 0; i < n; i++ {
			if i != j {
				ind = append(ind, int32(f.Arc(i, j)))
			}
		}
		if err = m.AddConstr(ind, ones, lp.Equal, 1, fmt.Sprintf("in_%d", j)); err != nil {
			return nil, err
		}
	}
	for i := 0; i < n; i++ {
		ind := make([]int32, 0, n-1)
		for j := 0; j < n; j++ {
			if i != j {
				ind = append(ind, int32(f.Arc(i, j)))
			}
		}
		if err = m.AddConstr(ind, ones, lp.Equal, 1, fmt.Sprintf("out_%d", i)); err != nil {
			return nil, err
		}
	}

	big := float64(n - 1)
	for i := 1; i < n; i++ {
		for j := 1; j < n; j++ {
			if i == j {
				continue
			}
			ind := []int32{int32(f.Order(i)), int32(f.Order(j)), int32(f.Arc(i, j))}
			val := []float64{1, -1, big}
			if err = m.AddConstr(ind, val, lp.LessEqual, big-1, fmt.Sprintf("mtz_%d_%d", i, j)); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func validateMatrix(d [][]float64) (int, error) {
	n := len(d)
	if n < 2 {
		return 0, errors.Wrapf(ErrTooFewCities, "n = %d", n)
	}
	for i, row := range d {
		if len(row) != n {
			return 0, errors.Wrapf(ErrNotSquare, "row %d has %d entries, want %d", i, len(row), n)
		}
		for j, v := range row {
			if i != j && (math.IsNaN(v) || math.IsInf(v, 0)) {
				return 0, errors.Wrapf(ErrNotFinite, "d[%d][%d] = %g", i, j, v)
			}
		}
	}
	return n, nil
}
