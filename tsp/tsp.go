/* Copyright 2021, Arkadiusz Zarychta */

// Package tsp solves the travelling salesman problem as an integer linear
// program in the Miller-Tucker-Zemlin formulation.
//
// BuildMTZ turns a distance matrix into an lp.Model, any lp.Solver solves it
// and Extract reads the tour back:
//
//	res, err := tsp.Solve(d, simplex.New(simplex.Options{}))
//
// A non-optimal solver outcome is not an error: Result.Status carries it and
// Result.Tour stays empty.
package tsp

import (
	"math"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"git.solver4all.com/azaryc2s/mtz/lp"
)

// Result is the outcome of one solve. Tour and TotalCost are only set when
// Status is lp.Optimal. Tour lists the arcs in the order of their variables,
// not in travel order.
type Result struct {
	Status    lp.Status
	Tour      []Edge
	TotalCost float64
	Nodes     int
	Runtime   time.Duration
}

// Extract reads the tour out of a solver answer for f.
// TotalCost is the objective value the solver reported.
func Extract(f *Formulation, sol *lp.Result) (*Result, error) {
	if sol == nil {
		return nil, errors.New("tsp: no solver result")
	}
	res := &Result{Status: sol.Status, Nodes: sol.Nodes, Runtime: sol.Runtime}
	if sol.Status != lp.Optimal {
		return res, nil
	}
	if len(sol.X) != f.Model.NumVars() {
		return nil, errors.Wrapf(ErrExtractionInconsistency, "%d values for %d variables", len(sol.X), f.Model.NumVars())
	}

	tour := make([]Edge, 0, f.N)
	for i := 0; i < f.N; i++ {
		for j := 0; j < f.N; j++ {
			if i != j && math.Round(sol.X[f.Arc(i, j)]) == 1 {
				tour = append(tour, Edge{From: i, To: j})
			}
		}
	}
	if err := ValidateEdges(tour, f.N); err != nil {
		return nil, errors.WithMessage(ErrExtractionInconsistency, err.Error())
	}
	res.Tour = tour
	res.TotalCost = sol.ObjVal
	return res, nil
}

// Solve builds the MTZ model of d, hands it to solver and extracts the tour.
// Independent calls share nothing and may run concurrently as long as the
// solver allows it.
func Solve(d [][]float64, solver lp.Solver) (*Result, error) {
	f, err := BuildMTZ(d)
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("tsp: n = %d, %d variables, %d constraints", f.N, f.Model.NumVars(), f.Model.NumConstrs())
	sol, err := solver.Solve(f.Model)
	if err != nil {
		return nil, errors.Wrap(err, "tsp: solving MTZ model")
	}
	return Extract(f, sol)
}
