/* Copyright 2021, Arkadiusz Zarychta */

// Package simplex is an in-process lp.Solver. Continuous relaxations are
// solved with gonum's simplex method and integrality is enforced by a depth
// first branch-and-bound.
package simplex

import (
	"math"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"git.solver4all.com/azaryc2s/mtz/lp"
)

// ErrFreeVariable is returned for variables without a finite lower bound.
var ErrFreeVariable = errors.New("simplex: variable has no finite lower bound")

const (
	DefaultIntTol = 1e-6
	DefaultTol    = 1e-10
)

// Options tune the search. Zero limits mean no limit.
type Options struct {
	TimeLimit time.Duration
	NodeLimit int
	IntTol    float64
	Tol       float64
}

// Solver implements lp.Solver. It keeps no state between calls and can be
// shared by concurrent goroutines.
type Solver struct {
	opts Options
}

// New returns a Solver, filling unset tolerances with defaults.
func New(opts Options) *Solver {
	if opts.IntTol <= 0 {
		opts.IntTol = DefaultIntTol
	}
	if opts.Tol <= 0 {
		opts.Tol = DefaultTol
	}
	return &Solver{opts: opts}
}

type node struct {
	lb, ub []float64
	depth  int
}

// Solve runs branch-and-bound on m.
func (s *Solver) Solve(m *lp.Model) (*lp.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	nv := len(m.Vars)
	sign := float64(m.Sense)
	cost := make([]float64, nv)
	lb := make([]float64, nv)
	ub := make([]float64, nv)
	for j, v := range m.Vars {
		cost[j] = sign * v.Obj
		lb[j], ub[j] = v.Lower, v.Upper
		if v.Type != lp.Continuous {
			lb[j] = math.Ceil(lb[j] - s.opts.IntTol)
			ub[j] = math.Floor(ub[j] + s.opts.IntTol)
			if lb[j] > ub[j] {
				glog.V(1).Infof("simplex: %s: integer variable %s has an empty domain", m.Name, v.Name)
				return &lp.Result{Status: lp.Infeasible, Runtime: time.Since(start)}, nil
			}
		}
	}

	var (
		bestX   []float64
		bestObj = math.Inf(1)
		nodes   int
		stack   = []node{{lb: lb, ub: ub}}
	)
	finish := func(st lp.Status) *lp.Result {
		res := &lp.Result{Status: st, Nodes: nodes, Runtime: time.Since(start)}
		if bestX != nil && st != lp.Unbounded && st != lp.Infeasible {
			res.X = bestX
			res.ObjVal = m.ObjValue(bestX)
		}
		glog.V(1).Infof("simplex: %s: %s after %d nodes in %v", m.Name, st, nodes, res.Runtime)
		return res
	}

	for len(stack) > 0 {
		if s.opts.TimeLimit > 0 && time.Since(start) >= s.opts.TimeLimit {
			return finish(lp.TimeLimit), nil
		}
		if s.opts.NodeLimit > 0 && nodes >= s.opts.NodeLimit {
			return finish(lp.NodeLimit), nil
		}
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nodes++

		rel, err := relax(m, cost, nd.lb, nd.ub, s.opts.Tol)
		if err != nil {
			return nil, err
		}
		switch rel.status {
		case lp.Infeasible:
			glog.V(2).Infof("simplex: node %d (depth %d) infeasible", nodes, nd.depth)
			continue
		case lp.Unbounded:
			// children only shrink the box, so an unbounded node means an
			// unbounded root
			return finish(lp.Unbounded), nil
		}
		if bestX != nil && rel.obj >= bestObj-1e-9*math.Max(1, math.Abs(bestObj)) {
			glog.V(2).Infof("simplex: node %d (depth %d) pruned at %g", nodes, nd.depth, rel.obj)
			continue
		}

		branch, dist := -1, s.opts.IntTol
		for j, v := range m.Vars {
			if v.Type == lp.Continuous {
				continue
			}
			f := rel.x[j] - math.Floor(rel.x[j])
			if d := math.Min(f, 1-f); d > dist {
				branch, dist = j, d
			}
		}
		if branch < 0 {
			x := rel.x
			for j, v := range m.Vars {
				if v.Type != lp.Continuous {
					x[j] = math.Round(x[j])
				}
			}
			bestX, bestObj = x, rel.obj
			glog.V(2).Infof("simplex: node %d (depth %d) new incumbent %g", nodes, nd.depth, bestObj)
			continue
		}

		val := rel.x[branch]
		down := node{lb: nd.lb, ub: clone(nd.ub), depth: nd.depth + 1}
		down.ub[branch] = math.Floor(val)
		up := node{lb: clone(nd.lb), ub: nd.ub, depth: nd.depth + 1}
		up.lb[branch] = math.Ceil(val)
		glog.V(2).Infof("simplex: node %d (depth %d) obj %g branches on %s = %g",
			nodes, nd.depth, rel.obj, m.Vars[branch].Name, val)
		stack = append(stack, down, up)
	}

	if bestX == nil {
		return finish(lp.Infeasible), nil
	}
	return finish(lp.Optimal), nil
}

func clone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
