/* Copyright 2021, Arkadiusz Zarychta */

package simplex

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	golp "gonum.org/v1/gonum/optimize/convex/lp"

	"git.solver4all.com/azaryc2s/mtz/lp"
)

const (
	fixedTol = 1e-12
	pivotTol = 1e-9
	feasTol  = 1e-7
)

// relaxation is the outcome of one LP relaxation. obj is in minimization
// sense and includes the constant contributed by lower bounds.
type relaxation struct {
	status lp.Status
	obj    float64
	x      []float64
}

type row struct {
	coef  []float64
	sense lp.Sense
	rhs   float64
}

// relax solves the continuous relaxation of m over the box [lb, ub] with the
// minimization cost vector cost.
//
// gonum works on the standard form Ax = b, x >= 0 and wants A to have full row
// rank without zero rows or columns, so the node problem is reduced first:
// fixed variables are substituted, the remaining ones shifted to a zero lower
// bound, dependent equality rows dropped and empty columns resolved.
func relax(m *lp.Model, cost, lb, ub []float64, tol float64) (relaxation, error) {
	nv := len(m.Vars)
	col := make([]int, nv)
	nc := 0
	constObj := 0.0
	for j := 0; j < nv; j++ {
		if math.IsInf(lb[j], -1) {
			return relaxation{}, errors.Wrapf(ErrFreeVariable, "variable %s", m.Vars[j].Name)
		}
		constObj += cost[j] * lb[j]
		if ub[j]-lb[j] <= fixedTol {
			col[j] = -1
			continue
		}
		col[j] = nc
		nc++
	}

	var eqs, ineqs []row
	for ci := range m.Constrs {
		c := &m.Constrs[ci]
		r := row{coef: make([]float64, nc), sense: c.Sense, rhs: c.RHS}
		for k, idx := range c.Ind {
			r.rhs -= c.Val[k] * lb[idx]
			if col[idx] >= 0 {
				r.coef[col[idx]] += c.Val[k]
			}
		}
		if isZero(r.coef) {
			if !emptyRowFeasible(r) {
				return relaxation{status: lp.Infeasible}, nil
			}
			continue
		}
		if r.sense == lp.Equal {
			eqs = append(eqs, r)
		} else {
			ineqs = append(ineqs, r)
		}
	}

	eqs, ok := independentRows(eqs)
	if !ok {
		return relaxation{status: lp.Infeasible}, nil
	}

	for j := 0; j < nv; j++ {
		if col[j] >= 0 && !math.IsInf(ub[j], 1) {
			r := row{coef: make([]float64, nc), sense: lp.LessEqual, rhs: ub[j] - lb[j]}
			r.coef[col[j]] = 1
			ineqs = append(ineqs, r)
		}
	}

	// columns without any entry sit at their lower bound unless they improve
	// the objective forever
	used := make([]bool, nc)
	for _, rows := range [][]row{eqs, ineqs} {
		for _, r := range rows {
			for k, v := range r.coef {
				if v != 0 {
					used[k] = true
				}
			}
		}
	}
	keep := make([]int, nc)
	nk := 0
	for j := 0; j < nv; j++ {
		k := col[j]
		if k < 0 {
			continue
		}
		if !used[k] {
			if cost[j] < 0 {
				return relaxation{status: lp.Unbounded}, nil
			}
			keep[k] = -1
			continue
		}
		keep[k] = nk
		nk++
	}

	x := make([]float64, nv)
	copy(x, lb)
	rows := append(eqs, ineqs...)
	if len(rows) == 0 {
		return relaxation{status: lp.Optimal, obj: constObj, x: x}, nil
	}

	ncols := nk + len(ineqs)
	A := mat.NewDense(len(rows), ncols, nil)
	b := make([]float64, len(rows))
	c := make([]float64, ncols)
	for j := 0; j < nv; j++ {
		if col[j] >= 0 && keep[col[j]] >= 0 {
			c[keep[col[j]]] = cost[j]
		}
	}
	for i, r := range rows {
		for k, v := range r.coef {
			if v != 0 {
				A.Set(i, keep[k], v)
			}
		}
		b[i] = r.rhs
		if i >= len(eqs) {
			slack := nk + i - len(eqs)
			if r.sense == lp.LessEqual {
				A.Set(i, slack, 1)
			} else {
				A.Set(i, slack, -1)
			}
		}
	}

	xs, status, err := standardForm(c, A, b, tol)
	if err != nil || status != lp.Optimal {
		return relaxation{status: status}, err
	}
	obj := constObj
	for j := 0; j < nv; j++ {
		if col[j] < 0 || keep[col[j]] < 0 {
			continue
		}
		v := lb[j] + xs[keep[col[j]]]
		if v > ub[j] {
			v = ub[j]
		}
		if v < lb[j] {
			v = lb[j]
		}
		x[j] = v
		obj += cost[j] * (v - lb[j])
	}
	return relaxation{status: lp.Optimal, obj: obj, x: x}, nil
}

// standardForm minimizes c'x subject to Ax = b, x >= 0.
func standardForm(c []float64, A *mat.Dense, b []float64, tol float64) (x []float64, status lp.Status, err error) {
	rows, cols := A.Dims()
	if rows == cols {
		// gonum answers a square system with a plain solve and an exact sign
		// check, which is too strict for values like -1e-17
		xv := mat.NewVecDense(cols, nil)
		if err := xv.SolveVec(A, mat.NewVecDense(rows, b)); err != nil {
			// a finite condition number still comes with a solution
			cond, ok := err.(mat.Condition)
			if !ok || math.IsInf(float64(cond), 1) || !solves(A, xv, b) {
				return nil, lp.Infeasible, nil
			}
		}
		x = xv.RawVector().Data
		for i, v := range x {
			if v < -feasTol {
				return nil, lp.Infeasible, nil
			}
			if v < 0 {
				x[i] = 0
			}
		}
		return x, lp.Optimal, nil
	}

	// Bland's rule may stall on degenerate vertices, retry with looser tolerances
	for _, t := range []float64{tol, 1e-8, 1e-6} {
		x, status, err = callSimplex(c, A, b, t)
		if !errors.Is(err, golp.ErrBland) && !errors.Is(err, golp.ErrLinSolve) {
			break
		}
	}
	return x, status, err
}

// solves reports whether x satisfies Ax = b within feasTol.
func solves(A *mat.Dense, x *mat.VecDense, b []float64) bool {
	rows, _ := A.Dims()
	var ax mat.VecDense
	ax.MulVec(A, x)
	for i := 0; i < rows; i++ {
		if math.Abs(ax.AtVec(i)-b[i]) > feasTol*math.Max(1, math.Abs(b[i])) {
			return false
		}
	}
	return true
}

func callSimplex(c []float64, A *mat.Dense, b []float64, tol float64) (x []float64, status lp.Status, err error) {
	defer func() {
		if r := recover(); r != nil {
			x, status, err = nil, lp.Undefined, errors.Errorf("simplex: gonum panic: %v", r)
		}
	}()
	_, x, err = golp.Simplex(c, A, b, tol, nil)
	switch {
	case err == nil:
		for i, v := range x {
			if v < 0 {
				x[i] = 0
			}
		}
		return x, lp.Optimal, nil
	case errors.Is(err, golp.ErrInfeasible):
		return nil, lp.Infeasible, nil
	case errors.Is(err, golp.ErrUnbounded):
		return nil, lp.Unbounded, nil
	}
	return nil, lp.Undefined, errors.Wrap(err, "simplex: relaxation")
}

// independentRows drops equality rows that are linear combinations of earlier
// ones. It reports false when a dependent row contradicts the others.
func independentRows(eqs []row) ([]row, bool) {
	type pivotRow struct {
		coef  []float64
		rhs   float64
		pivot int
	}
	var basis []pivotRow
	kept := eqs[:0:0]
	for _, r := range eqs {
		red := make([]float64, len(r.coef))
		copy(red, r.coef)
		rhs := r.rhs
		for _, p := range basis {
			f := red[p.pivot]
			if f == 0 {
				continue
			}
			for k, v := range p.coef {
				red[k] -= f * v
			}
			rhs -= f * p.rhs
		}
		piv, best := -1, pivotTol
		for k, v := range red {
			if math.Abs(v) > best {
				piv, best = k, math.Abs(v)
			}
		}
		if piv < 0 {
			if math.Abs(rhs) > feasTol*math.Max(1, math.Abs(r.rhs)) {
				return nil, false
			}
			continue
		}
		inv := 1 / red[piv]
		for k := range red {
			red[k] *= inv
		}
		basis = append(basis, pivotRow{coef: red, rhs: rhs * inv, pivot: piv})
		kept = append(kept, r)
	}
	return kept, true
}

func emptyRowFeasible(r row) bool {
	switch r.sense {
	case lp.LessEqual:
		return r.rhs >= -feasTol
	case lp.GreaterEqual:
		return r.rhs <= feasTol
	}
	return math.Abs(r.rhs) <= feasTol
}

func isZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
