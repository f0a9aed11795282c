package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.solver4all.com/azaryc2s/mtz/lp"
	"git.solver4all.com/azaryc2s/mtz/lp/simplex"
	"git.solver4all.com/azaryc2s/mtz/tsp"
)

type fixedSolver lp.Result

func (f *fixedSolver) Solve(*lp.Model) (*lp.Result, error) {
	res := lp.Result(*f)
	return &res, nil
}

func TestSolveInstance_Optimal(t *testing.T) {
	d := [][]float64{
		{0, 10, 15, 20},
		{10, 0, 35, 25},
		{15, 35, 0, 30},
		{20, 25, 30, 0},
	}
	sol, err := solveInstance(d, simplex.New(simplex.Options{}))
	require.NoError(t, err)
	require.True(t, sol.Optimal)
	require.Equal(t, "Optimal", sol.Status)
	require.InDelta(t, 80, sol.Obj, 1e-6)
	require.InDelta(t, 80, sol.RouteCost, 1e-9)
	require.NoError(t, tsp.ValidateEdges(sol.Tour, 4))
	require.Empty(t, sol.Comment)
	require.NotEmpty(t, sol.Time)
}

func TestSolveInstance_NonOptimal(t *testing.T) {
	d := [][]float64{{0, 1}, {1, 0}}
	for st, comment := range map[lp.Status]string{
		lp.TimeLimit:  "Time limit reached",
		lp.NodeLimit:  "Node limit reached",
		lp.Infeasible: "Model is Infeasible",
	} {
		sol, err := solveInstance(d, &fixedSolver{Status: st, Nodes: 3})
		require.NoError(t, err)
		require.False(t, sol.Optimal)
		require.Equal(t, st.String(), sol.Status)
		require.Equal(t, comment, sol.Comment)
		require.Equal(t, 3, sol.Nodes)
		require.Empty(t, sol.Tour)
	}
}

func TestSolveInstance_ObjectiveMismatch(t *testing.T) {
	d := [][]float64{{0, 1}, {1, 0}}
	sol, err := solveInstance(d, &fixedSolver{Status: lp.Optimal, ObjVal: 5, X: []float64{1, 1, 0}})
	require.NoError(t, err)
	require.True(t, sol.Optimal)
	require.Equal(t, 5.0, sol.Obj)
	require.Equal(t, 2.0, sol.RouteCost)
	require.Contains(t, sol.Comment, "differs")
}
