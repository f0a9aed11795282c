package cbc

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"git.solver4all.com/azaryc2s/mtz/lp"
)

func threeVars(t *testing.T) *lp.Model {
	m := lp.NewModel("three")
	for _, name := range []string{"x_0_1", "x_1_0", "u_1"} {
		_, err := m.AddVar(1, 0, 1, lp.Binary, name)
		require.NoError(t, err)
	}
	return m
}

func TestReadSolution(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		status lp.Status
		x      []float64
		obj    float64
	}{
		{
			name:   "Optimal",
			input:  "Optimal - objective value 2.00000000\n      0 x_0_1   1   1\n      1 x_1_0   0.9999999   1\n",
			status: lp.Optimal,
			x:      []float64{1, 0.9999999, 0},
			obj:    2,
		},
		{
			name:   "BoundViolationMarker",
			input:  "Optimal - objective value 1\n**    2 u_1   1.0000001   0\n",
			status: lp.Optimal,
			x:      []float64{0, 0, 1.0000001},
			obj:    1,
		},
		{
			name:   "Infeasible",
			input:  "Infeasible - objective value 0.00000000\n",
			status: lp.Infeasible,
		},
		{
			name:   "IntegerInfeasible",
			input:  "Integer infeasible - objective value 0.00000000\n      0 x_0_1   0.5   0\n",
			status: lp.Infeasible,
		},
		{
			name:   "Unbounded",
			input:  "Unbounded - objective value -1e+50\n",
			status: lp.Unbounded,
		},
		{
			name:   "StoppedOnTime",
			input:  "Stopped on time - objective value 1.00000000\n      1 x_1_0   1   0\n",
			status: lp.TimeLimit,
			x:      []float64{0, 1, 0},
			obj:    1,
		},
		{
			name:   "StoppedOnNodesWithoutSolution",
			input:  "Stopped on nodes - objective value 1e+50\n",
			status: lp.NodeLimit,
			obj:    1e50,
		},
		{
			name:   "Gibberish",
			input:  "Something unexpected\n",
			status: lp.Undefined,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ReadSolution(strings.NewReader(tc.input), threeVars(t))
			require.NoError(t, err)
			require.Equal(t, tc.status, res.Status)
			require.Equal(t, tc.x, res.X)
			if tc.x != nil || tc.obj != 0 {
				require.InDelta(t, tc.obj, res.ObjVal, 1e-9)
			}
		})
	}
}

func TestReadSolution_Maximize(t *testing.T) {
	m := threeVars(t)
	m.SetObjSense(lp.Maximize)
	res, err := ReadSolution(strings.NewReader("Optimal - objective value -2.00000000\n      0 x_0_1   1   1\n      2 u_1   1   1\n"), m)
	require.NoError(t, err)
	require.Equal(t, lp.Optimal, res.Status)
	require.InDelta(t, 2, res.ObjVal, 1e-9)
}

func TestReadSolution_Malformed(t *testing.T) {
	for name, input := range map[string]string{
		"Empty":         "",
		"UnknownColumn": "Optimal - objective value 1\n 0 y 1 0\n",
		"ShortLine":     "Optimal - objective value 1\n 0 x_0_1\n",
		"BadNumber":     "Optimal - objective value 1\n 0 x_0_1 one 0\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadSolution(strings.NewReader(input), threeVars(t))
			require.True(t, errors.Is(err, ErrBadSolution), "got %v", err)
		})
	}
}

func TestArgs(t *testing.T) {
	s := New(Options{})
	require.Equal(t, DefaultPath, s.opts.Path)
	require.Equal(t, []string{"a.lp", "-solve", "-solu", "a.sol"}, s.args("a.lp", "a.sol"))

	s = New(Options{Path: "/opt/cbc", TimeLimit: 1500 * time.Millisecond, Threads: 4})
	require.Equal(t,
		[]string{"a.lp", "-sec", "1.5", "-threads", "4", "-solve", "-solu", "a.sol"},
		s.args("a.lp", "a.sol"))
}

func TestSolve_MissingExecutable(t *testing.T) {
	s := New(Options{Path: "definitely-not-a-cbc-binary"})
	require.False(t, s.Available())
	_, err := s.Solve(threeVars(t))
	require.True(t, errors.Is(err, ErrExecutable))
}

func TestSolve_Integration(t *testing.T) {
	s := New(Options{TmpDir: t.TempDir()})
	if !s.Available() {
		t.Skip("cbc not on PATH")
	}
	m := lp.NewModel("knap")
	m.SetObjSense(lp.Maximize)
	x, err := m.AddVar(5, 0, math.Inf(1), lp.Integer, "x")
	require.NoError(t, err)
	y, err := m.AddVar(4, 0, math.Inf(1), lp.Integer, "y")
	require.NoError(t, err)
	require.NoError(t, m.AddConstr([]int32{int32(x), int32(y)}, []float64{6, 4}, lp.LessEqual, 24, "c1"))
	require.NoError(t, m.AddConstr([]int32{int32(x), int32(y)}, []float64{1, 2}, lp.LessEqual, 6, "c2"))

	res, err := s.Solve(m)
	require.NoError(t, err)
	require.Equal(t, lp.Optimal, res.Status)
	require.InDelta(t, 20, res.ObjVal, 1e-6)
}
