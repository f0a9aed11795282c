package lp_test

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"git.solver4all.com/azaryc2s/mtz/lp"
)

func smallModel(t *testing.T) *lp.Model {
	m := lp.NewModel("small")
	x, err := m.AddVar(3, 0, 1, lp.Binary, "x")
	require.NoError(t, err)
	y, err := m.AddVar(-2, 0, 4, lp.Integer, "y")
	require.NoError(t, err)
	z, err := m.AddVar(1, -1, math.Inf(1), lp.Continuous, "z")
	require.NoError(t, err)
	require.NoError(t, m.AddConstr([]int32{int32(x), int32(y)}, []float64{1, 1}, lp.LessEqual, 3, "cap"))
	require.NoError(t, m.AddConstr([]int32{int32(y), int32(z)}, []float64{2, -1}, lp.GreaterEqual, 0, "link"))
	require.NoError(t, m.AddConstr([]int32{int32(x)}, []float64{1}, lp.Equal, 1, "fix"))
	return m
}

func TestAddVar(t *testing.T) {
	m := lp.NewModel("vars")
	idx, err := m.AddVar(1, -5, 7, lp.Binary, "b")
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Equal(t, 0.0, m.Vars[0].Lower, "binary lower bound is clamped")
	require.Equal(t, 1.0, m.Vars[0].Upper, "binary upper bound is clamped")

	_, err = m.AddVar(1, 2, 1, lp.Continuous, "bad")
	require.True(t, errors.Is(err, lp.ErrBadBounds))

	_, err = m.AddVar(math.NaN(), 0, 1, lp.Continuous, "nan")
	require.True(t, errors.Is(err, lp.ErrBadCoefficient))
	require.Equal(t, 1, m.NumVars())
}

func TestAddConstr_Errors(t *testing.T) {
	cases := []struct {
		name  string
		ind   []int32
		val   []float64
		sense lp.Sense
		rhs   float64
		err   error
	}{
		{"LengthMismatch", []int32{0}, []float64{1, 2}, lp.Equal, 1, lp.ErrInvalidModel},
		{"UnknownVar", []int32{3}, []float64{1}, lp.Equal, 1, lp.ErrIndexOutOfRange},
		{"NegativeIndex", []int32{-1}, []float64{1}, lp.Equal, 1, lp.ErrIndexOutOfRange},
		{"BadSense", []int32{0}, []float64{1}, lp.Sense('!'), 1, lp.ErrInvalidModel},
		{"InfRHS", []int32{0}, []float64{1}, lp.LessEqual, math.Inf(1), lp.ErrBadCoefficient},
		{"NaNCoef", []int32{0}, []float64{math.NaN()}, lp.LessEqual, 1, lp.ErrBadCoefficient},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := lp.NewModel("c")
			_, err := m.AddVar(0, 0, 1, lp.Continuous, "x")
			require.NoError(t, err)
			err = m.AddConstr(tc.ind, tc.val, tc.sense, tc.rhs, "c")
			require.Truef(t, errors.Is(err, tc.err), "got %v, want %v", err, tc.err)
			require.Equal(t, 0, m.NumConstrs())
		})
	}
}

func TestValidate(t *testing.T) {
	m := smallModel(t)
	require.NoError(t, m.Validate())
	require.True(t, m.IsMIP())

	m.Vars = append(m.Vars, lp.Var{Name: "x", Upper: 1})
	require.True(t, errors.Is(m.Validate(), lp.ErrDuplicateName))

	m = smallModel(t)
	m.Constrs = append(m.Constrs, m.Constrs[0])
	require.True(t, errors.Is(m.Validate(), lp.ErrDuplicateName))

	m = smallModel(t)
	m.Vars[1].Lower, m.Vars[1].Upper = 5, 4
	require.True(t, errors.Is(m.Validate(), lp.ErrBadBounds))

	m = smallModel(t)
	m.Sense = 0
	require.True(t, errors.Is(m.Validate(), lp.ErrInvalidModel))
}

func TestObjValue(t *testing.T) {
	m := smallModel(t)
	require.InDelta(t, 3*1-2*2+1*0.5, m.ObjValue([]float64{1, 2, 0.5}), 1e-12)
}

func TestWriteLP(t *testing.T) {
	m := smallModel(t)
	m.SetObjSense(lp.Maximize)
	var buf bytes.Buffer
	require.NoError(t, lp.WriteLP(&buf, m))
	out := buf.String()

	require.Contains(t, out, "Maximize\n obj: 3 x - 2 y + z\n")
	require.Contains(t, out, " cap: x + y <= 3\n")
	require.Contains(t, out, " link: 2 y - z >= 0\n")
	require.Contains(t, out, " fix: x = 1\n")
	require.Contains(t, out, "Bounds\n 0 <= y <= 4\n z >= -1\n")
	require.Contains(t, out, "Generals\n y\n")
	require.Contains(t, out, "Binaries\n x\n")
	require.True(t, strings.HasSuffix(out, "End\n"))
}

func TestWriteLP_LongRowsAreWrapped(t *testing.T) {
	m := lp.NewModel("wide")
	var ind []int32
	var val []float64
	for j := 0; j < 20; j++ {
		idx, err := m.AddVar(1, 0, 1, lp.Binary, "v"+strings.Repeat("a", j%3)+string(rune('a'+j)))
		require.NoError(t, err)
		ind = append(ind, int32(idx))
		val = append(val, 1)
	}
	require.NoError(t, m.AddConstr(ind, val, lp.Equal, 1, "one"))

	var buf bytes.Buffer
	require.NoError(t, lp.WriteLP(&buf, m))
	for _, line := range strings.Split(buf.String(), "\n") {
		require.Less(t, len(line), 255)
	}
}

func TestStatusJSON(t *testing.T) {
	doc := struct {
		Status lp.Status `json:"status"`
	}{lp.TimeLimit}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"Time Limit"}`, string(raw))

	var back struct {
		Status lp.Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, lp.TimeLimit, back.Status)
	require.Error(t, json.Unmarshal([]byte(`{"status":"Bogus"}`), &back))
	require.Equal(t, "Status(42)", lp.Status(42).String())
}
