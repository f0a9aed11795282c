package simplex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"git.solver4all.com/azaryc2s/mtz/lp"
)

func TestStandardForm_Square(t *testing.T) {
	eps := math.Nextafter(1, 2) - 1
	cases := []struct {
		name   string
		a      []float64
		b      []float64
		status lp.Status
		x      []float64
	}{
		{"Regular", []float64{1, 1, 1, -1}, []float64{1, 0}, lp.Optimal, []float64{0.5, 0.5}},
		{"IllConditioned", []float64{1, 1, 1, 1 + eps}, []float64{2, 2}, lp.Optimal, []float64{2, 0}},
		{"Singular", []float64{1, 1, 1, 1}, []float64{1, 2}, lp.Infeasible, nil},
		{"Negative", []float64{1, 0, 0, 1}, []float64{1, -1}, lp.Infeasible, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			x, status, err := standardForm([]float64{1, 1}, mat.NewDense(2, 2, tc.a), tc.b, DefaultTol)
			require.NoError(t, err)
			require.Equal(t, tc.status, status)
			if tc.x == nil {
				require.Nil(t, x)
				return
			}
			require.InDeltaSlice(t, tc.x, x, 1e-9)
		})
	}
}
