package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"git.solver4all.com/azaryc2s/mtz/config"
	"git.solver4all.com/azaryc2s/mtz/lp/cbc"
	"git.solver4all.com/azaryc2s/mtz/lp/simplex"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "solver.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c := config.Default()
	require.Equal(t, config.BackendSimplex, c.Backend)
	require.Equal(t, simplex.DefaultIntTol, c.IntTol)
	require.Equal(t, cbc.DefaultPath, c.CBC.Path)
	require.Zero(t, c.TimeLimit())
	require.NoError(t, c.Validate())

	s, err := c.NewSolver()
	require.NoError(t, err)
	require.IsType(t, &simplex.Solver{}, s)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"backend": "cbc",
		"time_limit_s": 2.5,
		"cbc": {"path": "/usr/local/bin/cbc", "threads": 2, "keep_files": true}
	}`)
	c, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.BackendCBC, c.Backend)
	require.Equal(t, 2500*time.Millisecond, c.TimeLimit())
	require.Equal(t, "/usr/local/bin/cbc", c.CBC.Path)
	require.Equal(t, 2, c.CBC.Threads)
	require.True(t, c.CBC.KeepFiles)
	require.Equal(t, simplex.DefaultIntTol, c.IntTol, "missing keys get defaults")

	s, err := c.NewSolver()
	require.NoError(t, err)
	require.IsType(t, &cbc.Solver{}, s)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	_, err = config.Load(writeConfig(t, `{"backend": `))
	require.Error(t, err)

	for name, body := range map[string]string{
		"Backend":   `{"backend": "gurobi"}`,
		"TimeLimit": `{"time_limit_s": -1}`,
		"NodeLimit": `{"node_limit": -3}`,
		"IntTol":    `{"int_tol": 0.5}`,
		"Threads":   `{"cbc": {"threads": -1}}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, body))
			require.True(t, errors.Is(err, config.ErrInvalidConfig), "got %v", err)
		})
	}
}
