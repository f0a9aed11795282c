/* Copyright 2021, Arkadiusz Zarychta */

// Package config reads the solver configuration and builds the engine it names.
package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"git.solver4all.com/azaryc2s/mtz/lp"
	"git.solver4all.com/azaryc2s/mtz/lp/cbc"
	"git.solver4all.com/azaryc2s/mtz/lp/simplex"
)

const (
	BackendSimplex = "simplex"
	BackendCBC     = "cbc"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Backend    string  `json:"backend"`
	TimeLimitS float64 `json:"time_limit_s"`
	NodeLimit  int     `json:"node_limit"`
	IntTol     float64 `json:"int_tol"`
	CBC        CBC     `json:"cbc"`
}

type CBC struct {
	Path      string `json:"path"`
	Threads   int    `json:"threads"`
	KeepFiles bool   `json:"keep_files"`
	TmpDir    string `json:"tmp_dir"`
}

// Default is the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads a JSON configuration and fills in defaults for missing keys.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: reading")
	}
	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, errors.Wrapf(err, "config: parsing %s", path)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendSimplex
	}
	if c.IntTol <= 0 {
		c.IntTol = simplex.DefaultIntTol
	}
	if c.CBC.Path == "" {
		c.CBC.Path = cbc.DefaultPath
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendSimplex, BackendCBC:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown backend %q", c.Backend)
	}
	if c.TimeLimitS < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative time limit %g", c.TimeLimitS)
	}
	if c.NodeLimit < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative node limit %d", c.NodeLimit)
	}
	if c.IntTol >= 0.5 {
		return errors.Wrapf(ErrInvalidConfig, "integrality tolerance %g", c.IntTol)
	}
	if c.CBC.Threads < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative thread count %d", c.CBC.Threads)
	}
	return nil
}

// TimeLimit returns TimeLimitS as a duration; zero means no limit.
func (c *Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitS * float64(time.Second))
}

// NewSolver builds the configured engine.
func (c *Config) NewSolver() (lp.Solver, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Backend == BackendCBC {
		return cbc.New(cbc.Options{
			Path:      c.CBC.Path,
			TimeLimit: c.TimeLimit(),
			Threads:   c.CBC.Threads,
			KeepFiles: c.CBC.KeepFiles,
			TmpDir:    c.CBC.TmpDir,
		}), nil
	}
	return simplex.New(simplex.Options{
		TimeLimit: c.TimeLimit(),
		NodeLimit: c.NodeLimit,
		IntTol:    c.IntTol,
	}), nil
}
