/* Copyright 2021, Arkadiusz Zarychta */

// Package cbc runs the Coin-OR Branch and Cut executable as an lp.Solver.
// The model is handed over as a CPLEX LP file and the answer read back from
// the solution file cbc writes.
package cbc

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"git.solver4all.com/azaryc2s/mtz/lp"
)

// DefaultPath is the executable looked up on PATH when Options.Path is empty.
const DefaultPath = "cbc"

// ErrExecutable is returned when the cbc binary cannot be found or fails.
var ErrExecutable = errors.New("cbc: cannot run executable")

// Options configures how cbc is invoked.
type Options struct {
	Path      string
	TimeLimit time.Duration
	Threads   int
	// KeepFiles leaves model.lp and model.sol in their directory for inspection.
	KeepFiles bool
	TmpDir    string
}

// Solver implements lp.Solver. Each call works in its own temporary
// directory, so one Solver may be used concurrently.
type Solver struct {
	opts Options
}

// New returns a Solver, using DefaultPath when opts.Path is empty.
func New(opts Options) *Solver {
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	return &Solver{opts: opts}
}

// Available reports whether the configured executable can be found.
func (s *Solver) Available() bool {
	_, err := exec.LookPath(s.opts.Path)
	return err == nil
}

// Solve writes m as an LP file, runs cbc on it and reads back the solution.
func (s *Solver) Solve(m *lp.Model) (*lp.Result, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	bin, err := exec.LookPath(s.opts.Path)
	if err != nil {
		return nil, errors.Wrapf(ErrExecutable, "%s: %v", s.opts.Path, err)
	}
	dir, err := os.MkdirTemp(s.opts.TmpDir, "cbc-")
	if err != nil {
		return nil, errors.Wrap(err, "cbc: creating work directory")
	}
	if s.opts.KeepFiles {
		glog.Infof("cbc: keeping files in %s", dir)
	} else {
		defer os.RemoveAll(dir)
	}

	lpFile := filepath.Join(dir, "model.lp")
	solFile := filepath.Join(dir, "model.sol")
	if err = m.Write(lpFile); err != nil {
		return nil, err
	}

	args := s.args(lpFile, solFile)
	glog.V(1).Infof("cbc: %s %v", bin, args)
	start := time.Now()
	out, err := exec.Command(bin, args...).CombinedOutput()
	runtime := time.Since(start)
	glog.V(2).Infof("cbc output:\n%s", out)
	if err != nil {
		return nil, errors.Wrapf(ErrExecutable, "%v: %s", err, tail(out, 512))
	}

	f, err := os.Open(solFile)
	if err != nil {
		return nil, errors.Wrapf(ErrExecutable, "no solution file: %s", tail(out, 512))
	}
	defer f.Close()
	res, err := ReadSolution(f, m)
	if err != nil {
		return nil, err
	}
	res.Runtime = runtime
	glog.V(1).Infof("cbc: %s: %s in %v", m.Name, res.Status, runtime)
	return res, nil
}

func (s *Solver) args(lpFile, solFile string) []string {
	args := []string{lpFile}
	if s.opts.TimeLimit > 0 {
		args = append(args, "-sec", strconv.FormatFloat(s.opts.TimeLimit.Seconds(), 'f', -1, 64))
	}
	if s.opts.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(s.opts.Threads))
	}
	return append(args, "-solve", "-solu", solFile)
}

func tail(b []byte, n int) string {
	if len(b) > n {
		b = b[len(b)-n:]
	}
	return string(b)
}
