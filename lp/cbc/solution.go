/* Copyright 2021, Arkadiusz Zarychta */

package cbc

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"git.solver4all.com/azaryc2s/mtz/lp"
)

// ErrBadSolution is returned when a solution file cannot be understood.
var ErrBadSolution = errors.New("cbc: malformed solution file")

// headerStatus maps the first words of the solution header to a status.
// Longer prefixes come first.
var headerStatus = []struct {
	prefix string
	status lp.Status
}{
	{"optimal", lp.Optimal},
	{"integer infeasible", lp.Infeasible},
	{"infeasible", lp.Infeasible},
	{"unbounded", lp.Unbounded},
	{"stopped on time", lp.TimeLimit},
	{"stopped on nodes", lp.NodeLimit},
	{"stopped", lp.Undefined},
}

// ReadSolution parses a solution written by "cbc ... -solu file".
//
// The header carries the status and the objective value, every following
// line is "index name value reduced-cost", optionally prefixed with "**" for
// values that violate a bound. Columns cbc leaves out are zero. The header
// objective is kept for minimization models.
func ReadSolution(r io.Reader, m *lp.Model) (*lp.Result, error) {
	byName := make(map[string]int, len(m.Vars))
	for j, v := range m.Vars {
		byName[v.Name] = j
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, errors.Wrap(err, "cbc: reading solution")
		}
		return nil, errors.Wrap(ErrBadSolution, "empty file")
	}
	res := &lp.Result{}
	res.Status, res.ObjVal = parseHeader(sc.Text())

	x := make([]float64, len(m.Vars))
	rows := 0
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(sc.Text()), "**"))
		if line == "" {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 3 {
			return nil, errors.Wrapf(ErrBadSolution, "line %q", line)
		}
		j, ok := byName[f[1]]
		if !ok {
			return nil, errors.Wrapf(ErrBadSolution, "unknown column %s", f[1])
		}
		v, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return nil, errors.Wrapf(ErrBadSolution, "column %s: %v", f[1], err)
		}
		x[j] = v
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "cbc: reading solution")
	}

	switch res.Status {
	case lp.Optimal, lp.TimeLimit, lp.NodeLimit, lp.Undefined:
		if rows > 0 {
			res.X = x
			// cbc reports a maximization objective negated
			if m.Sense == lp.Maximize {
				res.ObjVal = m.ObjValue(x)
			}
		}
	}
	return res, nil
}

func parseHeader(line string) (lp.Status, float64) {
	lower := strings.ToLower(strings.TrimSpace(line))
	status := lp.Undefined
	for _, h := range headerStatus {
		if strings.HasPrefix(lower, h.prefix) {
			status = h.status
			break
		}
	}
	obj := 0.0
	if i := strings.Index(lower, "objective value"); i >= 0 {
		if f := strings.Fields(lower[i+len("objective value"):]); len(f) > 0 {
			if v, err := strconv.ParseFloat(f[0], 64); err == nil {
				obj = v
			}
		}
	}
	return status, obj
}
