/* Copyright 2021, Arkadiusz Zarychta */

package lp

import (
	"fmt"
	"time"
)

// Status is the terminal state reported by a solving engine.
type Status int

const (
	NotSolved Status = iota
	Optimal
	Infeasible
	Unbounded
	Undefined
	TimeLimit
	NodeLimit
)

var statusNames = map[Status]string{
	NotSolved:  "Not Solved",
	Optimal:    "Optimal",
	Infeasible: "Infeasible",
	Unbounded:  "Unbounded",
	Undefined:  "Undefined",
	TimeLimit:  "Time Limit",
	NodeLimit:  "Node Limit",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText writes the status name, so documents carry "Optimal" rather than 1.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status name written by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	for st, name := range statusNames {
		if name == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("lp: unknown status %q", string(text))
}

// Result is what an engine returns for a model.
// X is indexed like Model.Vars and is only meaningful when the status is
// Optimal, or when a limit stopped the search after a feasible point was found.
type Result struct {
	Status  Status
	ObjVal  float64
	X       []float64
	Nodes   int
	Runtime time.Duration
}

// Solver is an ILP solving engine. A non-optimal outcome is reported through
// Result.Status; the error is reserved for failures to run the engine at all.
// Implementations must not modify the model.
type Solver interface {
	Solve(m *Model) (*Result, error)
}
