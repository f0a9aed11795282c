/* Copyright 2021, Arkadiusz Zarychta */

// Package lp holds a solver-neutral description of a mixed integer linear
// program and the contract every solving engine implements.
//
// A Model is built once with AddVar/AddConstr, handed to a Solver, and read
// back through the returned Result. Engines never modify the model.
package lp

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// VarType is the domain of a decision variable.
type VarType int8

const (
	Continuous VarType = iota
	Binary
	Integer
)

func (t VarType) String() string {
	switch t {
	case Continuous:
		return "C"
	case Binary:
		return "B"
	case Integer:
		return "I"
	}
	return fmt.Sprintf("VarType(%d)", int8(t))
}

// Sense is the comparison operator of a linear constraint.
type Sense int8

const (
	LessEqual    Sense = '<'
	GreaterEqual Sense = '>'
	Equal        Sense = '='
)

func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case GreaterEqual:
		return ">="
	case Equal:
		return "="
	}
	return fmt.Sprintf("Sense(%d)", int8(s))
}

// ObjSense is the optimization direction of the objective.
type ObjSense int8

const (
	Minimize ObjSense = 1
	Maximize ObjSense = -1
)

// Var is a single decision variable.
type Var struct {
	Name  string
	Type  VarType
	Lower float64
	Upper float64
	Obj   float64
}

// Constr is a linear constraint sum(Val[k] * x[Ind[k]]) Sense RHS.
type Constr struct {
	Name  string
	Ind   []int32
	Val   []float64
	Sense Sense
	RHS   float64
}

// Model is a linear objective over Vars subject to Constrs.
type Model struct {
	Name    string
	Sense   ObjSense
	Vars    []Var
	Constrs []Constr
}

// NewModel creates an empty minimization model.
func NewModel(name string) *Model {
	return &Model{Name: name, Sense: Minimize}
}

// AddVar appends a variable and returns its index. Binary variables are
// clamped to [0, 1].
func (m *Model) AddVar(obj, lb, ub float64, vtype VarType, name string) (int, error) {
	if vtype == Binary {
		lb = math.Max(lb, 0)
		ub = math.Min(ub, 1)
	}
	if math.IsNaN(obj) || math.IsNaN(lb) || math.IsNaN(ub) {
		return -1, errors.Wrapf(ErrBadCoefficient, "variable %s", name)
	}
	if lb > ub {
		return -1, errors.Wrapf(ErrBadBounds, "variable %s: [%g, %g]", name, lb, ub)
	}
	m.Vars = append(m.Vars, Var{Name: name, Type: vtype, Lower: lb, Upper: ub, Obj: obj})
	return len(m.Vars) - 1, nil
}

// AddConstr appends a constraint over already added variables.
func (m *Model) AddConstr(ind []int32, val []float64, sense Sense, rhs float64, name string) error {
	c := Constr{Name: name, Ind: ind, Val: val, Sense: sense, RHS: rhs}
	if err := m.checkConstr(&c); err != nil {
		return err
	}
	m.Constrs = append(m.Constrs, c)
	return nil
}

// SetObjSense changes the optimization direction.
func (m *Model) SetObjSense(s ObjSense) {
	m.Sense = s
}

// NumVars returns the number of variables.
func (m *Model) NumVars() int { return len(m.Vars) }

// NumConstrs returns the number of constraints.
func (m *Model) NumConstrs() int { return len(m.Constrs) }

// IsMIP reports whether any variable is binary or integer.
func (m *Model) IsMIP() bool {
	for _, v := range m.Vars {
		if v.Type != Continuous {
			return true
		}
	}
	return false
}

// ObjValue evaluates the objective at x.
func (m *Model) ObjValue(x []float64) float64 {
	obj := 0.0
	for j, v := range m.Vars {
		if j < len(x) {
			obj += v.Obj * x[j]
		}
	}
	return obj
}

// Validate checks the whole model. Solvers call it before doing any work.
func (m *Model) Validate() error {
	if m.Sense != Minimize && m.Sense != Maximize {
		return errors.Wrapf(ErrInvalidModel, "objective sense %d", m.Sense)
	}
	names := make(map[string]struct{}, len(m.Vars)+len(m.Constrs))
	for j, v := range m.Vars {
		if v.Name == "" {
			return errors.Wrapf(ErrInvalidModel, "variable %d has no name", j)
		}
		if _, dup := names[v.Name]; dup {
			return errors.Wrapf(ErrDuplicateName, "variable %s", v.Name)
		}
		names[v.Name] = struct{}{}
		if math.IsNaN(v.Obj) || math.IsNaN(v.Lower) || math.IsNaN(v.Upper) {
			return errors.Wrapf(ErrBadCoefficient, "variable %s", v.Name)
		}
		if v.Lower > v.Upper {
			return errors.Wrapf(ErrBadBounds, "variable %s: [%g, %g]", v.Name, v.Lower, v.Upper)
		}
	}
	cnames := make(map[string]struct{}, len(m.Constrs))
	for i := range m.Constrs {
		c := &m.Constrs[i]
		if c.Name == "" {
			return errors.Wrapf(ErrInvalidModel, "constraint %d has no name", i)
		}
		if _, dup := cnames[c.Name]; dup {
			return errors.Wrapf(ErrDuplicateName, "constraint %s", c.Name)
		}
		cnames[c.Name] = struct{}{}
		if err := m.checkConstr(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) checkConstr(c *Constr) error {
	if len(c.Ind) != len(c.Val) {
		return errors.Wrapf(ErrInvalidModel, "constraint %s: %d indices, %d values", c.Name, len(c.Ind), len(c.Val))
	}
	switch c.Sense {
	case LessEqual, GreaterEqual, Equal:
	default:
		return errors.Wrapf(ErrInvalidModel, "constraint %s: unknown sense %d", c.Name, c.Sense)
	}
	if math.IsNaN(c.RHS) || math.IsInf(c.RHS, 0) {
		return errors.Wrapf(ErrBadCoefficient, "constraint %s: rhs %g", c.Name, c.RHS)
	}
	for k, idx := range c.Ind {
		if idx < 0 || int(idx) >= len(m.Vars) {
			return errors.Wrapf(ErrIndexOutOfRange, "constraint %s: variable %d", c.Name, idx)
		}
		if math.IsNaN(c.Val[k]) || math.IsInf(c.Val[k], 0) {
			return errors.Wrapf(ErrBadCoefficient, "constraint %s: coefficient %g", c.Name, c.Val[k])
		}
	}
	return nil
}
