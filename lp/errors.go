/* Copyright 2021, Arkadiusz Zarychta */

package lp

import "github.com/pkg/errors"

var (
	// ErrInvalidModel indicates a structurally broken model.
	ErrInvalidModel = errors.New("lp: invalid model")
	// ErrIndexOutOfRange indicates a constraint referencing an unknown variable.
	ErrIndexOutOfRange = errors.New("lp: variable index out of range")
	// ErrBadBounds indicates a variable whose lower bound exceeds its upper bound.
	ErrBadBounds = errors.New("lp: lower bound exceeds upper bound")
	// ErrBadCoefficient indicates a NaN or infinite coefficient.
	ErrBadCoefficient = errors.New("lp: coefficient is not a finite number")
	// ErrDuplicateName indicates two variables or two constraints sharing a name.
	ErrDuplicateName = errors.New("lp: duplicate name")
)
