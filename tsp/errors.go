/* Copyright 2021, Arkadiusz Zarychta */

package tsp

import "github.com/pkg/errors"

// ErrInvalidMatrix is the class of every error BuildMTZ returns for a bad
// distance matrix. The more specific errors below satisfy errors.Is with it.
var ErrInvalidMatrix = errors.New("invalid distance matrix")

var (
	ErrTooFewCities = errors.WithMessage(ErrInvalidMatrix, "tsp: fewer than two cities")
	ErrNotSquare    = errors.WithMessage(ErrInvalidMatrix, "tsp: matrix is not square")
	ErrNotFinite    = errors.WithMessage(ErrInvalidMatrix, "tsp: distance is not a finite number")
)

// ErrInvalidTour is returned by ValidateEdges for an edge list that is not a
// single Hamiltonian cycle.
var ErrInvalidTour = errors.New("tsp: edges do not form a tour")

// ErrExtractionInconsistency signals an optimal solver answer whose arc
// values do not describe a tour. It points at a modelling or tolerance defect.
var ErrExtractionInconsistency = errors.New("tsp: optimal solution is not a tour")
