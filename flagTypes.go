package mtz

import (
	"fmt"
	"strconv"
	"strings"
)

// Repeatable flag values. They satisfy cli.Generic, so every occurrence of
// the flag on the command line appends one element.

type ArrayStringFlags []string

func (i *ArrayStringFlags) String() string {
	return strings.Join(*i, ",")
}

func (i *ArrayStringFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

type ArrayIntFlags []int

func (i *ArrayIntFlags) String() string {
	return fmt.Sprintf("%v", []int(*i))
}

func (i *ArrayIntFlags) Set(value string) error {
	val, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%q is not an integer", value)
	}
	*i = append(*i, val)
	return nil
}

type ArrayFloatFlags []float64

func (i *ArrayFloatFlags) String() string {
	return fmt.Sprintf("%v", []float64(*i))
}

func (i *ArrayFloatFlags) Set(value string) error {
	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", value)
	}
	*i = append(*i, val)
	return nil
}
