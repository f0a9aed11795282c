/* Copyright 2021, Arkadiusz Zarychta */

package lp

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// termsPerLine keeps LP rows well below the 255 character limit of some readers.
const termsPerLine = 8

// Write stores the model as a CPLEX LP file at path.
func (m *Model) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "lp: creating %s", path)
	}
	if err = WriteLP(f, m); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "lp: closing %s", path)
}

// WriteLP writes m in CPLEX LP format.
func WriteLP(w io.Writer, m *Model) error {
	if err := m.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)

	bw.WriteString("\\* Problem: " + m.Name + " *\\\n\n")
	if m.Sense == Maximize {
		bw.WriteString("Maximize\n")
	} else {
		bw.WriteString("Minimize\n")
	}
	ind := make([]int32, 0, len(m.Vars))
	val := make([]float64, 0, len(m.Vars))
	for j, v := range m.Vars {
		ind = append(ind, int32(j))
		val = append(val, v.Obj)
	}
	bw.WriteString(" obj:")
	writeTerms(bw, m, ind, val)
	bw.WriteString("\n\nSubject To\n")
	for _, c := range m.Constrs {
		bw.WriteString(" " + c.Name + ":")
		writeTerms(bw, m, c.Ind, c.Val)
		bw.WriteString(" " + c.Sense.String() + " " + formatNum(c.RHS) + "\n")
	}

	var bounds, generals, binaries []string
	for _, v := range m.Vars {
		switch v.Type {
		case Binary:
			binaries = append(binaries, v.Name)
			continue
		case Integer:
			generals = append(generals, v.Name)
		}
		if b := boundLine(v); b != "" {
			bounds = append(bounds, b)
		}
	}
	if len(bounds) > 0 {
		bw.WriteString("\nBounds\n")
		for _, b := range bounds {
			bw.WriteString(" " + b + "\n")
		}
	}
	writeSection(bw, "Generals", generals)
	writeSection(bw, "Binaries", binaries)
	bw.WriteString("\nEnd\n")
	return errors.Wrap(bw.Flush(), "lp: writing model")
}

func writeTerms(bw *bufio.Writer, m *Model, ind []int32, val []float64) {
	written := 0
	for k, idx := range ind {
		v := val[k]
		if v == 0 {
			continue
		}
		if written > 0 && written%termsPerLine == 0 {
			bw.WriteString("\n  ")
		}
		sign := "+"
		if v < 0 {
			sign = "-"
			v = -v
		}
		if written == 0 && sign == "+" {
			bw.WriteString(" ")
		} else {
			bw.WriteString(" " + sign + " ")
		}
		if v != 1 {
			bw.WriteString(formatNum(v) + " ")
		}
		bw.WriteString(m.Vars[idx].Name)
		written++
	}
	if written == 0 && len(m.Vars) > 0 {
		bw.WriteString(" 0 " + m.Vars[0].Name)
	}
}

func boundLine(v Var) string {
	lo, up := v.Lower, v.Upper
	switch {
	case lo == up:
		return v.Name + " = " + formatNum(lo)
	case math.IsInf(lo, -1) && math.IsInf(up, 1):
		return v.Name + " free"
	case lo == 0 && math.IsInf(up, 1):
		return ""
	case math.IsInf(up, 1):
		return v.Name + " >= " + formatNum(lo)
	case math.IsInf(lo, -1):
		return "-inf <= " + v.Name + " <= " + formatNum(up)
	}
	return formatNum(lo) + " <= " + v.Name + " <= " + formatNum(up)
}

func writeSection(bw *bufio.Writer, title string, names []string) {
	if len(names) == 0 {
		return
	}
	bw.WriteString("\n" + title + "\n")
	for i := 0; i < len(names); i += termsPerLine {
		end := i + termsPerLine
		if end > len(names) {
			end = len(names)
		}
		bw.WriteString(" " + strings.Join(names[i:end], " ") + "\n")
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
