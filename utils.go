package mtz

import (
	"encoding/json"
	"math"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownWeightType is returned for an edge_weight_type without a distance function.
var ErrUnknownWeightType = errors.New("mtz: unknown edge weight type")

// CalcEdgeDist computes the symmetric TSPLIB distances between coordinates.
// EUC_2D rounds to the nearest integer, CEIL_2D rounds up.
func CalcEdgeDist(coordinates [][]float64, distType string) ([][]float64, error) {
	if distType != WeightEuc2D && distType != WeightCeil2D {
		return nil, errors.Wrap(ErrUnknownWeightType, distType)
	}
	n := len(coordinates)
	result := make([][]float64, n)
	for node := 0; node < n; node++ {
		result[node] = make([]float64, n)
		if len(coordinates[node]) < 2 {
			return nil, errors.Errorf("mtz: node %d has %d coordinates", node, len(coordinates[node]))
		}
		for node2 := 0; node2 < node; node2++ {
			xDist := coordinates[node][0] - coordinates[node2][0]
			yDist := coordinates[node][1] - coordinates[node2][1]
			var distance float64
			if distType == WeightEuc2D {
				distance = math.Floor(math.Sqrt(xDist*xDist+yDist*yDist) + 0.5)
			} else {
				distance = math.Ceil(math.Sqrt(xDist*xDist + yDist*yDist))
			}
			result[node][node2] = distance
			result[node2][node] = distance
		}
	}
	return result, nil
}

// DistanceMatrix returns the distances the instance describes: the explicit
// weights, or the ones computed from the node coordinates.
func (inst *Instance) DistanceMatrix() ([][]float64, error) {
	switch inst.EdgeWeightType {
	case WeightExplicit, "":
		if len(inst.EdgeWeights) == 0 {
			return nil, errors.Errorf("mtz: instance %s has no edge weights", inst.Name)
		}
		return inst.EdgeWeights, nil
	}
	return CalcEdgeDist(inst.NodeCoordinates, inst.EdgeWeightType)
}

var (
	numbers  = regexp.MustCompile(`\s*(-?[0-9]+(\.[0-9]+)?(e[-+]?[0-9]+)?),\s+(-?[0-9]+(\.[0-9]+)?(e[-+]?[0-9]+)?)(,)?`)
	brackets = regexp.MustCompile(`\[((-?[0-9]+(\.[0-9]+)?(e[-+]?[0-9]+)?,)+-?[0-9]+(\.[0-9]+)?(e[-+]?[0-9]+)?)\s+\](,?)(\s+)`)
)

// SanitizeJsonArrayLineBreaks puts numeric arrays of indented JSON on a single
// line. String literals are copied unchanged.
func SanitizeJsonArrayLineBreaks(json string) string {
	var sb strings.Builder
	sb.Grow(len(json))
	start := 0
	inString := false
	for i := 0; i < len(json); i++ {
		switch c := json[i]; {
		case inString && c == '\\':
			i++
		case inString && c == '"':
			sb.WriteString(json[start : i+1])
			start = i + 1
			inString = false
		case !inString && c == '"':
			sb.WriteString(compactArrays(json[start:i]))
			start = i
			inString = true
		}
	}
	if inString {
		sb.WriteString(json[start:])
	} else {
		sb.WriteString(compactArrays(json[start:]))
	}
	return sb.String()
}

func compactArrays(res string) string {
	for numbers.MatchString(res) {
		res = numbers.ReplaceAllString(res, "$1,$4$7")
	}
	for brackets.MatchString(res) {
		res = brackets.ReplaceAllString(res, "[$1]$7$8")
	}
	return res
}

// ReadInstance loads an instance document.
func ReadInstance(path string) (*Instance, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	var inst Instance
	if err = json.Unmarshal(b, &inst); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &inst, nil
}

// WriteInstance stores inst as indented JSON with compact numeric arrays.
func WriteInstance(path string, inst *Instance) error {
	b, err := json.MarshalIndent(inst, "", "\t")
	if err != nil {
		return errors.Wrapf(err, "encoding %s", inst.Name)
	}
	b = []byte(SanitizeJsonArrayLineBreaks(string(b)))
	return errors.Wrapf(os.WriteFile(path, b, 0644), "writing %s", path)
}
