package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"git.solver4all.com/azaryc2s/mtz"
	"git.solver4all.com/azaryc2s/mtz/lp"
	"git.solver4all.com/azaryc2s/mtz/lp/simplex"
	"git.solver4all.com/azaryc2s/mtz/tsp"
)

var (
	nodes       mtz.ArrayIntFlags
	weightTypes mtz.ArrayStringFlags
	asymA       mtz.ArrayFloatFlags
)

type params struct {
	name    string
	dir     string
	count   int
	xTo     int
	yTo     int
	calcTSP bool
	solver  lp.Solver
}

func main() {
	app := cli.NewApp()
	app.Name = "generator"
	app.Usage = "generate random TSP and ATSP instances"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.GenericFlag{Name: "n", Value: &nodes, Usage: "Number of nodes (repeatable)"},
		cli.IntFlag{Name: "count", Value: 10, Usage: "Number of instances per combination"},
		cli.StringFlag{Name: "name", Value: "zarychta", Usage: "Name for the instance"},
		cli.StringFlag{Name: "dir", Value: ".", Usage: "Directory the instances are written to"},
		cli.IntFlag{Name: "x", Value: 10000, Usage: "Max value on the x-axis"},
		cli.IntFlag{Name: "y", Value: 10000, Usage: "Max value on the y-axis"},
		cli.GenericFlag{Name: "w", Value: &weightTypes, Usage: "EDGE_WEIGHT_TYPE - how the distance between nodes is calculated, EUC_2D (default) or CEIL_2D (repeatable)"},
		cli.GenericFlag{Name: "asym", Value: &asymA, Usage: "Also write an ATSP with explicit weights perturbed by up to this fraction (repeatable)"},
		cli.BoolTFlag{Name: "tsp", Usage: "Whether to calculate the tsp-length or not (could take a while for bigger instances)"},
		cli.Int64Flag{Name: "seed", Usage: "Random seed, by default the current time"},
		mtz.VerbosityFlag,
	}
	app.Before = mtz.InitLogging
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		glog.Exitf("%v", err)
	}
	glog.Flush()
}

func run(c *cli.Context) error {
	if len(nodes) == 0 {
		return cli.NewExitError("at least one -n is required", 2)
	}
	if len(weightTypes) == 0 {
		weightTypes = mtz.ArrayStringFlags{mtz.WeightEuc2D}
	}
	seed := c.Int64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	p := params{
		name:    c.String("name"),
		dir:     c.String("dir"),
		count:   c.Int("count"),
		xTo:     c.Int("x"),
		yTo:     c.Int("y"),
		calcTSP: c.BoolT("tsp"),
		solver:  simplex.New(simplex.Options{}),
	}
	insts, err := generate(rand.New(rand.NewSource(seed)), p, nodes, weightTypes, asymA)
	if err != nil {
		return err
	}
	for _, inst := range insts {
		path := filepath.Join(p.dir, inst.Name+".json")
		if err = mtz.WriteInstance(path, inst); err != nil {
			return err
		}
		glog.V(1).Infof("Wrote %s", path)
	}
	glog.Infof("Generated %d instances with seed %d", len(insts), seed)
	return nil
}

// generate builds count instances for every combination of node count and
// weight type, plus one ATSP per asymmetry level.
func generate(rng *rand.Rand, p params, nodes []int, weightTypes []string, asymA []float64) ([]*mtz.Instance, error) {
	var insts []*mtz.Instance
	for l := 0; l < p.count; l++ {
		for _, n := range nodes {
			if n < 2 {
				return nil, errors.Errorf("an instance needs at least 2 nodes, got %d", n)
			}
			for _, w := range weightTypes {
				coordinatesArray := make([][]float64, n)
				for node := 0; node < n; node++ {
					coordinatesArray[node] = []float64{float64(rng.Intn(p.xTo)), float64(rng.Intn(p.yTo))}
				}
				edgeDist, err := mtz.CalcEdgeDist(coordinatesArray, w)
				if err != nil {
					return nil, err
				}

				instName := fmt.Sprintf("%s_%d_%s_%d", p.name, n, w, l)
				inst := &mtz.Instance{
					Name:            instName,
					Comment:         fmt.Sprintf("%s instance Nr. %d with %d nodes", p.name, l, n),
					Type:            mtz.TypeTSP,
					Dimension:       n,
					DisplayDataType: "COORD_DISPLAY",
					EdgeWeightType:  w,
					NodeCoordinates: coordinatesArray,
				}
				if err = setTSPLength(inst, edgeDist, p); err != nil {
					return nil, err
				}
				insts = append(insts, inst)

				for _, a := range asymA {
					weights := perturb(rng, edgeDist, a)
					ainst := &mtz.Instance{
						Name:            fmt.Sprintf("%s_%d_%s_%.2f_%d", p.name, n, w, a, l),
						Comment:         fmt.Sprintf("%s asymmetric instance Nr. %d with %d nodes and %.2f a-value", p.name, l, n, a),
						Type:            mtz.TypeATSP,
						Dimension:       n,
						DisplayDataType: "COORD_DISPLAY",
						EdgeWeightType:  mtz.WeightExplicit,
						NodeCoordinates: coordinatesArray,
						EdgeWeights:     weights,
					}
					if err = setTSPLength(ainst, weights, p); err != nil {
						return nil, err
					}
					insts = append(insts, ainst)
				}
			}
		}
	}
	return insts, nil
}

// perturb scales every arc independently by a factor in [1-a, 1+a].
func perturb(rng *rand.Rand, d [][]float64, a float64) [][]float64 {
	n := len(d)
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		for j := range out[i] {
			if i != j {
				out[i][j] = math.Max(0, math.Floor(d[i][j]*(1+a*(2*rng.Float64()-1))+0.5))
			}
		}
	}
	return out
}

func setTSPLength(inst *mtz.Instance, d [][]float64, p params) error {
	if !p.calcTSP {
		return nil
	}
	res, err := tsp.Solve(d, p.solver)
	if err != nil {
		return errors.Wrapf(err, "solving %s", inst.Name)
	}
	if res.Status != lp.Optimal {
		glog.Warningf("No optimal tour for %s: %s", inst.Name, res.Status)
		return nil
	}
	inst.TSPLength = tsp.TourCost(d, res.Tour)
	return nil
}
