/* Copyright 2021, Arkadiusz Zarychta, arkadiusz.zarychta@h-brs.de */

package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"git.solver4all.com/azaryc2s/mtz"
	"git.solver4all.com/azaryc2s/mtz/config"
	"git.solver4all.com/azaryc2s/mtz/lp"
	"git.solver4all.com/azaryc2s/mtz/tsp"
)

func main() {
	app := cli.NewApp()
	app.Name = "solver"
	app.Usage = "solve a TSP instance with the MTZ formulation and store the tour in it"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "input", Value: "input.json", Usage: "Path to the input instance"},
		cli.StringFlag{Name: "output", Usage: "Path to the output file. By default the input file will be overwritten adding the solution"},
		cli.StringFlag{Name: "config", Usage: "JSON solver configuration"},
		cli.StringFlag{Name: "backend", Usage: "Solving engine: simplex or cbc (overrides the configuration)"},
		cli.DurationFlag{Name: "time-limit", Usage: "Stop the search after this long, e.g. 30s"},
		cli.IntFlag{Name: "node-limit", Usage: "Stop after this many branch-and-bound nodes (simplex only)"},
		cli.StringFlag{Name: "cbc", Usage: "Path to the cbc executable"},
		cli.StringFlag{Name: "write-lp", Usage: "Also write the model as an LP file to this path"},
		mtz.VerbosityFlag,
	}
	app.Before = mtz.InitLogging
	app.Action = run

	err := app.Run(os.Args)
	if err != nil {
		glog.Errorf("%v", err)
	}
	glog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	inputF := c.String("input")
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	solver, err := cfg.NewSolver()
	if err != nil {
		return err
	}

	pInst, err := mtz.ReadInstance(inputF)
	if err != nil {
		return err
	}
	d, err := pInst.DistanceMatrix()
	if err != nil {
		return errors.Wrapf(err, "at %s", inputF)
	}

	if lpF := c.String("write-lp"); lpF != "" {
		f, err := tsp.BuildMTZ(d)
		if err != nil {
			return errors.Wrapf(err, "at %s", inputF)
		}
		if err = f.Model.Write(lpF); err != nil {
			return err
		}
		glog.Infof("Model written to %s", lpF)
	}

	glog.Infof("Solving %s (%d cities) with %s", pInst.Name, len(d), cfg.Backend)
	sol, err := solveInstance(d, solver)
	if err != nil {
		return errors.Wrapf(err, "at %s", inputF)
	}
	sol.Backend = cfg.Backend
	sol.System = mtz.CollectSysInfo()
	pInst.Solution = sol
	if sol.Optimal {
		pInst.TSPLength = sol.RouteCost
		fmt.Printf("Found a tour with length %g: %v\n", sol.RouteCost, sol.Tour)
	} else {
		fmt.Printf("Model for %s is %s\n", inputF, sol.Status)
	}

	outputF := c.String("output")
	if outputF == "" {
		outputF = inputF
	}
	return mtz.WriteInstance(outputF, pInst)
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet("backend") {
		cfg.Backend = c.String("backend")
	}
	if c.IsSet("time-limit") {
		cfg.TimeLimitS = c.Duration("time-limit").Seconds()
	}
	if c.IsSet("node-limit") {
		cfg.NodeLimit = c.Int("node-limit")
	}
	if c.IsSet("cbc") {
		cfg.CBC.Path = c.String("cbc")
	}
	return cfg, cfg.Validate()
}

// solveInstance runs the MTZ pipeline on d and records the outcome. A
// non-optimal status is a regular outcome and is only noted in the comment.
func solveInstance(d [][]float64, solver lp.Solver) (*mtz.Solution, error) {
	startTime := time.Now()
	res, err := tsp.Solve(d, solver)
	if err != nil {
		return nil, err
	}
	sol := &mtz.Solution{
		Status: res.Status.String(),
		Nodes:  res.Nodes,
		Time:   time.Since(startTime).String(),
	}

	switch res.Status {
	case lp.Optimal:
		sol.Optimal = true
		sol.Obj = res.TotalCost
		sol.Tour = res.Tour
		sol.RouteCost = tsp.TourCost(d, res.Tour)
		if math.Abs(sol.RouteCost-sol.Obj) > 1e-6*math.Max(1, math.Abs(sol.Obj)) {
			glog.Warningf("The solver reports %g but the tour costs %g", sol.Obj, sol.RouteCost)
			sol.Comment += fmt.Sprintf("Objective %g differs from the route cost. ", sol.Obj)
		}
	case lp.TimeLimit:
		sol.Comment += "Time limit reached"
	case lp.NodeLimit:
		sol.Comment += "Node limit reached"
	case lp.Infeasible, lp.Unbounded:
		sol.Comment += fmt.Sprintf("Model is %s", res.Status)
	default:
		sol.Comment += "For some reason the optimization stopped without an optimal solution"
	}
	return sol, nil
}
