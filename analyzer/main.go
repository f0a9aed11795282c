package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"git.solver4all.com/azaryc2s/mtz"
	"git.solver4all.com/azaryc2s/mtz/tsp"
)

var header = []string{"Name", "Status", "Optimal", "Time", "Obj", "RouteCost", "Dimension", "Comment"}

func main() {
	app := cli.NewApp()
	app.Name = "analyzer"
	app.Usage = "print a CSV report over the solved instances of a directory"
	app.ArgsUsage = "<dir>"
	app.HideVersion = true
	app.Flags = []cli.Flag{mtz.VerbosityFlag}
	app.Before = mtz.InitLogging
	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.NewExitError("No arguments passed!", 2)
		}
		return analyze(c.Args().First(), os.Stdout)
	}
	if err := app.Run(os.Args); err != nil {
		glog.Exitf("%v", err)
	}
	glog.Flush()
}

func analyze(dirName string, out io.Writer) error {
	dir, err := os.ReadDir(dirName)
	if err != nil {
		return errors.Wrapf(err, "Couldn't open directory %s", dirName)
	}
	w := csv.NewWriter(out)
	if err = w.Write(header); err != nil {
		return err
	}
	for _, f := range dir {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		inst, err := mtz.ReadInstance(filepath.Join(dirName, f.Name()))
		if err != nil {
			glog.Warningf("Skipping %s: %v", f.Name(), err)
			continue
		}
		if err = w.Write(record(inst)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func record(inst *mtz.Instance) []string {
	var sol mtz.Solution
	if inst.Solution != nil {
		sol = *inst.Solution
	}
	if sol.Optimal {
		if err := checkTour(inst, &sol); err != nil {
			sol.Comment += fmt.Sprintf("ANALYZER: Error = %s", err.Error())
		}
	}
	return []string{
		inst.Name,
		sol.Status,
		strconv.FormatBool(sol.Optimal),
		sol.Time,
		strconv.FormatFloat(sol.Obj, 'f', -1, 64),
		strconv.FormatFloat(sol.RouteCost, 'f', -1, 64),
		strconv.Itoa(inst.Dimension),
		sol.Comment,
	}
}

// checkTour re-validates a stored tour against the instance distances.
func checkTour(inst *mtz.Instance, sol *mtz.Solution) error {
	d, err := inst.DistanceMatrix()
	if err != nil {
		return err
	}
	if err = tsp.ValidateEdges(sol.Tour, len(d)); err != nil {
		return err
	}
	cost := tsp.TourCost(d, sol.Tour)
	if math.Abs(cost-sol.RouteCost) > 1e-6*math.Max(1, math.Abs(cost)) {
		return errors.Errorf("Route cost %g does not match the stored %g!", cost, sol.RouteCost)
	}
	return nil
}
