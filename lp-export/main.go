/* Copyright 2021, Arkadiusz Zarychta, arkadiusz.zarychta@h-brs.de */

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"git.solver4all.com/azaryc2s/mtz"
	"git.solver4all.com/azaryc2s/mtz/tsp"
)

func main() {
	app := cli.NewApp()
	app.Name = "lp-export"
	app.Usage = "write the MTZ model of an instance as a CPLEX LP file without solving it"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "input", Value: "input.json", Usage: "Path to the input instance"},
		cli.StringFlag{Name: "output", Usage: "Path to the LP file, by default the input path with an .lp extension"},
		mtz.VerbosityFlag,
	}
	app.Before = mtz.InitLogging
	app.Action = func(c *cli.Context) error {
		return export(c.String("input"), c.String("output"))
	}
	if err := app.Run(os.Args); err != nil {
		glog.Exitf("%v", err)
	}
	glog.Flush()
}

func export(inputF, outputF string) error {
	if outputF == "" {
		outputF = strings.TrimSuffix(inputF, filepath.Ext(inputF)) + ".lp"
	}
	pInst, err := mtz.ReadInstance(inputF)
	if err != nil {
		return err
	}
	d, err := pInst.DistanceMatrix()
	if err != nil {
		return errors.Wrapf(err, "At %s", inputF)
	}
	f, err := tsp.BuildMTZ(d)
	if err != nil {
		return errors.Wrapf(err, "At %s", inputF)
	}
	if err = f.Model.Write(outputF); err != nil {
		return err
	}
	glog.Infof("Wrote %s: %d variables, %d constraints", outputF, f.Model.NumVars(), f.Model.NumConstrs())
	return nil
}
