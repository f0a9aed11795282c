package main

import (
	"os"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"git.solver4all.com/azaryc2s/mtz"
)

func main() {
	app := cli.NewApp()
	app.Name = "formatter"
	app.Usage = "put the numeric arrays of instance files on single lines"
	app.ArgsUsage = "<file>..."
	app.HideVersion = true
	app.Flags = []cli.Flag{mtz.VerbosityFlag}
	app.Before = mtz.InitLogging
	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			return cli.NewExitError("No arguments passed!", 2)
		}
		for _, fileName := range c.Args() {
			if err := writeBackFile(fileName); err != nil {
				return err
			}
		}
		return nil
	}
	if err := app.Run(os.Args); err != nil {
		glog.Exitf("%v", err)
	}
	glog.Flush()
}

func writeBackFile(fileName string) error {
	fileContent, err := os.ReadFile(fileName)
	if err != nil {
		return errors.Wrapf(err, "At %s", fileName)
	}
	out := mtz.SanitizeJsonArrayLineBreaks(string(fileContent))
	glog.V(1).Infof("%s: %d -> %d bytes", fileName, len(fileContent), len(out))
	return errors.Wrapf(os.WriteFile(fileName, []byte(out), 0644), "At %s", fileName)
}
