package mtz

import (
	"flag"
	"strconv"

	"github.com/urfave/cli"
)

// VerbosityFlag is the -v flag every command offers; it sets the glog level.
var VerbosityFlag = cli.IntFlag{Name: "v", Usage: "log verbosity (1: solver summary, 2: every branch-and-bound node)"}

// InitLogging sends glog output to stderr at the verbosity given by -v.
// It is meant as the Before hook of a cli.App.
func InitLogging(c *cli.Context) error {
	if err := flag.Set("logtostderr", "true"); err != nil {
		return err
	}
	return flag.Set("v", strconv.Itoa(c.Int(VerbosityFlag.Name)))
}
