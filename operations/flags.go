package operations

import (
	"strings"

	"github.com/urfave/cli"
)

////////////////////////////////////////////////////////////////////////
//
// Flag Name Constants

const (
	configFlagName   = "config"
	outputFlagName   = "output"
	dryRunFlagName   = "dry-run"
	intervalFlagName = "interval"
	numWorkersFlag   = "workers"
	servicePortFlag  = "port"

	tokenFlagName   = "token"
	projectFlagName = "project"
)

////////////////////////////////////////////////////////////////////////
//
// Utility Functions

func joinFlagNames(ids ...string) string { return strings.Join(ids, ", ") }

func mergeFlags(in ...[]cli.Flag) []cli.Flag {
	out := []cli.Flag{}

	for idx := range in {
		out = append(out, in[idx]...)
	}

	return out
}

////////////////////////////////////////////////////////////////////////
//
// Flag Groups

func boardFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.StringFlag{
			Name:  joinFlagNames(configFlagName, "c"),
			Usage: "path to a budget board configuration file",
		},
		cli.StringFlag{
			Name:   tokenFlagName,
			Usage:  "todoist API token",
			EnvVar: "TODOIST_TOKEN",
		},
		cli.StringFlag{
			Name:   projectFlagName,
			Usage:  "todoist project id of the budget board",
			EnvVar: "PROJECT_ID",
		})
}

func dryRunFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.BoolFlag{
		Name:  joinFlagNames(dryRunFlagName, "n"),
		Usage: "plan and log commands without committing them",
	})
}

func addOutputPath(flags ...cli.Flag) []cli.Flag {
	return append(flags, cli.StringFlag{
		Name:  joinFlagNames(outputFlagName, "o"),
		Usage: "path to the output file; prints to standard output when unset",
	})
}

func serviceFlags(flags ...cli.Flag) []cli.Flag {
	return append(flags,
		cli.IntFlag{
			Name:   joinFlagNames(servicePortFlag, "p"),
			Usage:  "specify a port to run the admin service on",
			Value:  3000,
			EnvVar: "DOSHMON_SERVICE_PORT",
		},
		cli.IntFlag{
			Name:  numWorkersFlag,
			Usage: "specify the number of worker jobs this process will have",
			Value: 2,
		},
		cli.DurationFlag{
			Name:   intervalFlagName,
			Usage:  "interval between housekeeping runs",
			EnvVar: "DOSHMON_INTERVAL",
		})
}
