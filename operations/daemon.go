package operations

import (
	"context"

	"github.com/doshmon/doshmon"
	"github.com/doshmon/doshmon/rest"
	"github.com/doshmon/doshmon/units"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Daemon returns the ./doshmon daemon sub-command, which runs
// housekeeping on an interval and serves the admin API.
func Daemon() cli.Command {
	return cli.Command{
		Name:   "daemon",
		Usage:  "run periodic housekeeping and the admin api service",
		Flags:  serviceFlags(dryRunFlags(boardFlags()...)...),
		Before: requireFileExists(configFlagName),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			conf, err := loadBoardConfig(c)
			if err != nil {
				return errors.WithStack(err)
			}

			interval := c.Duration(intervalFlagName)
			if interval <= 0 {
				interval, err = conf.GetInterval(doshmon.DefaultHousekeepingInterval)
				if err != nil {
					return errors.WithStack(err)
				}
			}

			env := doshmon.GetEnvironment()
			if err := configure(env, c.Int(numWorkersFlag), interval, c.Bool(dryRunFlagName)); err != nil {
				return errors.WithStack(err)
			}

			queue, err := env.GetQueue()
			if err != nil {
				return errors.WithStack(err)
			}
			if err := queue.Start(ctx); err != nil {
				return errors.Wrap(err, "problem starting queue")
			}

			if err := units.StartCrons(ctx, env, conf, interval); err != nil {
				return errors.Wrap(err, "problem starting background jobs")
			}

			service := &rest.Service{
				Port:        c.Int(servicePortFlag),
				Environment: env,
				Conf:        conf,
			}

			if err := service.Validate(); err != nil {
				return errors.Wrap(err, "problem validating service")
			}

			grip.Noticef("starting doshmon daemon on :%d (housekeeping every %s)", c.Int(servicePortFlag), interval)
			if err := service.Start(ctx); err != nil {
				return errors.Wrap(err, "problem running service")
			}

			grip.Info("completed service, terminating.")
			return nil
		},
	}
}
