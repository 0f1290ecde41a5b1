package operations

import (
	"context"

	"github.com/doshmon/doshmon/budget"
	"github.com/doshmon/doshmon/todoist"
	"github.com/evergreen-ci/utility"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Housekeeping returns the ./doshmon housekeeping sub-command, which
// runs a single housekeeping pass against the budget board.
func Housekeeping() cli.Command {
	return cli.Command{
		Name:   "housekeeping",
		Usage:  "run one housekeeping pass against the budget board",
		Flags:  dryRunFlags(boardFlags()...),
		Before: requireFileExists(configFlagName),
		Action: func(c *cli.Context) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			conf, err := loadBoardConfig(c)
			if err != nil {
				return errors.WithStack(err)
			}

			client := utility.GetHTTPClient()
			defer utility.PutHTTPClient(client)

			keeper := budget.NewHousekeeper(todoist.NewClient(client, &conf.Todoist), conf)
			keeper.SetDryRun(c.Bool(dryRunFlagName))

			return errors.Wrap(keeper.Run(ctx), "problem running housekeeping")
		},
	}
}
