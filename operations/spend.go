package operations

import (
	"context"
	"time"

	"github.com/doshmon/doshmon/budget"
	"github.com/doshmon/doshmon/todoist"
	"github.com/doshmon/doshmon/util"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// Spend returns the ./doshmon spend sub-command, which reports spend
// per board section against the monthly budget.
func Spend() cli.Command {
	return cli.Command{
		Name:   "spend",
		Usage:  "report spend per board section against the monthly budget",
		Flags:  addOutputPath(boardFlags()...),
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

			state, err := todoist.NewClient(client, &conf.Todoist).GetState(ctx, conf.Project)
			if err != nil {
				return errors.Wrap(err, "problem fetching board state")
			}

			report := budget.BuildSpendReport(state, conf, time.Now())

			if output := c.String(outputFlagName); output != "" {
				if err := util.WriteJSON(output, report); err != nil {
					return errors.Wrap(err, "problem writing spend report")
				}
				grip.Infoln("wrote spend report to", output)
				return nil
			}

			return errors.WithStack(util.PrintJSON(report))
		},
	}
}
