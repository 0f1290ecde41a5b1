package operations

import (
	"time"

	"github.com/doshmon/doshmon"
	"github.com/doshmon/doshmon/model"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

// loadBoardConfig resolves the budget board configuration from the
// config file flag, environment variables, and any explicit flag
// overrides.
func loadBoardConfig(c *cli.Context) (*model.BudgetConfig, error) {
	conf, err := model.LoadBudgetConfig(
		c.String(configFlagName),
		c.String(tokenFlagName),
		c.String(projectFlagName))
	if err != nil {
		return nil, errors.Wrap(err, "problem loading board configuration")
	}

	return conf, nil
}

func configure(env doshmon.Environment, numWorkers int, interval time.Duration, dryRun bool) error {
	conf := &doshmon.Configuration{
		NumWorkers:        numWorkers,
		HousekeepingEvery: interval,
		DryRun:            dryRun,
	}

	if err := env.Configure(conf); err != nil {
		return errors.Wrap(err, "problem configuring application environment")
	}

	return nil
}
