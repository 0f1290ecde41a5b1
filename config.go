package doshmon

import (
	"errors"
	"time"

	"github.com/mongodb/grip"
)

// Configuration defines the runtime settings shared through the
// application cache. Board-level settings (token, project, budget) live
// in model.BudgetConfig; this structure only carries what the process
// itself needs to schedule and run work.
type Configuration struct {
	NumWorkers        int
	HousekeepingEvery time.Duration
	DryRun            bool
}

func (c *Configuration) Validate() error {
	catcher := grip.NewBasicCatcher()

	if c.NumWorkers < 1 {
		catcher.Add(errors.New("must specify a valid number of amboy workers"))
	}
	if c.HousekeepingEvery <= 0 {
		c.HousekeepingEvery = DefaultHousekeepingInterval
	}

	return catcher.Resolve()
}
