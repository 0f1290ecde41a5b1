package units

import (
	"context"
	"fmt"
	"time"

	"github.com/doshmon/doshmon"
	"github.com/doshmon/doshmon/model"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/amboy"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
)

const tsFormat = "2006-01-02.15-04-05"

// StartCrons schedules the periodic housekeeping job on the
// environment's queue.
func StartCrons(ctx context.Context, env doshmon.Environment, bconf *model.BudgetConfig, interval time.Duration) error {
	opts := amboy.QueueOperationConfig{
		ContinueOnError: true,
		LogErrors:       false,
		DebugLogging:    false,
	}

	queue, err := env.GetQueue()
	if err != nil {
		return err
	}

	conf, err := env.GetConf()
	if err != nil {
		return err
	}

	grip.Info(message.Fields{
		"message":  "starting background cron jobs",
		"interval": interval.String(),
		"project":  bconf.Project,
		"started":  queue.Info().Started,
	})

	amboy.IntervalQueueOperation(ctx, queue, interval, time.Now(), opts, func(ctx context.Context, queue amboy.Queue) error {
		ts := utility.RoundPartOfMinute(0).Format(tsFormat)
		name := fmt.Sprintf("%s-%s", housekeepingJobName, ts)
		return queue.Put(ctx, NewHousekeepingJob(bconf, name, conf.DryRun))
	})

	return nil
}
