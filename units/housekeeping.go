package units

import (
	"context"

	"github.com/doshmon/doshmon/budget"
	"github.com/doshmon/doshmon/model"
	"github.com/doshmon/doshmon/todoist"
	"github.com/evergreen-ci/utility"
	"github.com/mongodb/amboy"
	"github.com/mongodb/amboy/dependency"
	"github.com/mongodb/amboy/job"
	"github.com/mongodb/amboy/registry"
	"github.com/mongodb/grip"
	"github.com/mongodb/grip/message"
	"github.com/pkg/errors"
)

const housekeepingJobName = "budget-housekeeping"

type housekeepingJob struct {
	Project string `bson:"project" json:"project" yaml:"project"`
	DryRun  bool   `bson:"dry_run" json:"dry_run" yaml:"dry_run"`

	job.Base `bson:"metadata" json:"metadata" yaml:"metadata"`
	conf     *model.BudgetConfig
}

func init() {
	registry.AddJobType(housekeepingJobName, func() amboy.Job { return makeHousekeepingJob() })
}

func makeHousekeepingJob() *housekeepingJob {
	j := &housekeepingJob{
		Base: job.Base{
			JobType: amboy.JobType{
				Name:    housekeepingJobName,
				Version: 1,
			},
		},
	}

	j.SetDependency(dependency.NewAlways())
	return j
}

// NewHousekeepingJob returns a job that runs one housekeeping pass
// against the configured board.
func NewHousekeepingJob(conf *model.BudgetConfig, name string, dryRun bool) amboy.Job {
	j := makeHousekeepingJob()

	j.conf = conf
	j.Project = conf.Project
	j.DryRun = dryRun
	j.SetID(name)
	return j
}

func (j *housekeepingJob) Run(ctx context.Context) {
	defer j.MarkComplete()
	grip.Infoln("running housekeeping job:", j.ID())

	if j.conf == nil {
		conf, err := model.LoadBudgetConfig("", "", "")
		if err != nil {
			j.AddError(errors.Wrap(err, "problem loading budget configuration"))
			return
		}
		j.conf = conf
	}

	client := utility.GetHTTPClient()
	defer utility.PutHTTPClient(client)

	keeper := budget.NewHousekeeper(todoist.NewClient(client, &j.conf.Todoist), j.conf)
	keeper.SetDryRun(j.DryRun)

	if err := keeper.Run(ctx); err != nil {
		grip.Warning(err)
		j.AddError(errors.WithStack(err))
		return
	}

	grip.Notice(message.Fields{
		"id":      housekeepingJobName,
		"state":   "complete",
		"project": j.Project,
		"dry_run": j.DryRun,
	})
}
