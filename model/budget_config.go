package model

import (
	"os"
	"time"

	"github.com/doshmon/doshmon"
	"github.com/doshmon/doshmon/util"
	"github.com/mongodb/grip"
	"github.com/pkg/errors"
)

const (
	tokenEnvVar   = "TODOIST_TOKEN"
	projectEnvVar = "PROJECT_ID"
)

// TodoistConnectionInfo holds the API root and credentials for the
// Todoist Sync API.
type TodoistConnectionInfo struct {
	RootURL string `json:"api_root" yaml:"api_root"`
	Token   string `json:"token" yaml:"token"`
}

// BudgetConfig describes a single budget board: which Todoist project
// it lives in, and the monthly spend ceiling applied to its sections.
// The connection info serializes inline, so the file carries top-level
// token and api_root keys.
type BudgetConfig struct {
	Todoist  TodoistConnectionInfo `json:"todoist" yaml:",inline"`
	Project  string                `json:"project" yaml:"project"`
	Budget   float64               `json:"budget" yaml:"budget"`
	Currency string                `json:"currency" yaml:"currency"`
	Interval string                `json:"interval" yaml:"interval"`

	populated bool
}

// LoadBudgetConfig reads a board configuration from a YAML file,
// applies environment variable and explicit overrides, and validates
// the result. The path may be empty when the environment provides
// everything the board needs; token and project, when non-empty, win
// over both the file and the environment.
func LoadBudgetConfig(path, token, project string) (*BudgetConfig, error) {
	conf := &BudgetConfig{}

	if path != "" {
		if err := util.ReadFileYAML(path, conf); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	conf.applyEnv()

	if token != "" {
		conf.Todoist.Token = token
	}
	if project != "" {
		conf.Project = project
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid budget configuration")
	}

	conf.populated = true
	return conf, nil
}

func (c *BudgetConfig) IsNil() bool { return !c.populated }

func (c *BudgetConfig) applyEnv() {
	if token := os.Getenv(tokenEnvVar); token != "" {
		c.Todoist.Token = token
	}
	if project := os.Getenv(projectEnvVar); project != "" {
		c.Project = project
	}
}

func (c *BudgetConfig) Validate() error {
	catcher := grip.NewBasicCatcher()

	if c.Todoist.Token == "" {
		catcher.Add(errors.Errorf("must specify a todoist API token (%s)", tokenEnvVar))
	}
	if c.Project == "" {
		catcher.Add(errors.Errorf("must specify a todoist project id (%s)", projectEnvVar))
	}
	if c.Budget < 0 {
		catcher.Add(errors.New("monthly budget cannot be negative"))
	}

	if c.Todoist.RootURL == "" {
		c.Todoist.RootURL = doshmon.DefaultSyncAPIRoot
	}
	if c.Budget == 0 {
		c.Budget = doshmon.DefaultMonthlyBudget
	}
	if c.Currency == "" {
		c.Currency = doshmon.DefaultCurrencySymbol
	}

	return catcher.Resolve()
}

// GetInterval resolves the configured housekeeping interval, falling
// back to the given default when the configuration does not set one.
func (c *BudgetConfig) GetInterval(def time.Duration) (time.Duration, error) {
	if c.Interval == "" {
		return def, nil
	}

	dur, err := time.ParseDuration(c.Interval)
	if err != nil {
		return 0, errors.Wrapf(err, "problem parsing interval '%s'", c.Interval)
	}
	if dur <= 0 {
		return 0, errors.Errorf("interval '%s' must be positive", c.Interval)
	}

	return dur, nil
}
