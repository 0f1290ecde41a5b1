package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/doshmon/doshmon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doshmon.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadBudgetConfigFromFile(t *testing.T) {
	t.Setenv("TODOIST_TOKEN", "")
	t.Setenv("PROJECT_ID", "")

	path := writeConfigFile(t, `
token: file-token
project: "220474322"
budget: 750
currency: "$"
interval: 30m
`)

	conf, err := LoadBudgetConfig(path, "", "")
	require.NoError(t, err)

	assert.Equal(t, "file-token", conf.Todoist.Token)
	assert.Equal(t, "220474322", conf.Project)
	assert.Equal(t, 750.0, conf.Budget)
	assert.Equal(t, "$", conf.Currency)
	assert.Equal(t, doshmon.DefaultSyncAPIRoot, conf.Todoist.RootURL)
	assert.False(t, conf.IsNil())

	interval, err := conf.GetInterval(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, interval)
}

func TestLoadBudgetConfigFlatConnectionKeys(t *testing.T) {
	t.Setenv("TODOIST_TOKEN", "")
	t.Setenv("PROJECT_ID", "")

	path := writeConfigFile(t, `
token: file-token
api_root: http://localhost:9999/sync/v9
project: "220474322"
`)

	conf, err := LoadBudgetConfig(path, "", "")
	require.NoError(t, err)

	assert.Equal(t, "file-token", conf.Todoist.Token)
	assert.Equal(t, "http://localhost:9999/sync/v9", conf.Todoist.RootURL)
}

func TestLoadBudgetConfigDefaults(t *testing.T) {
	t.Setenv("TODOIST_TOKEN", "env-token")
	t.Setenv("PROJECT_ID", "220474322")

	conf, err := LoadBudgetConfig("", "", "")
	require.NoError(t, err)

	assert.Equal(t, float64(doshmon.DefaultMonthlyBudget), conf.Budget)
	assert.Equal(t, doshmon.DefaultCurrencySymbol, conf.Currency)
	assert.Equal(t, doshmon.DefaultSyncAPIRoot, conf.Todoist.RootURL)

	interval, err := conf.GetInterval(doshmon.DefaultHousekeepingInterval)
	require.NoError(t, err)
	assert.Equal(t, doshmon.DefaultHousekeepingInterval, interval)
}

func TestLoadBudgetConfigEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("TODOIST_TOKEN", "env-token")
	t.Setenv("PROJECT_ID", "env-project")

	path := writeConfigFile(t, `
token: file-token
project: file-project
`)

	conf, err := LoadBudgetConfig(path, "", "")
	require.NoError(t, err)

	assert.Equal(t, "env-token", conf.Todoist.Token)
	assert.Equal(t, "env-project", conf.Project)
}

func TestLoadBudgetConfigExplicitOverridesWin(t *testing.T) {
	t.Setenv("TODOIST_TOKEN", "env-token")
	t.Setenv("PROJECT_ID", "env-project")

	conf, err := LoadBudgetConfig("", "flag-token", "flag-project")
	require.NoError(t, err)

	assert.Equal(t, "flag-token", conf.Todoist.Token)
	assert.Equal(t, "flag-project", conf.Project)
}

func TestLoadBudgetConfigRequiresCredentials(t *testing.T) {
	t.Setenv("TODOIST_TOKEN", "")
	t.Setenv("PROJECT_ID", "")

	_, err := LoadBudgetConfig("", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TODOIST_TOKEN")
	assert.Contains(t, err.Error(), "PROJECT_ID")
}

func TestLoadBudgetConfigMissingFile(t *testing.T) {
	_, err := LoadBudgetConfig(filepath.Join(t.TempDir(), "nope.yml"), "t", "p")
	assert.Error(t, err)
}

func TestValidateRejectsNegativeBudget(t *testing.T) {
	conf := &BudgetConfig{
		Todoist: TodoistConnectionInfo{Token: "t"},
		Project: "p",
		Budget:  -1,
	}
	assert.Error(t, conf.Validate())
}

func TestGetIntervalRejectsMalformedValues(t *testing.T) {
	for _, interval := range []string{"soon", "-5m", "0s"} {
		conf := &BudgetConfig{Interval: interval}
		_, err := conf.GetInterval(time.Hour)
		assert.Error(t, err, interval)
	}
}
