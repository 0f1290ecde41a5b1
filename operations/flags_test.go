package operations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli"
)

func TestJoinFlagNames(t *testing.T) {
	assert.Equal(t, "config, c", joinFlagNames(configFlagName, "c"))
	assert.Equal(t, "output", joinFlagNames(outputFlagName))
}

func TestMergeFlags(t *testing.T) {
	assert.Empty(t, mergeFlags())

	merged := mergeFlags(boardFlags(), dryRunFlags())
	assert.Len(t, merged, len(boardFlags())+len(dryRunFlags()))
}

func TestFlagGroupsCompose(t *testing.T) {
	flags := serviceFlags(dryRunFlags(boardFlags()...)...)

	names := map[string]bool{}
	for _, flag := range flags {
		names[flag.GetName()] = true
	}

	assert.True(t, names[joinFlagNames(configFlagName, "c")])
	assert.True(t, names[tokenFlagName])
	assert.True(t, names[projectFlagName])
	assert.True(t, names[joinFlagNames(dryRunFlagName, "n")])
	assert.True(t, names[joinFlagNames(servicePortFlag, "p")])
	assert.True(t, names[numWorkersFlag])
	assert.True(t, names[intervalFlagName])
}

func TestCommandsAreConstructable(t *testing.T) {
	for _, cmd := range []cli.Command{Housekeeping(), Daemon(), Spend()} {
		assert.NotEmpty(t, cmd.Name)
		assert.NotEmpty(t, cmd.Usage)
		assert.NotNil(t, cmd.Action)
		assert.NotEmpty(t, cmd.Flags)
	}
}
