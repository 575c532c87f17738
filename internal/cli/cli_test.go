package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, sub := range root.Commands() {
		names = append(names, sub.Name())
	}

	for _, want := range []string{"report", "disable", "move", "reset-passwords", "sync-groups", "check"} {
		assert.Contains(t, names, want)
	}
}

func TestMoveRequiresTarget(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"move"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--target is required")
}

func TestDiscoveryFlagDefaults(t *testing.T) {
	root := newRootCmd()
	report, _, err := root.Find([]string{"report"})
	require.NoError(t, err)

	days, err := report.Flags().GetInt("days")
	require.NoError(t, err)
	assert.Equal(t, 90, days)

	kind, err := report.Flags().GetString("kind")
	require.NoError(t, err)
	assert.Equal(t, "user", kind)
}
