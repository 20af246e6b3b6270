package cmd

import (
	"testing"

	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRootCmd_Exists verifies the root command is configured.
func TestRootCmd_Exists(t *testing.T) {
	require.NotNil(t, rootCmd, "Root command should exist")
	assert.Equal(t, "parkphotos", rootCmd.Use,
		"Command name should be parkphotos")
	assert.True(t, rootCmd.SilenceUsage,
		"Usage should be silenced on errors")
}

// TestRootCmd_HasSubcommands verifies every stage is registered.
func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	stages := []string{
		"download", "combine", "match", "resize", "features",
		"scenes", "objects", "join", "reduce", "stats", "plot",
	}
	for _, s := range stages {
		assert.True(t, names[s], "stage %q should be registered", s)
	}
}

// TestStatsCmd_HasSubcommands verifies the tests are registered.
func TestStatsCmd_HasSubcommands(t *testing.T) {
	statsCmd := getStatsCmd()

	names := make(map[string]bool)
	for _, c := range statsCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["objects"])
	assert.True(t, names["scenes"])
	assert.True(t, names["permanova"])
}

// TestGetDownloadCmd_Flags verifies the required flags exist.
func TestGetDownloadCmd_Flags(t *testing.T) {
	cmd := getDownloadCmd()
	require.NotNil(t, cmd.RunE, "RunE should be set")

	for _, f := range []string{"in", "images", "out"} {
		assert.NotNil(t, cmd.Flags().Lookup(f),
			"--%s flag should exist", f)
	}
}

// TestGetReduceCmd_Defaults verifies the scatter defaults.
func TestGetReduceCmd_Defaults(t *testing.T) {
	cmd := getReduceCmd()

	colorBy := cmd.Flags().Lookup("color-by")
	require.NotNil(t, colorBy)
	assert.Equal(t, "origin", colorBy.DefValue)

	plot := cmd.Flags().Lookup("plot")
	require.NotNil(t, plot)
	assert.Empty(t, plot.DefValue)
}

// TestGetReduceCmd_TunableFlags verifies the projection tunables are
// exposed with their shorthands.
func TestGetReduceCmd_TunableFlags(t *testing.T) {
	cmd := getReduceCmd()

	shorthands := map[string]string{
		"components": "c",
		"neighbors":  "n",
		"min-dist":   "d",
		"seed":       "r",
	}
	for name, sh := range shorthands {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, "--%s flag should exist", name)
		assert.Equal(t, sh, f.Shorthand)
	}
}

// TestReduceFlagOpts verifies only explicitly set tunables override
// the configuration.
func TestReduceFlagOpts(t *testing.T) {
	cmd := getReduceCmd()
	require.NoError(t, cmd.Flags().Set("neighbors", "40"))
	require.NoError(t, cmd.Flags().Set("seed", "7"))

	testCfg := config.New()
	testCfg.Update(reduceFlagOpts(cmd))

	assert.Equal(t, 40, testCfg.Reduce.Neighbors)
	assert.Equal(t, int64(7), testCfg.Reduce.Seed)

	// untouched flags keep the configured values
	assert.Equal(t, 2, testCfg.Reduce.Components)
	assert.Equal(t, 0.0, testCfg.Reduce.MinDist)
}

// TestGetFeaturesCmd_BatchSizeFlag verifies the batch-size override.
func TestGetFeaturesCmd_BatchSizeFlag(t *testing.T) {
	cmd := getFeaturesCmd()

	f := cmd.Flags().Lookup("batch-size")
	require.NotNil(t, f)
	assert.Equal(t, "b", f.Shorthand)
}
