package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"leaderboard", "breakdown", "recompute", "baseline", "import", "migrate", "serve"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "pool-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestImportCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range importCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["questions"])
	assert.True(t, names["predictions"])

	for _, flagName := range []string{"game", "file", "batch-size"} {
		assert.NotNil(t, importCmd.PersistentFlags().Lookup(flagName), "import should have --%s flag", flagName)
	}
}

func TestLeaderboardCommand_Flags(t *testing.T) {
	flag := leaderboardCmd.Flags().Lookup("format")
	require.NotNil(t, flag)
	assert.Equal(t, "table", flag.DefValue)

	for _, flagName := range []string{"game", "out", "chart", "top"} {
		assert.NotNil(t, leaderboardCmd.Flags().Lookup(flagName), "leaderboard should have --%s flag", flagName)
	}
}

func TestBaselineCommand_Flags(t *testing.T) {
	flag := baselineCmd.Flags().Lookup("refresh")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}
