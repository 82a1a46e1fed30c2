package commands

import (
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subcommand(t *testing.T, name string, args ...string) *cobra.Command {
	t.Helper()
	root := NewRootCmd()
	cmd, _, err := root.Find([]string{name})
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestLoadConfig_DebugFlagOverridesEnvironment(t *testing.T) {
	t.Setenv("APARTMENTS_DEBUG", "true")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")
	dbPath := filepath.Join(t.TempDir(), "apartment_management.db")

	cfg, err := loadConfig(subcommand(t, "status", "--debug=false", "--db-path", dbPath))
	require.NoError(t, err)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, dbPath, cfg.Database.Path)
}

func TestLoadConfig_LogFlagsWinOverDebug(t *testing.T) {
	t.Setenv("APARTMENTS_DEBUG", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := loadConfig(subcommand(t, "serve", "--debug", "--log-level", "warn", "--port", "8090"))
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 8090, cfg.Port)
}
