package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apartment-manager/internal/commands"
)

func TestRootCmd(t *testing.T) {
	cmd := commands.NewRootCmd()
	assert.Equal(t, "apartment-manager", cmd.Use)

	for _, name := range []string{"db-driver", "db-path", "debug", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), name)
	}

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "init", "status", "export"}, names)
}

func TestServeCmd(t *testing.T) {
	cmd := commands.ServeCmd()
	assert.Equal(t, "serve", cmd.Use)
	assert.Equal(t, "Create missing tables and serve the leasing pages", cmd.Short)

	port := cmd.Flags().Lookup("port")
	require.NotNil(t, port)
	assert.Equal(t, "5009", port.DefValue)
}

func TestInitCmd(t *testing.T) {
	cmd := commands.InitCmd()
	assert.Equal(t, "init", cmd.Use)
	assert.Equal(t, "Create the Apartments, Tenants and Leases tables if missing", cmd.Short)
}

func TestStatusCmd(t *testing.T) {
	cmd := commands.StatusCmd()
	assert.Equal(t, "status", cmd.Use)
	assert.Equal(t, "Show which leasing tables exist", cmd.Short)
}

func TestExportCmd(t *testing.T) {
	cmd := commands.ExportCmd()
	assert.Equal(t, "export", cmd.Use)

	out := cmd.Flags().Lookup("out")
	require.NotNil(t, out)
	assert.Equal(t, "apartments.xlsx", out.DefValue)
	assert.Equal(t, "o", out.Shorthand)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"APARTMENTS_DB_DRIVER", "APARTMENTS_DB_PATH", "DATABASE_URL", "APARTMENTS_FOREIGN_KEYS", "APARTMENTS_PORT", "APARTMENTS_DEBUG", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitStatusExport(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "database", "apartment_management.db")

	out, err := run(t, "status", "--db-path", dbPath, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(out, "Missing"), out)
	assert.Contains(t, out, "does not exist")
	_, err = os.Stat(filepath.Dir(dbPath))
	assert.True(t, os.IsNotExist(err), "status must not create the database directory")

	out, err = run(t, "init", "--db-path", dbPath, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Schema initialized successfully (sqlite)")

	out, err = run(t, "status", "--db-path", dbPath, "--log-level", "error")
	require.NoError(t, err)
	for _, table := range []string{"Apartments", "Tenants", "Leases"} {
		assert.Contains(t, out, table)
	}
	assert.Equal(t, 3, strings.Count(out, "Present"), out)

	xlsx := filepath.Join(dir, "out.xlsx")
	out, err = run(t, "export", "--db-path", dbPath, "--log-level", "error", "--out", xlsx)
	require.NoError(t, err)
	assert.Contains(t, out, xlsx)

	info, err := os.Stat(xlsx)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}

func TestUnsupportedDriver(t *testing.T) {
	clearEnv(t)

	_, err := run(t, "status", "--db-driver", "mysql", "--db-path", filepath.Join(t.TempDir(), "x.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
