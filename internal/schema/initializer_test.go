package schema

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"apartment-manager/internal/config"
	"apartment-manager/internal/database"
)

func setupTestExecutor(t *testing.T) *database.Executor {
	provider := database.NewProvider(config.Database{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "apartment_management.db"),
	})
	return database.NewExecutor(provider, zap.NewNop())
}

func TestTables_Order(t *testing.T) {
	var names []string
	for _, table := range Tables() {
		names = append(names, table.Name)
	}
	assert.Equal(t, []string{"Apartments", "Tenants", "Leases"}, names)
}

func TestCreateStatement_Dialects(t *testing.T) {
	sqliteDDL := Tenants.CreateStatement(config.DriverSQLite)
	assert.True(t, strings.HasPrefix(sqliteDDL, "CREATE TABLE IF NOT EXISTS Tenants"))
	assert.Contains(t, sqliteDDL, "tenant_id INTEGER PRIMARY KEY")
	assert.Contains(t, sqliteDDL, "email TEXT NOT NULL UNIQUE")

	pgDDL := Leases.CreateStatement(config.DriverPostgres)
	assert.Contains(t, pgDDL, "lease_id INTEGER GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY")
	assert.Contains(t, pgDDL, "FOREIGN KEY (tenant_id) REFERENCES Tenants(tenant_id)")

	assert.Contains(t, Apartments.CreateStatement(config.DriverPostgres), "apartment_number INTEGER PRIMARY KEY")
}

func TestStatus_BeforeEnsure(t *testing.T) {
	exec := setupTestExecutor(t)

	statuses, err := Status(context.Background(), exec)
	require.NoError(t, err)
	require.Len(t, statuses, 3)
	for _, s := range statuses {
		assert.False(t, s.Exists, s.Name)
	}
}

func TestEnsure_Idempotent(t *testing.T) {
	ctx := context.Background()
	exec := setupTestExecutor(t)

	require.NoError(t, Ensure(ctx, exec))

	_, err := exec.Execute(ctx, "INSERT INTO Tenants (name, email, phone) VALUES (?, ?, ?)", "Ana", "ana@x.com", "555-0100")
	require.NoError(t, err)

	require.NoError(t, Ensure(ctx, exec))

	statuses, err := Status(ctx, exec)
	require.NoError(t, err)
	for _, s := range statuses {
		assert.True(t, s.Exists, s.Name)
	}

	res, err := exec.Execute(ctx, "SELECT COUNT(*) AS n FROM sqlite_master WHERE type = 'table'")
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Rows[0]["n"])

	res, err = exec.Execute(ctx, "SELECT name FROM Tenants")
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.EqualValues(t, "Ana", res.Rows[0]["name"])
}
