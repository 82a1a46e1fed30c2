package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"apartment-manager/internal/config"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=off", SQLiteDSN("a.db", false))
	assert.Equal(t, "a.db?_foreign_keys=on", SQLiteDSN("a.db", true))
}

func TestProvider_OpenFailureReturnsNoHandle(t *testing.T) {
	// A directory cannot be opened as a database file.
	provider := NewProvider(config.Database{Driver: config.DriverSQLite, Path: t.TempDir()})

	db, err := provider.Open(context.Background())
	require.Error(t, err)
	assert.Nil(t, db)
}

func TestCloseDB(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectClose()
	closeDB(db)
	assert.NoError(t, mock.ExpectationsWereMet())

	closeDB(nil)
}

func TestProvider_Exists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "database", "apartment_management.db")
	provider := NewProvider(config.Database{Driver: config.DriverSQLite, Path: path})

	exists, err := provider.Exists()
	require.NoError(t, err)
	assert.False(t, exists)
	_, err = os.Stat(filepath.Dir(path))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	db, err := provider.Open(context.Background())
	require.NoError(t, err)
	closeDB(db)

	exists, err = provider.Exists()
	require.NoError(t, err)
	assert.True(t, exists)

	pg := NewProvider(config.Database{Driver: config.DriverPostgres, URL: "postgres://localhost/apartments"})
	exists, err = pg.Exists()
	require.NoError(t, err)
	assert.True(t, exists)
}
