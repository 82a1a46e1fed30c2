// Package database opens connections to the leasing store and runs single
// statements against them.
package database

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"apartment-manager/internal/config"
)

// Connector hands out a new connection on every Open call. The caller owns
// the returned handle and must close it.
type Connector interface {
	Open(ctx context.Context) (*gorm.DB, error)
	Dialect() string
}

// Provider is the Connector backed by the configured sqlite file or
// postgres database. It does no pooling: each Open is a new physical
// connection.
type Provider struct {
	cfg config.Database
}

func NewProvider(cfg config.Database) *Provider {
	return &Provider{cfg: cfg}
}

func (p *Provider) Dialect() string {
	return p.cfg.Driver
}

func (p *Provider) Open(ctx context.Context) (*gorm.DB, error) {
	dialector, err := p.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError:         true,
		SkipDefaultTransaction: true,
		Logger:                 p.gormLogger(),
	})
	if err != nil {
		closeDB(db)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		closeDB(db)
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return db.WithContext(ctx), nil
}

// Exists reports whether the store is already there. A sqlite file that has
// not been created yet does not exist; other drivers always do.
func (p *Provider) Exists() (bool, error) {
	if p.cfg.Driver != config.DriverSQLite {
		return true, nil
	}
	_, err := os.Stat(p.cfg.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrConnection, err)
	}
	return true, nil
}

// closeDB releases whatever gorm.Open managed to open before failing.
func closeDB(db *gorm.DB) {
	if db == nil || db.ConnPool == nil {
		return
	}
	if closer, ok := db.ConnPool.(io.Closer); ok {
		_ = closer.Close()
	}
}

func (p *Provider) dialector() (gorm.Dialector, error) {
	switch p.cfg.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(p.cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		return sqlite.Open(SQLiteDSN(p.cfg.Path, p.cfg.ForeignKeys)), nil
	case config.DriverPostgres:
		if p.cfg.URL == "" {
			return nil, fmt.Errorf("DATABASE_URL not set in environment or .env file")
		}
		return postgres.Open(p.cfg.URL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", p.cfg.Driver)
	}
}

func (p *Provider) gormLogger() gormlogger.Interface {
	if p.cfg.Debug {
		return gormlogger.Default.LogMode(gormlogger.Info)
	}
	return gormlogger.Default.LogMode(gormlogger.Silent)
}

// SQLiteDSN builds the go-sqlite3 data source name. Foreign key enforcement
// is off unless asked for, matching sqlite's own default.
func SQLiteDSN(path string, foreignKeys bool) string {
	fk := "off"
	if foreignKeys {
		fk = "on"
	}
	return fmt.Sprintf("%s?_foreign_keys=%s", path, fk)
}
