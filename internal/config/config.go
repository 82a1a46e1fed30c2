package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	DefaultPort = 5009

	defaultLogLevel  = "info"
	defaultLogFormat = "json"
	debugLogLevel    = "debug"
	debugLogFormat   = "console"
)

// Database describes where the leasing records live.
type Database struct {
	Driver      string
	Path        string
	URL         string
	ForeignKeys bool
	Debug       bool
}

type Config struct {
	Database  Database
	Port      int
	Debug     bool
	LogLevel  string
	LogFormat string
}

// Load reads .env (if present) and the environment on top of the defaults.
// CLI flags are applied afterwards by the caller.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if driver := os.Getenv("APARTMENTS_DB_DRIVER"); driver != "" {
		cfg.Database.Driver = strings.ToLower(driver)
	}
	if path := os.Getenv("APARTMENTS_DB_PATH"); path != "" {
		cfg.Database.Path = path
	}
	cfg.Database.URL = os.Getenv("DATABASE_URL")

	if fk := os.Getenv("APARTMENTS_FOREIGN_KEYS"); fk != "" {
		v, err := strconv.ParseBool(fk)
		if err != nil {
			return nil, fmt.Errorf("invalid APARTMENTS_FOREIGN_KEYS %q: %w", fk, err)
		}
		cfg.Database.ForeignKeys = v
	}
	if port := os.Getenv("APARTMENTS_PORT"); port != "" {
		v, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid APARTMENTS_PORT %q: %w", port, err)
		}
		cfg.Port = v
	}
	if debug := os.Getenv("APARTMENTS_DEBUG"); debug != "" {
		v, err := strconv.ParseBool(debug)
		if err != nil {
			return nil, fmt.Errorf("invalid APARTMENTS_DEBUG %q: %w", debug, err)
		}
		cfg.SetDebug(v)
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.LogFormat = format
	}

	return cfg, nil
}

func Default() *Config {
	return &Config{
		Database: Database{
			Driver: DriverSQLite,
			Path:   DefaultDBPath(),
		},
		Port:      DefaultPort,
		LogLevel:  defaultLogLevel,
		LogFormat: defaultLogFormat,
	}
}

// SetDebug toggles verbose errors, SQL tracing and console logging.
// Turning debug off reverts the log settings debug had switched on.
func (c *Config) SetDebug(debug bool) {
	c.Debug = debug
	c.Database.Debug = debug
	if debug {
		c.LogLevel = debugLogLevel
		c.LogFormat = debugLogFormat
		return
	}
	if c.LogLevel == debugLogLevel {
		c.LogLevel = defaultLogLevel
	}
	if c.LogFormat == debugLogFormat {
		c.LogFormat = defaultLogFormat
	}
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path must be set for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL not set in environment or .env file")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// DefaultDBPath resolves database/apartment_management.db next to the
// running executable, falling back to the working directory.
func DefaultDBPath() string {
	dir := "."
	if exe, err := os.Executable(); err == nil {
		dir = filepath.Dir(exe)
	}
	return filepath.Join(dir, "database", "apartment_management.db")
}
