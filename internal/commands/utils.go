package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"apartment-manager/internal/config"
	"apartment-manager/internal/database"
	"apartment-manager/internal/logger"
)

const serviceName = "apartment-manager"

// app bundles what every command needs once flags have been applied.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	provider *database.Provider
	exec     *database.Executor
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		debug, _ := flags.GetBool("debug")
		cfg.SetDebug(debug)
	}
	if flags.Changed("db-driver") {
		cfg.Database.Driver, _ = flags.GetString("db-driver")
	}
	if flags.Changed("db-path") {
		cfg.Database.Path, _ = flags.GetString("db-path")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Lookup("port") != nil && flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	provider := database.NewProvider(cfg.Database)
	return &app{
		cfg:      cfg,
		logger:   log,
		provider: provider,
		exec:     database.NewExecutor(provider, log),
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}
