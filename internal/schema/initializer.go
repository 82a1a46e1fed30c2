package schema

import (
	"context"
	"fmt"

	"apartment-manager/internal/config"
	"apartment-manager/internal/database"
)

// Executor is the subset of database.Executor the schema needs.
type Executor interface {
	Execute(ctx context.Context, stmt string, args ...any) (*database.Result, error)
	Dialect() string
}

type TableStatus struct {
	Name   string
	Exists bool
}

// Ensure creates any missing table. Running it again is a no-op.
func Ensure(ctx context.Context, exec Executor) error {
	for _, table := range Tables() {
		if _, err := exec.Execute(ctx, table.CreateStatement(exec.Dialect())); err != nil {
			return fmt.Errorf("failed to create %s table: %w", table.Name, err)
		}
	}
	return nil
}

// Status reports which of the leasing tables exist.
func Status(ctx context.Context, exec Executor) ([]TableStatus, error) {
	query := "SELECT name FROM sqlite_master WHERE type = 'table' AND lower(name) = lower(?)"
	if exec.Dialect() == config.DriverPostgres {
		query = "SELECT table_name AS name FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = lower(?)"
	}

	statuses := make([]TableStatus, 0, len(Tables()))
	for _, table := range Tables() {
		res, err := exec.Execute(ctx, query, table.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up %s table: %w", table.Name, err)
		}
		statuses = append(statuses, TableStatus{Name: table.Name, Exists: len(res.Rows) > 0})
	}
	return statuses, nil
}
