package database

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Result is what a successful statement produced. Rows is set for
// statements that return rows, RowsAffected for everything else.
type Result struct {
	Rows         []map[string]any
	RowsAffected int64
}

// Executor is the single path through which statements reach the store.
// Every call gets its own connection and transaction.
type Executor struct {
	conn   Connector
	logger *zap.Logger
}

func NewExecutor(conn Connector, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{conn: conn, logger: logger}
}

func (e *Executor) Dialect() string {
	return e.conn.Dialect()
}

// Execute runs stmt with positional ? parameters and commits.
func (e *Executor) Execute(ctx context.Context, stmt string, args ...any) (*Result, error) {
	result := &Result{}
	err := e.run(ctx, stmt, func(tx *gorm.DB) error {
		if returnsRows(stmt) {
			rows, err := scanRows(tx, stmt, args...)
			if err != nil {
				return err
			}
			result.Rows = rows
			return nil
		}

		res := tx.Exec(stmt, args...)
		if res.Error != nil {
			return res.Error
		}
		result.RowsAffected = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Select runs stmt like Execute and scans the rows into dest, which is a
// pointer to a struct or a slice of structs.
func (e *Executor) Select(ctx context.Context, dest any, stmt string, args ...any) error {
	return e.run(ctx, stmt, func(tx *gorm.DB) error {
		return tx.Raw(stmt, args...).Scan(dest).Error
	})
}

func (e *Executor) run(ctx context.Context, stmt string, fn func(tx *gorm.DB) error) error {
	db, err := e.conn.Open(ctx)
	if err != nil {
		e.logger.Error("failed to open database connection", zap.Error(err))
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}
	defer e.close(db)

	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		e.logger.Error("failed to begin transaction", zap.Error(tx.Error))
		return fmt.Errorf("%w: begin transaction: %w", ErrConnection, tx.Error)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			e.logger.Warn("rollback failed", zap.Error(rbErr))
		}
		stmtErr := newStatementError(stmt, err)
		e.logger.Error("statement failed",
			zap.String("statement", compact(stmt)),
			zap.Error(err),
		)
		return stmtErr
	}

	if err := tx.Commit().Error; err != nil {
		e.logger.Error("commit failed",
			zap.String("statement", compact(stmt)),
			zap.Error(err),
		)
		return newStatementError(stmt, err)
	}
	return nil
}

func (e *Executor) close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		e.logger.Warn("failed to get database handle", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		e.logger.Warn("failed to close database connection", zap.Error(err))
	}
}

// scanRows fetches every row as column name to value. Values are the
// driver's own types, with []byte turned into string.
func scanRows(tx *gorm.DB, stmt string, args ...any) ([]map[string]any, error) {
	rows, err := tx.Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, translate(tx, err)
	}

	result := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, translate(tx, err)
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(tx, err)
	}
	return result, nil
}

// translate maps driver errors the way gorm does for errors it sees itself.
func translate(tx *gorm.DB, err error) error {
	if t, ok := tx.Dialector.(gorm.ErrorTranslator); ok && tx.Config.TranslateError {
		return t.Translate(err)
	}
	return err
}

func returnsRows(stmt string) bool {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return false
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "WITH", "PRAGMA", "VALUES", "EXPLAIN":
		return true
	}
	for _, f := range fields {
		if strings.EqualFold(strings.TrimRight(f, ";"), "RETURNING") {
			return true
		}
	}
	return false
}

// compact squashes a multi-line statement onto one line for logging.
func compact(stmt string) string {
	return strings.Join(strings.Fields(stmt), " ")
}
