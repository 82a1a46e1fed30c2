package database

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrConnection means the store could not be reached at all.
	ErrConnection = errors.New("database connection failed")
	// ErrStatement matches every statement that ran and failed.
	ErrStatement = errors.New("statement failed")
	// ErrDuplicate is a unique or primary key violation.
	ErrDuplicate = errors.New("duplicate key")
	// ErrForeignKey is a foreign key violation; only reported when the
	// store enforces foreign keys.
	ErrForeignKey = errors.New("foreign key violation")
)

// StatementError is returned when a statement fails after the connection was
// established. The transaction has already been rolled back.
type StatementError struct {
	Statement string
	Kind      error
	Err       error
}

func newStatementError(stmt string, err error) *StatementError {
	e := &StatementError{Statement: stmt, Err: err}
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		e.Kind = ErrDuplicate
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		e.Kind = ErrForeignKey
	}
	return e
}

func (e *StatementError) Error() string {
	if e.Kind != nil {
		return fmt.Sprintf("%v: %v: %v", ErrStatement, e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrStatement, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

func (e *StatementError) Is(target error) bool {
	return target == ErrStatement || (e.Kind != nil && target == e.Kind)
}
