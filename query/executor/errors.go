package executor

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// Constraint violations recognised in driver errors. Match them with
// errors.Is on any error returned by Execute.
var (
	ErrUniqueViolation     = errors.New("unique constraint violation")
	ErrForeignKeyViolation = errors.New("foreign key constraint violation")
	ErrNotNullViolation    = errors.New("not null constraint violation")
	ErrCheckViolation      = errors.New("check constraint violation")
)

// ExecError is a failed driver call.
type ExecError struct {
	SQL   string
	Cause error
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	return fmt.Sprintf("query execution failed: %v", e.Cause)
}

// Unwrap returns the driver error.
func (e *ExecError) Unwrap() error {
	return e.Cause
}

// Is reports whether the driver error is the constraint violation target.
func (e *ExecError) Is(target error) bool {
	v := Violation(e.Cause)
	return v != nil && v == target
}

// Violation maps a PostgreSQL or SQLite driver error onto one of the
// constraint sentinels, or returns nil.
func Violation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return ErrUniqueViolation
		case "foreign_key_violation":
			return ErrForeignKeyViolation
		case "not_null_violation":
			return ErrNotNullViolation
		case "check_violation":
			return ErrCheckViolation
		}
		return nil
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrUniqueViolation
		case sqlite3.ErrConstraintForeignKey:
			return ErrForeignKeyViolation
		case sqlite3.ErrConstraintNotNull:
			return ErrNotNullViolation
		case sqlite3.ErrConstraintCheck:
			return ErrCheckViolation
		}
	}

	return nil
}
