package crud

import (
	"errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	KindInvalidHandle Kind = iota + 1
	KindInvalidTableName
	KindInvalidFieldShape
	KindInvalidReturnFieldShape
	KindInvalidMatchFieldShape
	KindMissingReturnFields
	KindInvalidOperation
	KindExecutionFailure
)

// Sentinel errors, one per Kind. An *Error matches its kind's sentinel with
// errors.Is.
var (
	ErrInvalidHandle           = errors.New("pgcrud: invalid database handle")
	ErrInvalidTableName        = errors.New("pgcrud: invalid table name")
	ErrInvalidFieldShape       = errors.New("pgcrud: invalid fields")
	ErrInvalidReturnFieldShape = errors.New("pgcrud: invalid return fields")
	ErrInvalidMatchFieldShape  = errors.New("pgcrud: invalid match fields")
	ErrMissingReturnFields     = errors.New("pgcrud: missing return fields")
	ErrInvalidOperation        = errors.New("pgcrud: invalid operation")
	ErrExecutionFailure        = errors.New("pgcrud: execution failure")
)

var kindSentinels = map[Kind]error{
	KindInvalidHandle:           ErrInvalidHandle,
	KindInvalidTableName:        ErrInvalidTableName,
	KindInvalidFieldShape:       ErrInvalidFieldShape,
	KindInvalidReturnFieldShape: ErrInvalidReturnFieldShape,
	KindInvalidMatchFieldShape:  ErrInvalidMatchFieldShape,
	KindMissingReturnFields:     ErrMissingReturnFields,
	KindInvalidOperation:        ErrInvalidOperation,
	KindExecutionFailure:        ErrExecutionFailure,
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindInvalidHandle:
		return "InvalidHandle"
	case KindInvalidTableName:
		return "InvalidTableName"
	case KindInvalidFieldShape:
		return "InvalidFieldShape"
	case KindInvalidReturnFieldShape:
		return "InvalidReturnFieldShape"
	case KindInvalidMatchFieldShape:
		return "InvalidMatchFieldShape"
	case KindMissingReturnFields:
		return "MissingReturnFields"
	case KindInvalidOperation:
		return "InvalidOperation"
	case KindExecutionFailure:
		return "ExecutionFailure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the single error type reported by every entry point, for
// validation and execution failures alike.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Op is the entry point: create, read, update or delete.
	Op string

	// Table is the table the call targeted.
	Table string

	// Message is the human-readable message. For execution failures it is
	// the driver's message.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("pgcrud: %s %s: %s", e.Op, e.Table, e.Message)
	}
	return fmt.Sprintf("pgcrud: %s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the sentinel of e.Kind.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsValidation reports whether err was raised before reaching the database.
func IsValidation(err error) bool {
	k := KindOf(err)
	return k != 0 && k != KindExecutionFailure
}

func newError(kind Kind, op, table, msg string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Table:   table,
		Message: msg,
		Cause:   cause,
	}
}
