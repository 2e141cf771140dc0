package crud

import "github.com/satishbabariya/pgcrud/query/sqlgen"

// ErrorMode decides how an entry point reports a failure.
type ErrorMode int

const (
	// ModeReturn returns the *Error as the error result. It is the default.
	ModeReturn ErrorMode = iota
	// ModePanic panics with the *Error instead of returning it.
	ModePanic
)

// Spec carries everything an entry point needs besides the handle.
type Spec struct {
	Fields     sqlgen.FieldMap
	Match      sqlgen.FieldMap
	Returning  []string
	OnConflict string
	Mode       ErrorMode
}

// Option is a function that configures a call.
type Option func(*Spec)

// Where adds equality conditions joined with AND.
func Where(match sqlgen.FieldMap) Option {
	return func(s *Spec) {
		s.Match = append(s.Match, match...)
	}
}

// Returning sets the columns to return. Use sqlgen.All for every column.
func Returning(columns ...string) Option {
	return func(s *Spec) {
		s.Returning = columns
	}
}

// OnConflict appends a trusted conflict clause, such as
// "ON CONFLICT (email) DO NOTHING", to an insert.
func OnConflict(clause string) Option {
	return func(s *Spec) {
		s.OnConflict = clause
	}
}

// WithErrorMode sets how failures are reported.
func WithErrorMode(mode ErrorMode) Option {
	return func(s *Spec) {
		s.Mode = mode
	}
}

// Panicking is shorthand for WithErrorMode(ModePanic).
func Panicking() Option {
	return WithErrorMode(ModePanic)
}
