// Package crud exposes validated create, read, update and delete calls that
// build a parameterized statement and run it on a database handle.
//
// Table and column names are interpolated into the SQL text and must never
// come from untrusted input. Values are always bound as $n parameters.
//
// Every failure, whether caught by validation or reported by the driver, is
// an *Error. By default it is returned; with Panicking() it is raised instead.
package crud

import (
	"context"
	"errors"

	"github.com/satishbabariya/pgcrud/query/executor"
	"github.com/satishbabariya/pgcrud/query/sqlgen"
)

// Result is the driver's response to a statement.
type Result = executor.Result

// Handle is the database capability a call runs on.
type Handle = executor.Handle

// Create inserts fields into table. An empty field map inserts a row of
// defaults. Accepts Returning, OnConflict and WithErrorMode; a Where
// condition is rejected as KindInvalidMatchFieldShape.
func Create(ctx context.Context, h Handle, table string, fields sqlgen.FieldMap, opts ...Option) (*Result, error) {
	spec := newSpec(opts)
	spec.Fields = fields
	return Run(ctx, h, sqlgen.Insert, table, spec)
}

// Read selects the returning columns from table. The list must not be
// empty; pass sqlgen.All to select every column. Accepts Where and
// WithErrorMode; OnConflict is rejected as KindInvalidFieldShape.
func Read(ctx context.Context, h Handle, table string, returning []string, opts ...Option) (*Result, error) {
	spec := newSpec(opts)
	spec.Returning = returning
	return Run(ctx, h, sqlgen.Select, table, spec)
}

// Update sets fields on the rows of table matching Where, or on every row
// when no condition is given. Accepts Where, Returning and WithErrorMode;
// OnConflict is rejected as KindInvalidFieldShape.
func Update(ctx context.Context, h Handle, table string, fields sqlgen.FieldMap, opts ...Option) (*Result, error) {
	spec := newSpec(opts)
	spec.Fields = fields
	return Run(ctx, h, sqlgen.Update, table, spec)
}

// Delete removes the rows of table matching Where. Without a condition it
// removes every row. Accepts Where, Returning and WithErrorMode;
// OnConflict is rejected as KindInvalidFieldShape.
func Delete(ctx context.Context, h Handle, table string, opts ...Option) (*Result, error) {
	return Run(ctx, h, sqlgen.Delete, table, newSpec(opts))
}

// Run validates spec, builds the statement for op and executes it once.
// Parts of spec that op does not use (Match on insert, Fields on select or
// delete, OnConflict outside insert) are validation errors.
func Run(ctx context.Context, h Handle, op sqlgen.Operation, table string, spec Spec) (*Result, error) {
	if verr := validate(op, h, table, &spec); verr != nil {
		return fail(spec.Mode, verr)
	}

	q, err := sqlgen.Build(op, table, spec.Fields, spec.Match, spec.Returning, spec.OnConflict)
	if err != nil {
		kind := KindInvalidOperation
		if errors.Is(err, sqlgen.ErrMissingReturnFields) {
			kind = KindMissingReturnFields
		}
		return fail(spec.Mode, newError(kind, opName(op), table, err.Error(), err))
	}

	res, err := executor.Execute(ctx, h, q)
	if err != nil {
		msg := err.Error()
		var execErr *executor.ExecError
		if errors.As(err, &execErr) {
			msg = execErr.Cause.Error()
		}
		return fail(spec.Mode, newError(KindExecutionFailure, opName(op), table, msg, err))
	}

	return res, nil
}

// opName names op after the entry point that issues it.
func opName(op sqlgen.Operation) string {
	switch op {
	case sqlgen.Insert:
		return "create"
	case sqlgen.Select:
		return "read"
	}
	return string(op)
}

func newSpec(opts []Option) Spec {
	var spec Spec
	for _, opt := range opts {
		opt(&spec)
	}
	return spec
}

func fail(mode ErrorMode, err *Error) (*Result, error) {
	if mode == ModePanic {
		panic(err)
	}
	return nil, err
}
