package crud

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"

	"github.com/satishbabariya/pgcrud/query/executor"
	"github.com/satishbabariya/pgcrud/query/sqlgen"
)

func validate(op sqlgen.Operation, h executor.Handle, table string, spec *Spec) *Error {
	name := opName(op)

	if isNil(h) {
		return newError(KindInvalidHandle, name, table, "database handle is nil", nil)
	}

	if strings.TrimSpace(table) == "" {
		return newError(KindInvalidTableName, name, table, "table name is empty", nil)
	}

	if verr := checkApplicable(op, name, table, spec); verr != nil {
		return verr
	}

	if op == sqlgen.Update && len(spec.Fields) == 0 {
		return newError(KindInvalidFieldShape, name, table, "update needs at least one field to set", nil)
	}
	if msg := checkFieldMap(spec.Fields); msg != "" {
		return newError(KindInvalidFieldShape, name, table, msg, nil)
	}

	if msg := checkFieldMap(spec.Match); msg != "" {
		return newError(KindInvalidMatchFieldShape, name, table, msg, nil)
	}

	for i, col := range spec.Returning {
		if strings.TrimSpace(col) == "" {
			return newError(KindInvalidReturnFieldShape, name, table,
				fmt.Sprintf("return field %d is empty", i), nil)
		}
	}

	if op == sqlgen.Select && len(spec.Returning) == 0 {
		return newError(KindMissingReturnFields, name, table,
			`read needs return fields; pass sqlgen.All for "*"`, sqlgen.ErrMissingReturnFields)
	}

	return nil
}

// checkApplicable rejects parts of spec that op would otherwise ignore.
func checkApplicable(op sqlgen.Operation, name, table string, spec *Spec) *Error {
	switch op {
	case sqlgen.Insert:
		if len(spec.Match) > 0 {
			return newError(KindInvalidMatchFieldShape, name, table, "create takes no match fields", nil)
		}
	case sqlgen.Select, sqlgen.Delete:
		if len(spec.Fields) > 0 {
			return newError(KindInvalidFieldShape, name, table, name+" takes no fields", nil)
		}
	}

	if op != sqlgen.Insert && spec.OnConflict != "" {
		return newError(KindInvalidFieldShape, name, table, "a conflict clause applies only to create", nil)
	}
	return nil
}

// checkFieldMap returns a description of the first defect in fm, or "".
func checkFieldMap(fm sqlgen.FieldMap) string {
	seen := make(map[string]struct{}, len(fm))

	for i, f := range fm {
		if strings.TrimSpace(f.Column) == "" {
			return fmt.Sprintf("column %d has an empty name", i)
		}
		if _, dup := seen[f.Column]; dup {
			return fmt.Sprintf("column %q appears more than once", f.Column)
		}
		seen[f.Column] = struct{}{}

		if !bindable(f.Value) {
			return fmt.Sprintf("column %q has an unbindable %T value", f.Column, f.Value)
		}
	}

	return ""
}

// bindable reports whether v is a scalar or array value a driver can bind.
func bindable(v interface{}) bool {
	if v == nil {
		return true
	}
	if _, ok := v.(driver.Valuer); ok {
		return true
	}

	switch reflect.TypeOf(v).Kind() {
	case reflect.Func, reflect.Chan, reflect.Map, reflect.UnsafePointer,
		reflect.Complex64, reflect.Complex128:
		return false
	}
	return true
}

// isNil catches typed nils such as (*sql.DB)(nil) stored in the interface.
func isNil(h executor.Handle) bool {
	if h == nil {
		return true
	}
	v := reflect.ValueOf(h)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
