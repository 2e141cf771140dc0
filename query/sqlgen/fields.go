package sqlgen

import (
	"fmt"
	"sort"
)

// All is the wildcard return list. Reads must ask for it explicitly.
var All = []string{"*"}

// Field is a single column/value pair.
type Field struct {
	Column string
	Value  interface{}
}

// FieldMap is an ordered set of column/value pairs. Order decides the
// placeholder numbering of the generated SQL.
type FieldMap []Field

// Fields builds a FieldMap from alternating column/value arguments:
//
//	sqlgen.Fields("email", "a@example.com", "age", 42)
//
// It panics when given an odd number of arguments or a non-string column,
// which is always a programming error.
func Fields(pairs ...interface{}) FieldMap {
	if len(pairs)%2 != 0 {
		panic("sqlgen: Fields requires column/value pairs")
	}

	fm := make(FieldMap, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		col, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("sqlgen: column at position %d is %T, not string", i, pairs[i]))
		}
		fm = append(fm, Field{Column: col, Value: pairs[i+1]})
	}
	return fm
}

// FromMap converts a plain map into a FieldMap. Columns are sorted so the
// result does not depend on Go's map iteration order.
func FromMap(m map[string]interface{}) FieldMap {
	cols := make([]string, 0, len(m))
	for col := range m {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	fm := make(FieldMap, 0, len(cols))
	for _, col := range cols {
		fm = append(fm, Field{Column: col, Value: m[col]})
	}
	return fm
}

// Set returns a copy of fm with col bound to value. An existing column
// keeps its position; a new one is appended. fm itself is never modified,
// so one base map can seed several derived ones.
func (fm FieldMap) Set(col string, value interface{}) FieldMap {
	out := make(FieldMap, len(fm), len(fm)+1)
	copy(out, fm)

	for i := range out {
		if out[i].Column == col {
			out[i].Value = value
			return out
		}
	}
	return append(out, Field{Column: col, Value: value})
}

// Columns returns the column names in order.
func (fm FieldMap) Columns() []string {
	cols := make([]string, len(fm))
	for i, f := range fm {
		cols[i] = f.Column
	}
	return cols
}

// Values returns the bound values in order.
func (fm FieldMap) Values() []interface{} {
	vals := make([]interface{}, len(fm))
	for i, f := range fm {
		vals[i] = f.Value
	}
	return vals
}
