// Package sqlgen generates parameterized PostgreSQL statements from table
// names, ordered field maps and return lists.
//
// Table and column names are written into the SQL text as-is and must come
// from trusted code, never from user input. Only values are bound through
// $n placeholders.
package sqlgen

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidOperation is returned for an operation Build does not know.
	ErrInvalidOperation = errors.New("sqlgen: invalid operation")

	// ErrMissingReturnFields is returned for a select without return fields.
	ErrMissingReturnFields = errors.New("sqlgen: select requires return fields")
)

// Operation identifies the statement kind to generate.
type Operation string

const (
	Insert Operation = "insert"
	Select Operation = "select"
	Update Operation = "update"
	Delete Operation = "delete"
)

// Query represents a SQL query with arguments
type Query struct {
	SQL  string
	Args []interface{}

	Operation Operation
	// Returning is true when the statement produces rows.
	Returning bool
}

// Build generates the statement for op. Placeholders are numbered from $1 in
// the order their values appear in Args.
func Build(op Operation, table string, fields, match FieldMap, returning []string, onConflict string) (*Query, error) {
	var q *Query

	switch op {
	case Insert:
		q = buildInsert(table, fields, onConflict)
	case Select:
		if len(returning) == 0 {
			return nil, ErrMissingReturnFields
		}
		q = buildSelect(table, returning, match)
	case Update:
		q = buildUpdate(table, fields, match)
	case Delete:
		q = buildDelete(table, match)
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOperation, op)
	}

	q.Operation = op
	if op != Select && len(returning) > 0 {
		q.SQL += " RETURNING " + strings.Join(returning, ",")
		q.Returning = true
	}

	return q, nil
}

func buildInsert(table string, fields FieldMap, onConflict string) *Query {
	var parts []string
	var args []interface{}

	parts = append(parts, fmt.Sprintf("INSERT INTO %s", table))

	if len(fields) == 0 {
		parts = append(parts, "DEFAULT VALUES")
	} else {
		placeholders := make([]string, len(fields))
		for i, f := range fields {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args = append(args, f.Value)
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fields.Columns(), ",")))
		parts = append(parts, fmt.Sprintf("VALUES (%s)", strings.Join(placeholders, ",")))
	}

	if onConflict != "" {
		parts = append(parts, onConflict)
	}

	return &Query{
		SQL:  strings.Join(parts, " "),
		Args: args,
	}
}

func buildSelect(table string, columns []string, match FieldMap) *Query {
	var parts []string
	var args []interface{}
	argIndex := 1

	parts = append(parts, fmt.Sprintf("SELECT %s", strings.Join(columns, ",")))
	parts = append(parts, fmt.Sprintf("FROM %s", table))

	if len(match) > 0 {
		whereSQL, whereArgs := buildWhere(match, &argIndex)
		parts = append(parts, "WHERE "+whereSQL)
		args = append(args, whereArgs...)
	}

	return &Query{
		SQL:       strings.Join(parts, " "),
		Args:      args,
		Returning: true,
	}
}

func buildUpdate(table string, set, match FieldMap) *Query {
	var parts []string
	var args []interface{}
	argIndex := 1

	parts = append(parts, fmt.Sprintf("UPDATE %s", table))

	setParts := make([]string, 0, len(set))
	for _, f := range set {
		setParts = append(setParts, fmt.Sprintf("%s=$%d", f.Column, argIndex))
		args = append(args, f.Value)
		argIndex++
	}
	parts = append(parts, "SET "+strings.Join(setParts, ", "))

	// WHERE numbering continues after SET
	if len(match) > 0 {
		whereSQL, whereArgs := buildWhere(match, &argIndex)
		parts = append(parts, "WHERE "+whereSQL)
		args = append(args, whereArgs...)
	}

	return &Query{
		SQL:  strings.Join(parts, " "),
		Args: args,
	}
}

// buildDelete without a match map deletes every row in the table.
func buildDelete(table string, match FieldMap) *Query {
	var parts []string
	var args []interface{}
	argIndex := 1

	parts = append(parts, fmt.Sprintf("DELETE FROM %s", table))

	if len(match) > 0 {
		whereSQL, whereArgs := buildWhere(match, &argIndex)
		parts = append(parts, "WHERE "+whereSQL)
		args = append(args, whereArgs...)
	}

	return &Query{
		SQL:  strings.Join(parts, " "),
		Args: args,
	}
}

// buildWhere joins equality conditions with AND, numbering placeholders from
// *argIndex and advancing it past the last one used.
func buildWhere(match FieldMap, argIndex *int) (string, []interface{}) {
	conditions := make([]string, 0, len(match))
	args := make([]interface{}, 0, len(match))

	for _, f := range match {
		conditions = append(conditions, fmt.Sprintf("%s=$%d", f.Column, *argIndex))
		args = append(args, f.Value)
		(*argIndex)++
	}

	return strings.Join(conditions, " AND "), args
}
