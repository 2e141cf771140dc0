// Package executor runs generated statements against a database handle.
package executor

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"reflect"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/satishbabariya/pgcrud/internal/debug"
	"github.com/satishbabariya/pgcrud/query/sqlgen"
)

// Handle is the driver capability a statement runs on. *sql.DB, *sql.Tx,
// *sql.Conn and *sqlx.DB all satisfy it.
type Handle interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Result is what the driver handed back, unchanged apart from []byte values
// being exposed as strings.
type Result struct {
	Columns      []string
	Rows         []map[string]interface{}
	RowsAffected int64
}

// Execute runs q on h exactly once. Statements that produce rows go through
// QueryContext; everything else through ExecContext so the affected row
// count is known. Failures come back as *ExecError.
func Execute(ctx context.Context, h Handle, q *sqlgen.Query) (*Result, error) {
	start := time.Now()
	args := bindArgs(q.Args)

	var (
		res *Result
		err error
	)
	if q.Returning {
		res, err = queryRows(ctx, h, q.SQL, args)
	} else {
		res, err = execStatement(ctx, h, q.SQL, args)
	}

	debug.Debug("statement executed",
		"operation", q.Operation,
		"sql", q.SQL,
		"argc", len(args),
		"duration", time.Since(start),
		"error", err,
	)

	if err != nil {
		return nil, &ExecError{SQL: q.SQL, Cause: err}
	}
	return res, nil
}

func queryRows(ctx context.Context, h Handle, query string, args []interface{}) (*Result, error) {
	rows, err := h.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	res := &Result{Columns: columns, Rows: []map[string]interface{}{}}
	for rows.Next() {
		row := make(map[string]interface{}, len(columns))
		if err := sqlx.MapScan(rows, row); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for col, val := range row {
			if b, ok := val.([]byte); ok {
				row[col] = string(b)
			}
		}
		res.Rows = append(res.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	res.RowsAffected = int64(len(res.Rows))
	return res, nil
}

func execStatement(ctx context.Context, h Handle, query string, args []interface{}) (*Result, error) {
	sqlRes, err := h.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	affected, err := sqlRes.RowsAffected()
	if err != nil {
		// not every driver reports it
		affected = -1
	}

	return &Result{RowsAffected: affected}, nil
}

// bindArgs wraps slices with pq.Array so they bind as PostgreSQL arrays.
// Byte slices, named ones such as json.RawMessage included, bind as bytes.
func bindArgs(args []interface{}) []interface{} {
	if len(args) == 0 {
		return nil
	}

	bound := make([]interface{}, len(args))
	for i, arg := range args {
		bound[i] = arg
		switch arg.(type) {
		case nil, []byte, driver.Valuer:
			continue
		}
		t := reflect.TypeOf(arg)
		switch t.Kind() {
		case reflect.Slice:
			if t.Elem().Kind() != reflect.Uint8 {
				bound[i] = pq.Array(arg)
			}
		case reflect.Array:
			bound[i] = pq.Array(arg)
		}
	}
	return bound
}
