package sqlgen_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/satishbabariya/pgcrud/query/sqlgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name       string
		table      string
		op         sqlgen.Operation
		fields     sqlgen.FieldMap
		match      sqlgen.FieldMap
		returning  []string
		onConflict string
		wantSQL    string
		wantArgs   []interface{}
		wantRows   bool
	}{
		{
			name:    "insert default values",
			op:      sqlgen.Insert,
			wantSQL: "INSERT INTO users DEFAULT VALUES",
		},
		{
			name:     "insert columns",
			op:       sqlgen.Insert,
			fields:   sqlgen.Fields("email", "a@example.com", "age", 30),
			wantSQL:  "INSERT INTO users (email,age) VALUES ($1,$2)",
			wantArgs: []interface{}{"a@example.com", 30},
		},
		{
			name:       "insert with conflict and returning",
			op:         sqlgen.Insert,
			fields:     sqlgen.Fields("email", "a@example.com"),
			returning:  []string{"id", "email"},
			onConflict: "ON CONFLICT DO NOTHING",
			wantSQL:    "INSERT INTO users (email) VALUES ($1) ON CONFLICT DO NOTHING RETURNING id,email",
			wantArgs:   []interface{}{"a@example.com"},
			wantRows:   true,
		},
		{
			name:      "insert default values returning",
			op:        sqlgen.Insert,
			returning: sqlgen.All,
			wantSQL:   "INSERT INTO users DEFAULT VALUES RETURNING *",
			wantRows:  true,
		},
		{
			name:      "select all columns",
			op:        sqlgen.Select,
			returning: sqlgen.All,
			wantSQL:   "SELECT * FROM users",
			wantRows:  true,
		},
		{
			name:      "select with match",
			op:        sqlgen.Select,
			match:     sqlgen.Fields("email", "a@example.com", "active", true),
			returning: []string{"id", "name"},
			wantSQL:   "SELECT id,name FROM users WHERE email=$1 AND active=$2",
			wantArgs:  []interface{}{"a@example.com", true},
			wantRows:  true,
		},
		{
			name:      "update numbering continues into where",
			table:     "t",
			op:        sqlgen.Update,
			fields:    sqlgen.Fields("a", 1),
			match:     sqlgen.Fields("b", 2),
			returning: []string{"a"},
			wantSQL:   "UPDATE t SET a=$1 WHERE b=$2 RETURNING a",
			wantArgs:  []interface{}{1, 2},
			wantRows:  true,
		},
		{
			name:     "update several columns without match",
			op:       sqlgen.Update,
			fields:   sqlgen.Fields("name", "x", "age", 3),
			wantSQL:  "UPDATE users SET name=$1, age=$2",
			wantArgs: []interface{}{"x", 3},
		},
		{
			name:     "update several columns and conditions",
			op:       sqlgen.Update,
			fields:   sqlgen.Fields("name", "x", "age", 3),
			match:    sqlgen.Fields("id", 7, "org", "acme"),
			wantSQL:  "UPDATE users SET name=$1, age=$2 WHERE id=$3 AND org=$4",
			wantArgs: []interface{}{"x", 3, 7, "acme"},
		},
		{
			name:    "delete without match removes everything",
			table:   "t",
			op:      sqlgen.Delete,
			wantSQL: "DELETE FROM t",
		},
		{
			name:      "delete with match restarts numbering",
			op:        sqlgen.Delete,
			match:     sqlgen.Fields("id", 9, "org", "acme"),
			returning: []string{"id"},
			wantSQL:   "DELETE FROM users WHERE id=$1 AND org=$2 RETURNING id",
			wantArgs:  []interface{}{9, "acme"},
			wantRows:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := tt.table
			if table == "" {
				table = "users"
			}

			q, err := sqlgen.Build(tt.op, table, tt.fields, tt.match, tt.returning, tt.onConflict)
			require.NoError(t, err)

			assert.Equal(t, tt.wantSQL, q.SQL)
			if len(tt.wantArgs) == 0 {
				assert.Empty(t, q.Args)
			} else {
				assert.Equal(t, tt.wantArgs, q.Args)
			}
			assert.Equal(t, tt.op, q.Operation)
			assert.Equal(t, tt.wantRows, q.Returning)
		})
	}
}

func TestBuild_SelectRequiresReturnFields(t *testing.T) {
	q, err := sqlgen.Build(sqlgen.Select, "users", nil, sqlgen.Fields("id", 1), nil, "")
	require.ErrorIs(t, err, sqlgen.ErrMissingReturnFields)
	assert.Nil(t, q)

	_, err = sqlgen.Build(sqlgen.Select, "users", nil, nil, []string{}, "")
	assert.ErrorIs(t, err, sqlgen.ErrMissingReturnFields)
}

func TestBuild_InvalidOperation(t *testing.T) {
	for _, op := range []sqlgen.Operation{"", "upsert", "INSERT"} {
		t.Run(string(op), func(t *testing.T) {
			_, err := sqlgen.Build(op, "users", nil, nil, nil, "")
			assert.ErrorIs(t, err, sqlgen.ErrInvalidOperation)
		})
	}
}

func TestBuild_InsertPlaceholdersMatchValues(t *testing.T) {
	for n := 1; n <= 12; n++ {
		t.Run(fmt.Sprintf("%d columns", n), func(t *testing.T) {
			var fields sqlgen.FieldMap
			for i := 0; i < n; i++ {
				fields = fields.Set(fmt.Sprintf("c%d", i), i*10)
			}

			q, err := sqlgen.Build(sqlgen.Insert, "t", fields, nil, nil, "")
			require.NoError(t, err)

			assert.Equal(t, n, strings.Count(q.SQL, "$"))
			assert.Equal(t, fields.Values(), q.Args)
			for i := 1; i <= n; i++ {
				assert.Contains(t, q.SQL, fmt.Sprintf("$%d", i))
			}
		})
	}
}

// Every $k in the text must bind to Args[k-1], whatever the operation.
func TestBuild_PlaceholderAlignment(t *testing.T) {
	fields := sqlgen.Fields("a", "va", "b", "vb", "c", "vc")
	match := sqlgen.Fields("x", "vx", "y", "vy")

	for _, op := range []sqlgen.Operation{sqlgen.Select, sqlgen.Update, sqlgen.Delete} {
		t.Run(string(op), func(t *testing.T) {
			q, err := sqlgen.Build(op, "t", fields, match, sqlgen.All, "")
			require.NoError(t, err)
			require.NotEmpty(t, q.Args)

			for i, arg := range q.Args {
				col := strings.TrimPrefix(arg.(string), "v")
				assert.Contains(t, q.SQL, fmt.Sprintf("%s=$%d", col, i+1))
			}
			assert.NotContains(t, q.SQL, fmt.Sprintf("$%d", len(q.Args)+1))
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	fields := sqlgen.FromMap(map[string]interface{}{"z": 1, "a": 2, "m": 3})
	match := sqlgen.FromMap(map[string]interface{}{"id": 5, "org": "acme"})

	first, err := sqlgen.Build(sqlgen.Update, "t", fields, match, []string{"id"}, "")
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := sqlgen.Build(sqlgen.Update, "t", sqlgen.FromMap(map[string]interface{}{"z": 1, "a": 2, "m": 3}), match, []string{"id"}, "")
		require.NoError(t, err)
		assert.Equal(t, first.SQL, again.SQL)
		assert.Equal(t, first.Args, again.Args)
	}
	assert.Equal(t, "UPDATE t SET a=$1, m=$2, z=$3 WHERE id=$4 AND org=$5 RETURNING id", first.SQL)
}
