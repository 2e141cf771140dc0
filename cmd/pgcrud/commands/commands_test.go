package commands

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satishbabariya/pgcrud/pkg/crud"
	"github.com/satishbabariya/pgcrud/query/sqlgen"
)

func TestParseAssignments(t *testing.T) {
	fm, err := parseAssignments([]string{
		"email=ann@example.com",
		"age:=31",
		"active:=true",
		"note:=null",
		"meta:={\"a\": 1}",
		"expr=a=b",
	})
	require.NoError(t, err)

	assert.Equal(t, sqlgen.FieldMap{
		{Column: "email", Value: "ann@example.com"},
		{Column: "age", Value: json.Number("31")},
		{Column: "active", Value: true},
		{Column: "note", Value: nil},
		{Column: "meta", Value: `{"a": 1}`},
		{Column: "expr", Value: "a=b"},
	}, fm)
}

func TestParseAssignments_Errors(t *testing.T) {
	for _, raw := range []string{"novalue", "=x", ":=1", "age:=", "age:=1 2", "age:={"} {
		t.Run(raw, func(t *testing.T) {
			_, err := parseAssignments([]string{raw})
			assert.Error(t, err)
		})
	}
}

func TestParseAssignments_Empty(t *testing.T) {
	fm, err := parseAssignments(nil)
	require.NoError(t, err)
	assert.Empty(t, fm)
}

func TestCommands_SQLite(t *testing.T) {
	t.Setenv("PGCRUD_DATABASE_URL", "")
	t.Setenv("DATABASE_URL", "")

	path := filepath.Join(t.TempDir(), "app.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT UNIQUE, age INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	run := func(args ...string) (string, error) {
		root := NewRootCommand("test", "none")
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(append(args, "--database-url", "file:"+path))
		err := root.Execute()
		return out.String(), err
	}

	out, err := run("create", "users", "--set", "email=ann@example.com", "--set", "age:=31", "--show-sql")
	require.NoError(t, err)
	assert.Contains(t, out, "INSERT INTO users (email,age) VALUES ($1,$2)")

	_, err = run("create", "users", "--set", "email=bob@example.com")
	require.NoError(t, err)

	_, err = run("update", "users", "--set", "age:=40", "--where", "email=bob@example.com")
	require.NoError(t, err)

	out, err = run("read", "users", "--returning", "id,email", "--where", "age:=40")
	require.NoError(t, err)
	assert.Contains(t, out, "bob@example.com")
	assert.NotContains(t, out, "ann@example.com")
	assert.Contains(t, out, "1 row(s)")

	out, err = run("update", "users")
	assert.EqualError(t, err, "update needs at least one --set column")
	assert.NotContains(t, out, "no --where given")

	_, err = run("read", "users")
	assert.Error(t, err, "--returning is required")

	out, err = run("delete", "users", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "2 row(s) affected")

	db, err = sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow("SELECT count(*) FROM users").Scan(&n))
	assert.Equal(t, 0, n)
}

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report(&buf, &crud.Result{RowsAffected: 3}))
	assert.Contains(t, buf.String(), "3 row(s) affected")

	buf.Reset()
	require.NoError(t, report(&buf, &crud.Result{
		Columns: []string{"id", "email"},
		Rows: []map[string]interface{}{
			{"id": int64(1), "email": "ann@example.com"},
			{"id": int64(2), "email": nil},
		},
		RowsAffected: 2,
	}))
	out := buf.String()
	assert.Contains(t, out, "email")
	assert.Contains(t, out, "ann@example.com")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "2 row(s)")
}
