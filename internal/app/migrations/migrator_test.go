package migrations

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	applied map[string]bool
	execs   []string
}

func (f *fakeRunner) Exec(_ context.Context, sql string, args ...any) error {
	f.execs = append(f.execs, strings.TrimSpace(sql))
	if strings.HasPrefix(sql, "INSERT INTO schema_migrations") {
		f.applied[args[0].(string)] = true
	}
	return nil
}

func (f *fakeRunner) Exists(_ context.Context, _ string, args ...any) (bool, error) {
	return f.applied[args[0].(string)], nil
}

func (f *fakeRunner) InTx(_ context.Context, fn func(Runner) error) error {
	return fn(f)
}

func TestMigrateFSAppliesInOrderOnce(t *testing.T) {
	fsys := fstest.MapFS{
		"002_second.sql": {Data: []byte("CREATE TABLE b ();")},
		"001_first.sql":  {Data: []byte("CREATE TABLE a ();")},
		"README.md":      {Data: []byte("ignored")},
	}
	runner := &fakeRunner{applied: map[string]bool{}}
	m := NewMigrator(runner)

	require.NoError(t, m.MigrateFS(context.Background(), fsys))

	var tables []string
	for _, stmt := range runner.execs {
		if strings.HasPrefix(stmt, "CREATE TABLE") && !strings.Contains(stmt, "schema_migrations") {
			tables = append(tables, stmt)
		}
	}
	assert.Equal(t, []string{"CREATE TABLE a ();", "CREATE TABLE b ();"}, tables)
	assert.True(t, runner.applied["001"])
	assert.True(t, runner.applied["002"])

	runner.execs = nil
	require.NoError(t, m.MigrateFS(context.Background(), fsys))
	assert.Len(t, runner.execs, 1, "only the tracking table statement runs again")
}

func TestEmbeddedSchemaDefinesTables(t *testing.T) {
	content, err := schemaFS.ReadFile("sql/001_init.sql")
	require.NoError(t, err)

	for _, table := range []string{"students", "subjects", "classrooms", "classroom_students", "attendance_records"} {
		assert.Contains(t, string(content), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
	assert.Contains(t, string(content), "PRIMARY KEY (classroom_id, student_id)")
}

func TestGormSQLPlaceholders(t *testing.T) {
	assert.Equal(t, "VALUES (?, ?)", gormSQL("VALUES ($1, $2)", []any{1, 2}))
}
