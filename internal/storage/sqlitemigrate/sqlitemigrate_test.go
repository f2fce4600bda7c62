package sqlitemigrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func count(t *testing.T, db *sql.DB, query string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(query).Scan(&n))
	return n
}

func TestApply_RunsEachFileOnce(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	fsys := fstest.MapFS{
		"0002_more.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE b(id TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE b;")},
		"0001_init.sql": {Data: []byte("CREATE TABLE a(id TEXT PRIMARY KEY);")},
		"README.md":     {Data: []byte("not a migration")},
	}

	applied, err := Apply(ctx, db, fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_more.sql"}, applied)
	assert.Equal(t, 2, count(t, db, "SELECT COUNT(*) FROM schema_migrations"))
	assert.Equal(t, 1, count(t, db, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='b'"))

	applied, err = Apply(ctx, db, fsys)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestApply_FailedFileNotRecorded(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	_, err := Apply(ctx, db, fstest.MapFS{"0001_bad.sql": {Data: []byte("CREAT TABLE x(id INT);")}})
	require.Error(t, err)
	assert.Equal(t, 0, count(t, db, "SELECT COUNT(*) FROM schema_migrations"))

	applied, err := Apply(ctx, db, fstest.MapFS{"0001_bad.sql": {Data: []byte("CREATE TABLE x(id INT);")}})
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_bad.sql"}, applied)
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no markers", content: "SELECT 1;", want: "SELECT 1;"},
		{name: "up only", content: "-- +migrate Up\nSELECT 1;", want: "\nSELECT 1;"},
		{name: "up and down", content: "-- +migrate Up\nSELECT 1;\n-- +migrate Down\nSELECT 2;", want: "\nSELECT 1;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UpSection(tt.content))
		})
	}
}
