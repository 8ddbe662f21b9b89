package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"draftkit/lib/sqliteutil"
)

// WriteFile writes `contents` to `dir/name`, creating parent directories.
func WriteFile(t testing.TB, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(path, []byte(contents), 0644)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

// ReadDir returns the contents of every regular file in `dir` keyed by
// file name.
func ReadDir(t testing.TB, dir string) map[string]string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]string{}
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		out[e.Name()] = string(contents)
	}
	return out
}

// AssetDir creates a directory holding an empty file for every name.
func AssetDir(t testing.TB, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		WriteFile(t, dir, name, "")
	}
	return dir
}

// OpenDB opens an in-memory sqlite database with `schema` applied, it is
// closed when the test ends.
func OpenDB(t testing.TB, schema string) *sql.DB {
	t.Helper()
	db, err := sqliteutil.OpenDB(schema, ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}
