package sqliteutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const schema = `create table if not exists fragment (
	id integer primary key,
	template text not null
);`

func TestOpenDBReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	db, err := OpenDB(schema, path)
	require.NoError(t, err)
	_, err = db.Exec("insert into fragment (id, template) values (0, '<div></div>')")
	require.NoError(t, err)

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	require.Equal(t, "wal", mode)
	require.NoError(t, db.Close())

	db, err = OpenDB(schema, path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow("select count(*) from fragment").Scan(&count))
	require.Equal(t, 1, count)
}

func TestOpenDBInvalidSchema(t *testing.T) {
	_, err := OpenDB("create tabel broken", ":memory:")
	require.Error(t, err)
}
