package draftdb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"draftkit/lib/fsutil"
	"draftkit/lib/telemetry"
)

const report_database_load = "database.load"

var ErrNotFound = errors.New("draft item not found")

// Item is one fragment written by the extractor, served as a template by
// the draft pages.
type Item struct {
	ID       int
	Path     string
	Template string
}

// Database holds the fragments of a directory keyed by the numeric stem of
// their file name.
type Database struct {
	ids   []int
	items map[int]Item
}

// Load reads every `<id>.<ext>` file of `dir`. files whose stem is not an
// integer are skipped with a warning, as are later files whose stem parses
// to an id already loaded.
func Load(dir, ext string, tel telemetry.API) (Database, error) {
	tel = telemetry.NewScopedAPI("draftdb", tel)

	if _, err := os.Stat(dir); err != nil {
		return Database{}, err
	}
	names, err := fsutil.ListFiles(dir)
	if err != nil {
		return Database{}, err
	}

	db := Database{items: map[int]Item{}}
	suffix := "." + ext
	for _, name := range names {
		if !strings.HasSuffix(name, suffix) {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSuffix(name, suffix))
		if err != nil {
			tel.ReportWarning(report_database_load, "skipping non-numeric fragment", name)
			continue
		}
		// names come sorted, the first name for an id wins
		if existing, dup := db.items[id]; dup {
			tel.ReportWarning(report_database_load, "skipping duplicate fragment id", name, existing.Path)
			continue
		}

		path := filepath.Join(dir, name)
		contents, err := os.ReadFile(path)
		if err != nil {
			return Database{}, fmt.Errorf("read fragment %s: %w", path, err)
		}
		db.items[id] = Item{ID: id, Path: path, Template: string(contents)}
		db.ids = append(db.ids, id)
	}
	slices.Sort(db.ids)

	tel.ReportCount(report_database_load, int64(len(db.ids)))
	return db, nil
}

// ItemList returns every id, ascending.
func (db Database) ItemList() []int {
	return slices.Clone(db.ids)
}

func (db Database) Item(id int) (Item, error) {
	item, ok := db.items[id]
	if !ok {
		return Item{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return item, nil
}

func (db Database) Len() int {
	return len(db.ids)
}
