package catalog

import (
	"context"
	"database/sql"
	"time"

	"draftkit/internal/catalog/db"
	"draftkit/internal/draft"
	"draftkit/lib/sqliteutil"
)

// Store records extraction runs in a sqlite database.
type Store struct {
	db  *sql.DB
	qry *db.Queries
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:  database,
		qry: db.New(database),
	}
}

// Open opens the catalog database at `path`, creating its tables.
func Open(path string) (Store, error) {
	database, err := sqliteutil.OpenDB(db.Schema, path)
	if err != nil {
		return Store{}, err
	}
	return NewStore(database), nil
}

func (s Store) Close() error {
	return s.db.Close()
}

type Run struct {
	Source    string
	Layout    string
	OutputDir string
	Time      time.Time
	Result    draft.Result
}

// Record stores a run with its written entries and missing assets in a
// single transaction, returning the run id.
func (s Store) Record(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	runID, err := txqry.CreateRun(ctx, db.CreateRunParams{
		Source:    run.Source,
		Layout:    run.Layout,
		OutputDir: run.OutputDir,
		CreatedAt: run.Time.Unix(),
	})
	if err != nil {
		return 0, err
	}

	for _, e := range run.Result.Entries {
		err := txqry.CreateEntry(ctx, db.CreateEntryParams{
			RunID: runID,
			Idx:   int64(e.Index),
			Name:  e.Name,
			Path:  e.Path,
		})
		if err != nil {
			return 0, err
		}
	}
	for _, m := range run.Result.Missing {
		err := txqry.CreateMissingAsset(ctx, db.CreateMissingAssetParams{
			RunID:      runID,
			EntryIdx:   int64(m.Entry),
			Name:       m.Name,
			Src:        m.Src,
			Filename:   m.Filename,
			Suggestion: m.Suggestion,
		})
		if err != nil {
			return 0, err
		}
	}

	return runID, tx.Commit()
}

type RunSummary struct {
	ID            int64
	Source        string
	Layout        string
	OutputDir     string
	Time          time.Time
	Entries       int
	MissingAssets int
}

// Runs returns the latest `limit` runs, newest first.
func (s Store) Runs(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := s.qry.GetRuns(ctx, int64(limit))
	if err != nil {
		return nil, err
	}
	out := make([]RunSummary, len(rows))
	for i, r := range rows {
		out[i] = RunSummary{
			ID:            r.ID,
			Source:        r.Source,
			Layout:        r.Layout,
			OutputDir:     r.OutputDir,
			Time:          time.Unix(r.CreatedAt, 0),
			Entries:       int(r.EntryCount),
			MissingAssets: int(r.MissingAssets),
		}
	}
	return out, nil
}

func (s Store) MissingAssets(ctx context.Context, runID int64) ([]draft.MissingAsset, error) {
	rows, err := s.qry.GetRunMissingAssets(ctx, runID)
	if err != nil {
		return nil, err
	}
	out := make([]draft.MissingAsset, len(rows))
	for i, r := range rows {
		out[i] = draft.MissingAsset{
			Entry:      int(r.EntryIdx),
			Name:       r.Name,
			Src:        r.Src,
			Filename:   r.Filename,
			Suggestion: r.Suggestion,
		}
	}
	return out, nil
}
