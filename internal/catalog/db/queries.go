// Package db holds the catalog schema and the queries of query.sql, written
// in the layout sqlc generates from sqlc.yaml and kept in step with it by hand.
package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Run struct {
	ID        int64
	Source    string
	Layout    string
	OutputDir string
	CreatedAt int64
}

type CreateRunParams struct {
	Source    string
	Layout    string
	OutputDir string
	CreatedAt int64
}

const createRun = `insert into run (source, layout, output_dir, created_at) values (?, ?, ?, ?) returning id`

func (q *Queries) CreateRun(ctx context.Context, arg CreateRunParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createRun, arg.Source, arg.Layout, arg.OutputDir, arg.CreatedAt)
	var id int64
	err := row.Scan(&id)
	return id, err
}

type CreateEntryParams struct {
	RunID int64
	Idx   int64
	Name  string
	Path  string
}

const createEntry = `insert into entry (run_id, idx, name, path) values (?, ?, ?, ?)`

func (q *Queries) CreateEntry(ctx context.Context, arg CreateEntryParams) error {
	_, err := q.db.ExecContext(ctx, createEntry, arg.RunID, arg.Idx, arg.Name, arg.Path)
	return err
}

type CreateMissingAssetParams struct {
	RunID      int64
	EntryIdx   int64
	Name       string
	Src        string
	Filename   string
	Suggestion string
}

const createMissingAsset = `insert into missing_asset (run_id, entry_idx, name, src, filename, suggestion) values (?, ?, ?, ?, ?, ?)`

func (q *Queries) CreateMissingAsset(ctx context.Context, arg CreateMissingAssetParams) error {
	_, err := q.db.ExecContext(
		ctx, createMissingAsset,
		arg.RunID, arg.EntryIdx, arg.Name, arg.Src, arg.Filename, arg.Suggestion,
	)
	return err
}

type GetRunsRow struct {
	ID            int64
	Source        string
	Layout        string
	OutputDir     string
	CreatedAt     int64
	EntryCount    int64
	MissingAssets int64
}

const getRuns = `select
    run.id, run.source, run.layout, run.output_dir, run.created_at,
    (select count(*) from entry where entry.run_id = run.id) as entry_count,
    (select count(*) from missing_asset where missing_asset.run_id = run.id) as missing_assets
from run
order by run.id desc
limit ?`

func (q *Queries) GetRuns(ctx context.Context, limit int64) ([]GetRunsRow, error) {
	rows, err := q.db.QueryContext(ctx, getRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GetRunsRow
	for rows.Next() {
		var i GetRunsRow
		err := rows.Scan(
			&i.ID, &i.Source, &i.Layout, &i.OutputDir, &i.CreatedAt,
			&i.EntryCount, &i.MissingAssets,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type MissingAsset struct {
	RunID      int64
	EntryIdx   int64
	Name       string
	Src        string
	Filename   string
	Suggestion string
}

const getRunMissingAssets = `select run_id, entry_idx, name, src, filename, suggestion
from missing_asset
where run_id = ?
order by entry_idx, rowid`

func (q *Queries) GetRunMissingAssets(ctx context.Context, runID int64) ([]MissingAsset, error) {
	rows, err := q.db.QueryContext(ctx, getRunMissingAssets, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []MissingAsset
	for rows.Next() {
		var i MissingAsset
		err := rows.Scan(&i.RunID, &i.EntryIdx, &i.Name, &i.Src, &i.Filename, &i.Suggestion)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
