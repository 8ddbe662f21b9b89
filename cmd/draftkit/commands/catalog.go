package commands

import (
	"fmt"
	"time"

	"draftkit/internal/catalog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func (a *app) catalogCmd() *cobra.Command {
	var dbPath string
	var limit int
	var runID int64

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Lists the extraction runs recorded in the catalog, or the missing assets of one run.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				dbPath = a.cfg.Catalog
			}
			if dbPath == "" {
				return fmt.Errorf("no catalog configured, pass --db or set \"catalog\" in %s", a.configPath)
			}

			store, err := catalog.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open catalog: %w", err)
			}
			defer store.Close()

			t := newTable(cmd.OutOrStdout())

			if runID > 0 {
				missing, err := store.MissingAssets(cmd.Context(), runID)
				if err != nil {
					return err
				}
				t.AppendHeader(table.Row{"Entry", "Name", "Src", "Closest Match"})
				for _, m := range missing {
					t.AppendRow(table.Row{m.Entry, m.Name, m.Src, m.Suggestion})
				}
				t.Render()
				return nil
			}

			runs, err := store.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}
			t.AppendHeader(table.Row{"Run", "Time", "Layout", "Source", "Output", "Entries", "Missing Assets"})
			for _, r := range runs {
				t.AppendRow(table.Row{
					r.ID,
					r.Time.Format(time.DateTime),
					r.Layout,
					r.Source,
					r.OutputDir,
					r.Entries,
					r.MissingAssets,
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "catalog path (defaults to the configured catalog)")
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to list")
	cmd.Flags().Int64Var(&runID, "run", 0, "list the missing assets of this run")
	return cmd
}
