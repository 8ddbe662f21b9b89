package commands

import (
	"fmt"
	"log/slog"
	"time"

	"draftkit/internal/catalog"
	"draftkit/internal/draft"
	"draftkit/lib/fsutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type extraction struct {
	layout    draft.Layout
	input     string
	assetDir  string
	outputDir string
	catalog   string
}

func (a *app) pasteCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "paste <input_html> <asset_dir> <output_dir>",
		Short: "Writes every pokepaste entry to <output_dir>/<n>.html, numbered in document order.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.extract(cmd, extraction{
				layout:    draft.PasteLayout{},
				input:     args[0],
				assetDir:  args[1],
				outputDir: args[2],
				catalog:   catalogPath,
			})
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "sqlite catalog to record the run in (defaults to the configured catalog)")
	return cmd
}

func (a *app) setsCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "sets <input_html> <output_dir>",
		Short: "Writes the stats rows of every valued draft entry to <output_dir>/<value>.html.",
		Long: `Only list items carrying a value attribute are entries, the value is the output file name.
Entries sharing a value overwrite each other, the last one in the document wins.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.extract(cmd, extraction{
				layout:    draft.SetsLayout{HeaderRowClass: a.cfg.HeaderRowClass},
				input:     args[0],
				outputDir: args[1],
				catalog:   catalogPath,
			})
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "sqlite catalog to record the run in (defaults to the configured catalog)")
	return cmd
}

func (a *app) extract(cmd *cobra.Command, ex extraction) error {
	ctx := cmd.Context()

	out, err := fsutil.NewOutput(ex.outputDir, "html")
	if err != nil {
		return err
	}
	doc, err := draft.ParseFile(ex.input)
	if err != nil {
		return err
	}

	extractor := draft.NewExtractor(draft.Options{
		Layout:     ex.layout,
		Output:     out,
		AssetDir:   ex.assetDir,
		TargetRoot: a.cfg.TargetRoot,
		Roles:      a.cfg.ImageRoles,
	}, a.tel, cmd.OutOrStdout())

	started := time.Now()
	result, err := extractor.Run(ctx, doc)
	if err != nil {
		return err
	}
	slog.Info(
		"extraction finished",
		"layout", ex.layout.Name(),
		"entries", len(result.Entries),
		"missing_assets", len(result.Missing),
		"seconds", time.Since(started).Seconds(),
	)

	catalogPath := ex.catalog
	if catalogPath == "" {
		catalogPath = a.cfg.Catalog
	}
	if catalogPath != "" {
		store, err := catalog.Open(catalogPath)
		if err != nil {
			return fmt.Errorf("open catalog: %w", err)
		}
		defer store.Close()

		runID, err := store.Record(ctx, catalog.Run{
			Source:    ex.input,
			Layout:    ex.layout.Name(),
			OutputDir: ex.outputDir,
			Time:      started,
			Result:    result,
		})
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		slog.Info("recorded run", "catalog", catalogPath, "run", runID)
	}

	printSummary(cmd, result)
	return nil
}

func printSummary(cmd *cobra.Command, result draft.Result) {
	missingPerEntry := map[int]int{}
	for _, m := range result.Missing {
		missingPerEntry[m.Entry]++
	}

	t := newTable(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"Index", "Name", "Path", "Missing Assets"})
	for _, e := range result.Entries {
		t.AppendRow(table.Row{e.Index, e.Name, e.Path, missingPerEntry[e.Index]})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(result.Missing)})
	t.Render()
}
