package commands

import (
	"fmt"
	"strings"

	"draftkit/internal/draftdb"
	"draftkit/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const previewLength = 48

func preview(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return ""
	}
	text := htmlutil.NormalizeText(doc.Text())
	runes := []rune(text)
	if len(runes) > previewLength {
		return string(runes[:previewLength]) + "..."
	}
	return text
}

func (a *app) inspectCmd() *cobra.Command {
	var ext string

	cmd := &cobra.Command{
		Use:   "inspect <fragment_dir>",
		Short: "Lists the numbered fragments of an output directory the way the draft pages load them.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := draftdb.Load(args[0], ext, a.tel)
			if err != nil {
				return fmt.Errorf("load fragments: %w", err)
			}

			t := newTable(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"ID", "Bytes", "Preview"})
			for _, id := range db.ItemList() {
				item, err := db.Item(id)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{item.ID, len(item.Template), preview(item.Template)})
			}
			t.AppendFooter(table.Row{"", "Total", db.Len()})
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&ext, "ext", "html", "fragment file extension")
	return cmd
}
