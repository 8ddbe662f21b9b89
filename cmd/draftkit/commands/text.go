package commands

import (
	"fmt"
	"log/slog"

	"draftkit/internal/draft"
	"draftkit/lib/fsutil"

	"github.com/spf13/cobra"
)

func (a *app) textCmd() *cobra.Command {
	var marker string

	cmd := &cobra.Command{
		Use:   "text <input_file> [output_dir]",
		Short: "Strips marker lines from a draft set file in place, or splits it into numbered .txt files.",
		Long: `With only an input file, every line containing the strip marker ("Tera Type" by default) is
removed from the file in place. With an output directory, the file is split on blank lines and
every group is written to <output_dir>/<n>.txt.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if marker == "" {
					marker = a.cfg.StripMarker
				}
				removed, err := draft.StripFile(args[0], marker)
				if err != nil {
					return fmt.Errorf("strip %s: %w", args[0], err)
				}
				slog.Info("stripped marker lines", "file", args[0], "marker", marker, "removed", removed)
				return nil
			}

			out, err := fsutil.NewOutput(args[1], "txt")
			if err != nil {
				return err
			}
			paths, err := draft.SplitFile(args[0], out)
			if err != nil {
				return fmt.Errorf("split %s: %w", args[0], err)
			}
			slog.Info("split draft sets", "file", args[0], "groups", len(paths), "output", args[1])
			return nil
		},
	}

	cmd.Flags().StringVar(&marker, "marker", "", "strip lines containing this text (defaults to the configured strip_marker)")
	return cmd
}
