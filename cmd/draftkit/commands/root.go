package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"draftkit/lib/telemetry"

	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	verbose    bool

	cfg       Config
	tel       telemetry.API
	telemetry telemetry.Telemetry
}

func NewRootCmd() *cobra.Command {
	rootCmd, _ := newRoot()
	return rootCmd
}

func newRoot() (*cobra.Command, *app) {
	a := &app{tel: telemetry.SlogAPI{}}

	rootCmd := &cobra.Command{
		Use:           "draftkit",
		Short:         "draftkit splits draft exports and pokepaste pages into numbered fragments.",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// arguments are validated by now, later errors are not usage errors
			cmd.SilenceUsage = true

			telemetry.InitSlog(a.verbose)
			cfg, err := readConfig(a.configPath)
			if err != nil {
				return fmt.Errorf("read config: %w", err)
			}
			a.cfg = cfg

			a.telemetry, err = telemetry.SetupFromEnv(cmd.Context(), "draftkit")
			if err != nil {
				return fmt.Errorf("setup telemetry: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "draftkit.json5", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(a.textCmd())
	rootCmd.AddCommand(a.pasteCmd())
	rootCmd.AddCommand(a.setsCmd())
	rootCmd.AddCommand(a.inspectCmd())
	rootCmd.AddCommand(a.catalogCmd())

	return rootCmd, a
}

func ExecuteContext(ctx context.Context) {
	rootCmd, a := newRoot()
	err := rootCmd.ExecuteContext(ctx)

	shutdownErr := a.telemetry.Shutdown(context.Background())
	if shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
