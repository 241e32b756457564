package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/stemsi/roster/internal/config"
	"github.com/stemsi/roster/internal/logger"
	"github.com/stemsi/roster/internal/metrics"
	"github.com/stemsi/roster/internal/repository"
	"github.com/stemsi/roster/internal/service"
	"github.com/stemsi/roster/internal/shell"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	var noSeed bool

	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Interactive student roster",
		Long: `roster keeps a list of students in memory for the length of the session.

Type help at the prompt for the available commands.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Logs go to stderr so they never interleave with the table.
			log := logger.SetupWriter(os.Stderr, cfg.LogLevel, cfg.LogFormat)

			svc := service.NewStudentService(repository.NewStudentRepository(), metrics.NewRecorder(), log)
			if cfg.SeedSamples && !noSeed {
				svc.Seed()
			}

			interactive := term.IsTerminal(int(os.Stdin.Fd()))
			sh := shell.New(svc, cmd.InOrStdin(), cmd.OutOrStdout(),
				shell.Interactive(interactive),
				shell.WithLogger(log),
			)
			return sh.Run()
		},
	}

	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "start with an empty roster")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (pretty or json)")

	return cmd
}
