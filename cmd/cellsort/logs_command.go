package main

import (
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"cellsort/internal/logging"
	"cellsort/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		lines  int
		follow bool
		runID  string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the cellsort log file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.Paths.LogDir, logging.LogFileName)
			out := cmd.OutOrStdout()
			emit := func(line string) {
				if logs.MatchRun(line, runID) {
					fmt.Fprintln(out, line)
				}
			}

			tail, offset, err := logs.Last(path, lines)
			if err != nil {
				return err
			}
			for _, line := range tail {
				emit(line)
			}
			if !follow {
				return nil
			}

			runCtx, cancel := signal.NotifyContext(commandCtx(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return logs.Follow(runCtx, path, offset, emit)
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing lines as they are written")
	cmd.Flags().StringVar(&runID, "run", "", "Only show lines for this run ID")
	return cmd
}
