package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cellsort/internal/logging"
	"cellsort/internal/organizer"
	"cellsort/internal/preflight"
	"cellsort/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var initial bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Organize files as they appear under the input directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			if err := preflight.Err(preflight.RunAll(cfg)); err != nil {
				return err
			}

			runCtx, cancel := signal.NotifyContext(commandCtx(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			org := organizer.New(cfg, store, logger)
			if initial {
				summary, err := org.Run(runCtx)
				if err != nil {
					return err
				}
				renderSummary(cmd, summary)
			}

			w := watch.New(cfg, org, logger)
			if err := w.Run(runCtx); err != nil {
				return err
			}
			stats := w.Stats()
			logger.Info("watch summary",
				logging.Int("batches", stats.Batches),
				logging.Int("processed", stats.Processed),
				logging.Int("failed", stats.Failed),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&initial, "initial", false, "Organize the existing input tree before watching")
	return cmd
}
