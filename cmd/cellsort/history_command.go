package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"cellsort/internal/manifest"
)

const historyTimeLayout = "2006-01-02 15:04:05"

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var (
		limit   int
		jsonOut bool
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded organizer runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(commandCtx(cmd), limit)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				finished := "running"
				if run.FinishedAt != nil {
					finished = run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
				}
				rows = append(rows, []string{
					run.ID,
					string(run.Trigger),
					run.StartedAt.Local().Format(historyTimeLayout),
					finished,
					strconv.Itoa(run.Counts.Discovered),
					strconv.Itoa(run.Counts.Converted),
					strconv.Itoa(run.Counts.Skipped),
					strconv.Itoa(run.Counts.Failed),
				})
			}
			writeLines(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Trigger", "Started", "Duration", "Files", "Converted", "Skipped", "Failed"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	historyCmd.Flags().BoolVar(&jsonOut, "json", false, "Emit runs as JSON")

	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	historyCmd.AddCommand(newHistoryFileCommand(ctx))
	return historyCmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "List the files processed by one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.GetRun(commandCtx(cmd), args[0])
			if err != nil {
				return err
			}
			files, err := store.RunFiles(commandCtx(cmd), run.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			rows := make([][]string, 0, len(files))
			for _, f := range files {
				rows = append(rows, []string{
					filepath.Base(f.SourcePath),
					f.CanonicalName,
					renderOutcome(f.Outcome, colorize),
					f.ErrorMessage,
				})
			}
			writeLines(out, tableView{
				Title:   fmt.Sprintf("Run %s (%s)", run.ID, run.Trigger),
				Headers: []string{"Source", "Canonical", "Outcome", "Detail"},
				Rows:    rows,
			}.Render())
			writeLines(out, countsLines(run.Counts, colorize)...)
			return nil
		},
	}
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete runs older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = cfg.Logging.RetentionDays
			}
			if days <= 0 {
				return fmt.Errorf("retention must be positive, got %d days", days)
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			cutoff := time.Now().AddDate(0, 0, -days)
			removed, err := store.PruneBefore(commandCtx(cmd), cutoff)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d runs older than %d days from %s\n", removed, days, store.Path())
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Retention in days (defaults to logging.retention_days)")
	return cmd
}

func newHistoryFileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "file <source>",
		Short: "Show where a source file was last organized",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve %s: %w", args[0], err)
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rec, ok, err := store.LatestForSource(commandCtx(cmd), source)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintf(out, "No record for %s\n", source)
				return nil
			}
			colorize := shouldColorize(out)
			writeLines(out,
				renderStatusLine("Run", statusInfo, rec.RunID, colorize),
				renderStatusLine("Outcome", outcomeStatus(rec.Outcome), string(rec.Outcome), colorize),
				renderStatusLine("Canonical", statusInfo, rec.CanonicalName, colorize),
				renderStatusLine("Organized", statusInfo, rec.OrganizedPath, colorize),
				renderStatusLine("Txt", statusInfo, rec.TxtPath, colorize),
				renderStatusLine("Recorded", statusInfo, rec.RecordedAt.Local().Format(historyTimeLayout), colorize),
			)
			if rec.ErrorMessage != "" {
				writeLines(out, renderStatusLine("Detail", statusWarn, rec.ErrorMessage, colorize))
			}
			return nil
		},
	}
}

func renderOutcome(outcome manifest.Outcome, colorize bool) string {
	return paint(string(outcome), outcomeStatus(outcome), colorize)
}
