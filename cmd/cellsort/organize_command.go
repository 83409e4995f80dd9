package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"cellsort/internal/manifest"
	"cellsort/internal/organizer"
	"cellsort/internal/preflight"
)

type organizeFileJSON struct {
	Source    string `json:"source"`
	Canonical string `json:"canonical"`
	Organized string `json:"organized,omitempty"`
	Txt       string `json:"txt,omitempty"`
	Outcome   string `json:"outcome"`
	Rows      int    `json:"rows"`
	Note      string `json:"note,omitempty"`
	Error     string `json:"error,omitempty"`
}

type organizeJSON struct {
	RunID       string             `json:"run_id"`
	Counts      manifest.Counts    `json:"counts"`
	Files       []organizeFileJSON `json:"files"`
	RemovedDirs []string           `json:"removed_dirs,omitempty"`
	DurationMS  int64              `json:"duration_ms"`
}

func newOrganizeCommand(ctx *commandContext) *cobra.Command {
	var (
		jsonOut     bool
		noConvert   bool
		noOverwrite bool
		keepEmpty   bool
	)

	cmd := &cobra.Command{
		Use:   "organize",
		Short: "Classify, copy, and convert every file under the input directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if noConvert {
				cfg.Organize.Convert = false
			}
			if noOverwrite {
				cfg.Organize.Overwrite = false
			}
			if keepEmpty {
				cfg.Organize.CleanupEmptyDirs = false
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

			summary, err := organizer.New(cfg, store, logger).Run(runCtx)
			if err != nil && summary.RunID == "" {
				return err
			}
			if jsonOut {
				if jsonErr := writeJSON(cmd, summaryJSON(summary)); jsonErr != nil {
					return jsonErr
				}
				return err
			}
			renderSummary(cmd, summary)
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run summary as JSON")
	cmd.Flags().BoolVar(&noConvert, "no-convert", false, "Copy only; do not write .txt tables")
	cmd.Flags().BoolVar(&noOverwrite, "no-overwrite", false, "Skip files whose destination already exists")
	cmd.Flags().BoolVar(&keepEmpty, "keep-empty-dirs", false, "Do not remove empty output folders after the run")
	return cmd
}

func commandCtx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}

func summaryJSON(summary organizer.Summary) organizeJSON {
	out := organizeJSON{
		RunID:       summary.RunID,
		Counts:      summary.Counts,
		RemovedDirs: summary.RemovedDirs,
		DurationMS:  summary.Duration.Milliseconds(),
		Files:       make([]organizeFileJSON, 0, len(summary.Results)),
	}
	for _, res := range summary.Results {
		entry := organizeFileJSON{
			Source:    res.SourcePath,
			Canonical: res.CanonicalName(),
			Organized: res.OrganizedPath,
			Txt:       res.TxtPath,
			Outcome:   string(res.Outcome),
			Rows:      res.Rows,
			Note:      res.Note,
		}
		if res.Err != nil {
			entry.Error = res.Err.Error()
			entry.Organized = ""
		}
		out.Files = append(out.Files, entry)
	}
	return out
}

func renderSummary(cmd *cobra.Command, summary organizer.Summary) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	rows := make([][]string, 0, len(summary.Results))
	for _, res := range summary.Results {
		detail := res.Note
		if res.Err != nil {
			detail = res.Err.Error()
		}
		rows = append(rows, []string{
			filepath.Base(res.SourcePath),
			res.CanonicalName(),
			string(res.Outcome),
			strconv.Itoa(res.Rows),
			detail,
		})
	}
	if len(rows) > 0 {
		writeLines(out, tableView{
			Title:   "Run " + summary.RunID,
			Headers: []string{"Source", "Canonical", "Outcome", "Rows", "Detail"},
			Rows:    rows,
			Aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
		}.Render())
	}
	writeLines(out, renderSectionHeader("Summary", colorize)...)
	writeLines(out, countsLines(summary.Counts, colorize)...)
	writeLines(out, renderStatusLine("Duration", statusInfo, summary.Duration.Round(time.Millisecond).String(), colorize))
	if len(summary.RemovedDirs) > 0 {
		writeLines(out, renderStatusLine("Cleanup", statusInfo, strconv.Itoa(len(summary.RemovedDirs))+" empty folders removed", colorize))
	}
}
