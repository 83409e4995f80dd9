package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cellsort/internal/config"
	"cellsort/internal/fileutil"
	"cellsort/internal/preflight"
)

var errConfigExists = errors.New("config file already exists")

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Write or check the cellsort configuration",
	}
	configCmd.AddCommand(newConfigInitCommand(), newConfigValidateCommand(ctx))
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var (
		targetPath string
		overwrite  bool
	)

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a commented sample configuration",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := initTarget(targetPath)
			if err != nil {
				return err
			}
			exists, err := fileutil.Exists(target)
			if err != nil {
				return fmt.Errorf("check config path: %w", err)
			}
			if exists && !overwrite {
				return fmt.Errorf("%w at %s (use --overwrite to replace it)", errConfigExists, target)
			}
			if err := config.CreateSample(target); err != nil {
				return err
			}
			writeLines(cmd.OutOrStdout(),
				"Wrote sample configuration to "+target,
				"Set paths.input_dir (or export CELLSORT_INPUT_DIR) before running cellsort organize.",
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing file")
	return cmd
}

// initTarget resolves --path, falling back to the per-user config location.
func initTarget(flagValue string) (string, error) {
	if path := strings.TrimSpace(flagValue); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return "", fmt.Errorf("resolve config path: %w", err)
		}
		return expanded, nil
	}
	path, err := config.DefaultConfigPath()
	if err != nil {
		return "", fmt.Errorf("determine default config path: %w", err)
	}
	return path, nil
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Load the configuration and check its directories",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var flagPath string
			if ctx.configFlag != nil {
				flagPath = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, resolved, exists, err := config.Load(flagPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			source := resolved
			if !exists {
				source += " (not found, using defaults)"
			}
			lines := []string{renderStatusLine("Config", statusInfo, source, colorize)}
			for _, result := range preflight.RunAll(cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusWarn
				}
				lines = append(lines, renderStatusLine(strings.TrimSuffix(result.Name, " directory"), kind, result.Detail, colorize))
			}
			lines = append(lines,
				renderStatusLine("Manifest", statusInfo, cfg.ManifestPath(), colorize),
				renderStatusLine("Convert", statusInfo, yesNo(cfg.Organize.Convert), colorize),
				renderStatusLine("Overwrite", statusInfo, yesNo(cfg.Organize.Overwrite), colorize),
				"Configuration valid",
			)
			writeLines(out, lines...)
			return nil
		},
	}
}
