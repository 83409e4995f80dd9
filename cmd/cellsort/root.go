package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag, logLevelFlag string
	ctx := newCommandContext(&configFlag, &logLevelFlag)

	root := &cobra.Command{
		Use:   "cellsort",
		Short: "Classify and organize fuel-cell test logs",
		Long: "cellsort names each instrument log by cell, test, variable, test spec, operating\n" +
			"condition and date, copies it into <organized>/<test>/<variable>/ and writes the\n" +
			"located data table as tab-separated text under the txt root.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.StringVar(&logLevelFlag, "log-level", "", "Override logging.level (debug, info, warn, error)")

	root.AddCommand(
		newOrganizeCommand(ctx),
		newWatchCommand(ctx),
		newClassifyCommand(ctx),
		newLocateCommand(ctx),
		newHistoryCommand(ctx),
		newLogsCommand(ctx),
		newConfigCommand(ctx),
	)
	return root
}
