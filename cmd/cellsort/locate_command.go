package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cellsort/internal/convert"
	"cellsort/internal/textio"
)

func newLocateCommand(ctx *commandContext) *cobra.Command {
	var preview int

	cmd := &cobra.Command{
		Use:         "locate <file>",
		Short:       "Show where tabular data starts in a file and preview the converted rows",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := textio.ReadFile(args[0])
			if err != nil {
				return err
			}
			lines := textio.Lines(content)
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			start, reason, ok := convert.LocateDataStartReason(lines)
			if !ok {
				writeLines(out, renderStatusLine("Data start", statusWarn, "no data found", colorize))
				return nil
			}
			writeLines(out,
				renderStatusLine("Data start", statusOK, fmt.Sprintf("line %d (%s)", start+1, reason), colorize),
				renderStatusLine("Header", statusInfo, strings.Join(convert.SplitFields(lines[start]), " | "), colorize),
			)

			table, err := convert.ParseTable(lines, start)
			if errors.Is(err, convert.ErrEmptyTable) {
				writeLines(out, renderStatusLine("Rows", statusWarn, "0 (empty table)", colorize))
				return nil
			}
			if err != nil {
				return err
			}
			writeLines(out, renderStatusLine("Rows", statusOK, fmt.Sprintf("%d", len(table.Rows)), colorize))

			if preview > 0 {
				shown := *table
				if len(shown.Rows) > preview {
					shown.Rows = shown.Rows[:preview]
				}
				writeLines(out, renderSectionHeader("Preview", colorize)...)
				return shown.WriteTSV(out)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&preview, "preview", "n", 5, "Number of converted rows to print (0 disables)")
	return cmd
}
