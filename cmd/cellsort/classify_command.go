package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"cellsort/internal/classify"
	"cellsort/internal/organizer"
	"cellsort/internal/textio"
)

type classifyJSON struct {
	File      string                `json:"file"`
	Readable  bool                  `json:"readable"`
	Metadata  classify.FileMetadata `json:"metadata"`
	Canonical string                `json:"canonical"`
	Dir       string                `json:"dir"`
}

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "classify <file>...",
		Short: "Show the metadata and canonical name for files without copying them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			resolver := classify.NewResolver(organizer.FallbacksFromConfig(cfg), logger)

			results := make([]classifyJSON, 0, len(args))
			for _, arg := range args {
				path, err := filepath.Abs(arg)
				if err != nil {
					return err
				}
				results = append(results, classifyPath(resolver, path))
			}

			if jsonOut {
				return writeJSON(cmd, results)
			}
			rows := make([][]string, 0, len(results))
			for _, res := range results {
				m := res.Metadata
				rows = append(rows, []string{
					filepath.Base(res.File),
					m.CellID,
					string(m.TestName),
					string(m.Variable),
					m.TestSpec,
					string(m.OperatingCondition),
					m.Date,
					res.Canonical,
				})
			}
			writeLines(cmd.OutOrStdout(), renderTable(
				[]string{"File", "Cell", "Test", "Variable", "Spec", "Condition", "Date", "Canonical"},
				rows,
				nil,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit results as JSON")
	return cmd
}

// classifyPath reads and classifies one file. An unreadable file is still
// classified by its name.
func classifyPath(resolver *classify.Resolver, path string) classifyJSON {
	content, err := textio.ReadFile(path)
	subject := classify.Subject{
		Folder:   filepath.Dir(path),
		Filename: filepath.Base(path),
		Content:  content,
		Readable: err == nil,
	}
	meta := resolver.Resolve(subject)
	return classifyJSON{
		File:      path,
		Readable:  subject.Readable,
		Metadata:  meta,
		Canonical: meta.CanonicalName(),
		Dir:       meta.Dir(),
	}
}
