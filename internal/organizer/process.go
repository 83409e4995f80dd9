package organizer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"cellsort/internal/classify"
	"cellsort/internal/convert"
	"cellsort/internal/fileutil"
	"cellsort/internal/logging"
	"cellsort/internal/manifest"
	"cellsort/internal/textio"
)

// FileResult is the outcome of organizing one source file.
type FileResult struct {
	SourcePath    string
	Metadata      classify.FileMetadata
	OrganizedPath string
	TxtPath       string
	Checksum      string
	Rows          int
	Outcome       manifest.Outcome
	// Note explains a copied-but-not-converted or skipped outcome.
	Note string
	Err  error
}

// CanonicalName returns the organized file name, or "" before classification.
func (r FileResult) CanonicalName() string {
	if r.OrganizedPath == "" {
		return r.Metadata.CanonicalName()
	}
	return filepath.Base(r.OrganizedPath)
}

// ProcessFile classifies, copies, and converts one file and records the
// outcome in the manifest. It never panics or returns early on a per-file
// error; the error is carried in the result.
func (o *Organizer) ProcessFile(ctx context.Context, runID, path string) FileResult {
	ctx = logging.WithSource(ctx, path)
	logger := logging.WithContext(ctx, o.logger)

	result := o.processFile(ctx, path)
	switch result.Outcome {
	case manifest.OutcomeFailed:
		logger.Error("file failed",
			logging.String("kind", ErrorKind(result.Err)),
			logging.Error(result.Err),
		)
	case manifest.OutcomeSkipped:
		logger.Info("file skipped", logging.String("reason", result.Note), logging.String("destination", result.OrganizedPath))
	default:
		logger.Info("file organized",
			logging.String("outcome", string(result.Outcome)),
			logging.String("destination", result.OrganizedPath),
			logging.String("txt", result.TxtPath),
			logging.Int("rows", result.Rows),
		)
	}

	o.record(ctx, runID, result)
	return result
}

func (o *Organizer) processFile(ctx context.Context, path string) FileResult {
	logger := logging.WithContext(ctx, o.logger)
	result := FileResult{SourcePath: path}

	content, readErr := textio.ReadFile(path)
	if readErr != nil {
		// Classification still runs on the name alone.
		logger.Warn("content unreadable; classifying by name", logging.Error(readErr))
	}
	subject := classify.Subject{
		Folder:   filepath.Dir(path),
		Filename: filepath.Base(path),
		Content:  content,
		Readable: readErr == nil,
	}
	meta := o.resolver.Resolve(subject)
	result.Metadata = meta

	relDir := filepath.FromSlash(meta.Dir())
	dest := filepath.Join(o.cfg.Paths.OrganizedDir, relDir, meta.CanonicalName())
	result.OrganizedPath = dest

	if !o.cfg.Organize.Overwrite {
		exists, err := fileutil.Exists(dest)
		if err != nil {
			return failed(result, wrap(ErrCopy, "stat destination", dest, err))
		}
		if exists {
			result.Outcome = manifest.OutcomeSkipped
			result.Note = "destination exists"
			return result
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return failed(result, wrap(ErrCopy, "create organized dir", "", err))
	}
	sum, err := fileutil.CopyFileVerified(path, dest)
	if err != nil {
		return failed(result, wrap(ErrCopy, "copy", path, err))
	}
	result.Checksum = sum
	result.Outcome = manifest.OutcomeCopied

	switch {
	case !o.cfg.Organize.Convert:
		result.Note = "conversion disabled"
		return result
	case readErr != nil:
		result.Note = "content unreadable"
		return result
	}

	table, err := convert.Locate(textio.Lines(content))
	switch {
	case errors.Is(err, convert.ErrNoData):
		logger.Warn("no data start found; txt not written")
		result.Note = "no data found"
		return result
	case errors.Is(err, convert.ErrEmptyTable):
		logger.Warn("table is empty; txt not written", logging.Int("header_line", table.StartLine))
		result.Note = "empty table"
		return result
	case err != nil:
		return failed(result, wrap(ErrConvert, "parse table", "", err))
	}

	txtPath := filepath.Join(o.cfg.Paths.TxtDir, relDir, meta.FileName(".txt"))
	if err := os.MkdirAll(filepath.Dir(txtPath), 0o755); err != nil {
		return failed(result, wrap(ErrConvert, "create txt dir", "", err))
	}
	err = fileutil.WriteFileAtomic(txtPath, 0o644, func(w io.Writer) error {
		return table.WriteTSV(w)
	})
	if err != nil {
		return failed(result, wrap(ErrConvert, "write txt", txtPath, err))
	}
	result.TxtPath = txtPath
	result.Rows = len(table.Rows)
	result.Outcome = manifest.OutcomeConverted
	return result
}

func failed(result FileResult, err error) FileResult {
	result.Outcome = manifest.OutcomeFailed
	result.Err = err
	return result
}

func (o *Organizer) record(ctx context.Context, runID string, result FileResult) {
	if o.store == nil || runID == "" {
		return
	}
	rec := manifest.FileRecord{
		RunID:         runID,
		SourcePath:    result.SourcePath,
		Metadata:      result.Metadata,
		CanonicalName: result.CanonicalName(),
		OrganizedPath: result.OrganizedPath,
		TxtPath:       result.TxtPath,
		Checksum:      result.Checksum,
		Outcome:       result.Outcome,
		ErrorMessage:  result.Note,
	}
	if result.Err != nil {
		rec.ErrorMessage = result.Err.Error()
	}
	if result.Outcome == manifest.OutcomeFailed {
		rec.OrganizedPath = ""
	}
	if _, err := o.store.RecordFile(context.WithoutCancel(ctx), rec); err != nil {
		logging.WithContext(ctx, o.logger).Warn("failed to record file in manifest", logging.Error(err))
	}
}
