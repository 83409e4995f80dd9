package organizer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"cellsort/internal/logging"
)

// Discover returns every regular file below the input directory whose
// extension is not skipped, in lexical order.
func (o *Organizer) Discover(ctx context.Context) ([]string, error) {
	root := o.cfg.Paths.InputDir
	logger := logging.WithContext(ctx, o.logger)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			logger.Warn("skipping unreadable path", logging.String("path", path), logging.Error(walkErr))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if o.Skips(path) {
			logger.Debug("skipping excluded extension", logging.String("path", path))
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk input dir %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// Skips reports whether path is excluded from organizing. Extension
// matching is case-insensitive. Temp files from an in-flight atomic write
// are never picked up.
func (o *Organizer) Skips(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".cellsort-") {
		return true
	}
	return o.cfg.SkipsExtension(base)
}
