package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"cellsort/internal/config"
)

// ConfigOption adjusts a generated test config before its directories exist.
type ConfigOption func(*config.Config)

// NewConfig returns defaults rooted in a fresh temp dir with raw/, organized/,
// txt/, logs/ and state/ already created and a short watch debounce.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths = config.Paths{
		InputDir:     filepath.Join(base, "raw"),
		OrganizedDir: filepath.Join(base, "organized"),
		TxtDir:       filepath.Join(base, "txt"),
		LogDir:       filepath.Join(base, "logs"),
		StateDir:     filepath.Join(base, "state"),
	}
	cfg.Watch.DebounceMillis = 50
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	if err := os.MkdirAll(cfg.Paths.InputDir, 0o755); err != nil {
		t.Fatalf("mkdir input dir: %v", err)
	}
	return &cfg
}

func WithOverwrite(overwrite bool) ConfigOption {
	return func(c *config.Config) { c.Organize.Overwrite = overwrite }
}

func WithConvert(convert bool) ConfigOption {
	return func(c *config.Config) { c.Organize.Convert = convert }
}

func WithCleanup(cleanup bool) ConfigOption {
	return func(c *config.Config) { c.Organize.CleanupEmptyDirs = cleanup }
}

// BaseDir returns the temp directory holding every path of cfg.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}
