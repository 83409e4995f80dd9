package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the input and output directory configuration.
type Paths struct {
	InputDir     string `toml:"input_dir"`
	OrganizedDir string `toml:"organized_dir"`
	TxtDir       string `toml:"txt_dir"`
	LogDir       string `toml:"log_dir"`
	StateDir     string `toml:"state_dir"`
}

// Classify contains the values substituted when a file carries no evidence
// for a metadata field.
type Classify struct {
	DefaultCellID             string `toml:"default_cell_id"`
	DefaultTestSpec           string `toml:"default_test_spec"`
	DefaultDate               string `toml:"default_date"`
	DefaultOperatingCondition string `toml:"default_operating_condition"`
}

// Organize contains configuration for the copy and convert pipeline.
type Organize struct {
	SkipExtensions   []string `toml:"skip_extensions"`
	Convert          bool     `toml:"convert"`
	CleanupEmptyDirs bool     `toml:"cleanup_empty_dirs"`
	Overwrite        bool     `toml:"overwrite"`
}

// Watch contains configuration for watch mode.
type Watch struct {
	DebounceMillis int `toml:"debounce_ms"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for cellsort.
//
// Configuration sections by subsystem:
//   - Paths: raw input tree and the organized/txt output roots
//   - Classify: fallback metadata values
//   - Organize: skipped extensions, conversion, cleanup, overwrite policy
//   - Watch: event debounce for watch mode
//   - Logging: log format, level, and manifest history retention
type Config struct {
	Paths    Paths    `toml:"paths"`
	Classify Classify `toml:"classify"`
	Organize Organize `toml:"organize"`
	Watch    Watch    `toml:"watch"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/cellsort/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("cellsort.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output, log, and state directories. The
// input directory is never created; it must already exist to be organized.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OrganizedDir, c.Paths.TxtDir, c.Paths.LogDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// ManifestPath returns the SQLite run history location.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.Paths.StateDir, "manifest.db")
}

// LockPath returns the lock file guarding the organized output tree.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.OrganizedDir, ".cellsort.lock")
}

// SkipsExtension reports whether files with the given name are excluded
// from organizing. Matching is case-insensitive.
func (c *Config) SkipsExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, skip := range c.Organize.SkipExtensions {
		if skip == ext {
			return true
		}
	}
	return false
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
