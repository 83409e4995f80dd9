package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeClassify()
	c.normalizeOrganize()
	if c.Watch.DebounceMillis <= 0 {
		c.Watch.DebounceMillis = defaultWatchDebounceMillis
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		if value, ok := os.LookupEnv("CELLSORT_INPUT_DIR"); ok {
			c.Paths.InputDir = strings.TrimSpace(value)
		}
	}
	fields := []struct {
		key      string
		value    *string
		fallback string
	}{
		{"paths.input_dir", &c.Paths.InputDir, defaultInputDir},
		{"paths.organized_dir", &c.Paths.OrganizedDir, defaultOrganizedDir},
		{"paths.txt_dir", &c.Paths.TxtDir, defaultTxtDir},
		{"paths.log_dir", &c.Paths.LogDir, defaultLogDir},
		{"paths.state_dir", &c.Paths.StateDir, defaultStateDir},
	}
	for _, field := range fields {
		if strings.TrimSpace(*field.value) == "" {
			*field.value = field.fallback
		}
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("%s: %w", field.key, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeClassify() {
	c.Classify.DefaultCellID = strings.ToUpper(strings.TrimSpace(c.Classify.DefaultCellID))
	if c.Classify.DefaultCellID == "" {
		c.Classify.DefaultCellID = defaultCellID
	}
	c.Classify.DefaultTestSpec = strings.TrimSpace(c.Classify.DefaultTestSpec)
	if c.Classify.DefaultTestSpec == "" {
		c.Classify.DefaultTestSpec = defaultTestSpec
	}
	c.Classify.DefaultDate = strings.TrimSpace(c.Classify.DefaultDate)
	if c.Classify.DefaultDate == "" {
		c.Classify.DefaultDate = defaultDate
	}
	c.Classify.DefaultOperatingCondition = strings.ToUpper(strings.TrimSpace(c.Classify.DefaultOperatingCondition))
	if c.Classify.DefaultOperatingCondition == "" {
		c.Classify.DefaultOperatingCondition = defaultOperatingCondition
	}
}

func (c *Config) normalizeOrganize() {
	if len(c.Organize.SkipExtensions) == 0 {
		return
	}
	exts := make([]string, 0, len(c.Organize.SkipExtensions))
	seen := make(map[string]struct{}, len(c.Organize.SkipExtensions))
	for _, ext := range c.Organize.SkipExtensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	c.Organize.SkipExtensions = exts
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
