package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

var operatingConditions = map[string]struct{}{
	"OC": {}, "IV": {}, "VCTE": {}, "ICTE": {}, "HEAT": {}, "TEMP": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateClassify(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		return errors.New("paths.input_dir must be set")
	}
	outputs := map[string]string{
		"paths.organized_dir": c.Paths.OrganizedDir,
		"paths.txt_dir":       c.Paths.TxtDir,
	}
	for key, dir := range outputs {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("%s must be set", key)
		}
		if isWithin(dir, c.Paths.InputDir) {
			return fmt.Errorf("%s must not be inside paths.input_dir (%s)", key, c.Paths.InputDir)
		}
	}
	return nil
}

func (c *Config) validateClassify() error {
	if strings.ContainsAny(c.Classify.DefaultCellID, `_/\ `) {
		return errors.New("classify.default_cell_id must not contain separators or spaces")
	}
	if strings.ContainsAny(c.Classify.DefaultTestSpec, `_/\ `) {
		return errors.New("classify.default_test_spec must not contain separators or spaces")
	}
	if len(c.Classify.DefaultDate) != 8 {
		return errors.New("classify.default_date must be 8 digits (YYYYMMDD)")
	}
	if _, err := time.Parse("20060102", c.Classify.DefaultDate); err != nil {
		return fmt.Errorf("classify.default_date must be a valid YYYYMMDD date: %w", err)
	}
	if _, ok := operatingConditions[c.Classify.DefaultOperatingCondition]; !ok {
		return fmt.Errorf("classify.default_operating_condition %q must be one of OC, IV, VCTE, ICTE, HEAT, TEMP", c.Classify.DefaultOperatingCondition)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level %q must be one of debug, info, warn, error", c.Logging.Level)
	}
}

// isWithin reports whether path equals root or lies beneath it. Walking an
// input tree that contains the output tree would re-organize its own output.
func isWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
