package preflight

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"cellsort/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks the input tree for read access and every output root for
// read/write access.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Input directory", cfg.Paths.InputDir, unix.R_OK|unix.X_OK),
		CheckDirectoryAccess("Organized directory", cfg.Paths.OrganizedDir, unix.R_OK|unix.W_OK|unix.X_OK),
		CheckDirectoryAccess("Txt directory", cfg.Paths.TxtDir, unix.R_OK|unix.W_OK|unix.X_OK),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir, unix.R_OK|unix.W_OK|unix.X_OK),
	}
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Err folds failed results into one error, or nil when all passed.
func Err(results []Result) error {
	failed := Failed(results)
	if len(failed) == 0 {
		return nil
	}
	parts := make([]string, 0, len(failed))
	for _, r := range failed {
		parts = append(parts, r.Name+": "+r.Detail)
	}
	return fmt.Errorf("preflight failed: %s", strings.Join(parts, "; "))
}

// CheckDirectoryAccess verifies that the directory exists and grants the
// requested unix access mode.
func CheckDirectoryAccess(name, path string, mode uint32) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s ok)", path, describeMode(mode))}
}

func describeMode(mode uint32) string {
	if mode&unix.W_OK != 0 {
		return "read/write"
	}
	return "read"
}
