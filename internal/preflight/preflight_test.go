package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/sys/unix"

	"cellsort/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir, unix.R_OK|unix.W_OK|unix.X_OK)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
	if !strings.Contains(result.Detail, "read/write ok") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"), unix.R_OK)
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f, unix.R_OK)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRunAllPassesForTestConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	results := RunAll(cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if err := Err(results); err != nil {
		t.Fatalf("unexpected preflight failure: %v", err)
	}
}

func TestRunAllReportsMissingInput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.RemoveAll(cfg.Paths.InputDir); err != nil {
		t.Fatal(err)
	}
	results := RunAll(cfg)
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "Input directory" {
		t.Fatalf("expected only the input check to fail, got %#v", failed)
	}
	err := Err(results)
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected missing-dir error, got %v", err)
	}
}
