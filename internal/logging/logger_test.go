package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cellsort/internal/config"
	"cellsort/internal/logging"
)

func newFileLogger(t *testing.T, format, level string) (*logging.Options, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "test.log")
	return &logging.Options{
		Format:           format,
		Level:            level,
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	}, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from config")

	content := readLog(t, filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	if !strings.Contains(content, "hello from config") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	opts, logPath := newFileLogger(t, "console", "info")
	logger, err := logging.New(*opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if content := readLog(t, logPath); strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	opts, logPath := newFileLogger(t, "console", "debug")
	logger, err := logging.New(*opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if content := readLog(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerPrefixesComponent(t *testing.T) {
	opts, logPath := newFileLogger(t, "console", "info")
	logger, err := logging.New(*opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "classify").Info("cell id resolved", logging.String("cell_id", "SH12"))

	content := readLog(t, logPath)
	if !strings.Contains(content, "classify: cell id resolved") {
		t.Fatalf("expected component prefix, got %q", content)
	}
	if !strings.Contains(content, "cell_id=SH12") {
		t.Fatalf("expected key=value attribute, got %q", content)
	}
}

func TestJSONLoggerRenamesKeys(t *testing.T) {
	opts, logPath := newFileLogger(t, "json", "info")
	logger, err := logging.New(*opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("json message", logging.String("k", "v"))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry["msg"] != "json message" || entry["level"] != "info" || entry["k"] != "v" {
		t.Fatalf("unexpected json entry: %#v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %#v", entry)
	}
}

func TestJSONLoggerAddsSourceAtDebug(t *testing.T) {
	opts, logPath := newFileLogger(t, "json", "debug")
	logger, err := logging.New(*opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WithContext(logging.WithRunID(context.Background(), "run-9"), logger).Debug("converted")

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	src, _ := entry["src"].(string)
	if !strings.HasPrefix(src, "logger_test.go:") {
		t.Fatalf("expected src key with file:line, got %#v", entry)
	}
	if entry[logging.FieldRunID] != "run-9" {
		t.Fatalf("expected run id field, got %#v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewInvalidLevelDefaultsToInfo(t *testing.T) {
	opts, logPath := newFileLogger(t, "console", "invalid")
	logger, err := logging.New(*opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("visible")

	content := readLog(t, logPath)
	if strings.Contains(content, "hidden") || !strings.Contains(content, "visible") {
		t.Fatalf("expected info level filtering, got %q", content)
	}
}

func TestWithContextAddsFields(t *testing.T) {
	opts, logPath := newFileLogger(t, "console", "info")
	logger, err := logging.New(*opts)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-123")
	ctx = logging.WithSource(ctx, "/data/sh12.csv")
	logging.WithContext(ctx, logger).Info("contextual log")

	content := readLog(t, logPath)
	for _, want := range []string{"run_id=run-123", "source=/data/sh12.csv"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 8) {
		t.Fatal("expected nop logger to be disabled at every level")
	}
}
