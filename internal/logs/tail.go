package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"cellsort/internal/logging"
)

const (
	maxLineBytes = 1024 * 1024
	pollInterval = 500 * time.Millisecond
)

// Last returns up to limit trailing lines of path and the offset of the end
// of the file. A missing file yields no lines and offset zero.
func Last(path string, limit int) ([]string, int64, error) {
	file, err := open(path)
	if err != nil || file == nil {
		return nil, 0, err
	}
	defer file.Close()

	if limit <= 0 {
		end, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("seek log file: %w", err)
		}
		return nil, end, nil
	}

	ring := make([]string, limit)
	count, idx := 0, 0
	end, err := scan(file, func(line string) {
		ring[idx] = line
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	})
	if err != nil {
		return nil, 0, err
	}

	lines := make([]string, count)
	if count == limit {
		for i := range count {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, end, nil
}

// ReadFrom returns the complete lines written after offset and the offset
// following the last one. An offset past the end (a truncated file) restarts
// from the beginning.
func ReadFrom(path string, offset int64) ([]string, int64, error) {
	file, err := open(path)
	if err != nil || file == nil {
		return nil, 0, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, 0, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("seek log file: %w", err)
	}

	var lines []string
	consumed := offset
	reader := bufio.NewReaderSize(file, 64*1024)
	for {
		chunk, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			// partial trailing line stays unread until its newline lands
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("read log file: %w", err)
		}
		consumed += int64(len(chunk))
		lines = append(lines, strings.TrimRight(chunk, "\r\n"))
	}
	return lines, consumed, nil
}

// Follow emits every line appended to path after offset until ctx is
// cancelled. It wakes on filesystem events for the log directory and polls as
// a fallback.
func Follow(ctx context.Context, path string, offset int64, emit func(string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create log watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch log directory: %w", err)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	drain := func() error {
		lines, next, err := ReadFrom(path, offset)
		if err != nil {
			return err
		}
		offset = next
		for _, line := range lines {
			emit(line)
		}
		return nil
	}

	if err := drain(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if err := drain(); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("log watcher: %w", err)
		case <-ticker.C:
			if err := drain(); err != nil {
				return err
			}
		}
	}
}

// MatchRun reports whether a log line belongs to runID. An empty runID
// matches everything.
func MatchRun(line, runID string) bool {
	if runID == "" {
		return true
	}
	return strings.Contains(line, logging.FieldRunID+"="+runID) ||
		strings.Contains(line, `"`+logging.FieldRunID+`":"`+runID+`"`)
}

func open(path string) (*os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("log path %q is a directory", path)
	}
	return file, nil
}

func scan(file *os.File, fn func(string)) (int64, error) {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read log file: %w", err)
	}
	end, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, fmt.Errorf("determine log offset: %w", err)
	}
	return end, nil
}
