package organizer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLocked reports that another run holds the organized tree.
	ErrLocked = errors.New("organized directory is locked by another run")

	ErrRead    = errors.New("read error")
	ErrCopy    = errors.New("copy error")
	ErrConvert = errors.New("convert error")
)

// wrap tags err with one of the sentinels above along with the operation
// that failed.
func wrap(marker error, operation, message string, err error) error {
	detail := buildDetail(operation, message)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ErrorKind returns a short label for the sentinel err carries.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRead):
		return "read"
	case errors.Is(err, ErrCopy):
		return "copy"
	case errors.Is(err, ErrConvert):
		return "convert"
	default:
		return "unknown"
	}
}

func buildDetail(operation, message string) string {
	parts := make([]string, 0, 2)
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "organizer failure"
	}
	return strings.Join(parts, ": ")
}
