// Package textio turns instrument export bytes into text on a best-effort
// basis. UTF-8 and UTF-16 byte order marks are honoured; bytes that do not
// decode are dropped rather than failing the read.
package textio

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// MaxFileBytes bounds how much of a single file is read into memory.
const MaxFileBytes = 256 << 20

func newDecoder() transform.Transformer {
	return transform.Chain(
		unicode.BOMOverride(unicode.UTF8.NewDecoder()),
		runes.ReplaceIllFormed(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == utf8.RuneError })),
	)
}

// Decode converts raw bytes to text, dropping anything that does not decode.
func Decode(data []byte) string {
	out, _, err := transform.Bytes(newDecoder(), data)
	if err != nil {
		// The chain only fails on internal buffer limits; fall back to the
		// plain UTF-8 repair so callers always receive text.
		return strings.ToValidUTF8(string(data), "")
	}
	return string(out)
}

// ReadFile reads and decodes the file at path.
func ReadFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("read %s: is a directory", path)
	}
	if info.Size() > MaxFileBytes {
		return "", fmt.Errorf("read %s: %d bytes exceeds limit of %d", path, info.Size(), MaxFileBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Decode(data), nil
}

// Lines splits text into lines without their terminators. "\r\n" and a
// bare "\n" both end a line; a trailing terminator does not produce an
// empty final line.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
