package fileutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// CopyFileVerified copies src to dst with SHA256 + size integrity
// verification and returns the hex digest of the copied bytes. dst is
// removed on mismatch. Permission bits and modification time follow src.
func CopyFileVerified(src, dst string) (string, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("stat source: %w", err)
	}
	if srcInfo.IsDir() {
		return "", fmt.Errorf("copy %s: is a directory", src)
	}
	srcSize := srcInfo.Size()

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return "", err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(in, srcHasher)
	multi := io.MultiWriter(out, dstHasher)

	written, err := io.Copy(multi, tee)
	if err != nil {
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}

	if written != srcSize {
		_ = os.Remove(dst)
		return "", fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcSize, written)
	}
	sum := srcHasher.Sum(nil)
	if !bytes.Equal(sum, dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return "", fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return "", fmt.Errorf("chmod destination: %w", err)
	}
	mtime := srcInfo.ModTime()
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		return "", fmt.Errorf("preserve mtime: %w", err)
	}
	return hex.EncodeToString(sum), nil
}

// WriteFileAtomic writes through a temp file in the target directory and
// renames it into place, so readers never observe a partial file.
func WriteFileAtomic(path string, perm os.FileMode, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".cellsort-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Exists reports whether path names an existing file or directory.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// RemoveEmptyDirs deletes every empty directory below root, deepest first,
// so a parent emptied by its children's removal goes too. root itself is
// kept. It returns the removed paths.
func RemoveEmptyDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Deeper paths sort after their parents; reverse to go bottom-up.
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	var removed []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return removed, err
		}
		if len(entries) > 0 {
			continue
		}
		if err := os.Remove(dir); err != nil {
			return removed, err
		}
		removed = append(removed, dir)
	}
	return removed, nil
}
