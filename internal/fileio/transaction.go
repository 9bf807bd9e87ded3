// Package fileio applies candidate output to disk with backup-before-write
// and atomic replacement semantics.
package fileio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// BackupSuffix is appended to the original path to name the backup artifact.
const BackupSuffix = ".bak"

// WriteResult reports what a completed transaction wrote and measured.
type WriteResult struct {
	LinesBefore int
	LinesAfter  int
	BackupPath  string
	OutputPath  string
}

// BackupPath returns the deterministic backup location for a file.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CountLines counts the lines in source text. A single trailing newline does
// not count as an extra line; empty content has zero lines.
func CountLines(s string) int {
	if s == "" {
		return 0
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Count(s, "\n") + 1
}

// Apply writes candidate text for originalPath. The original bytes are copied
// to a backup first; the original is only touched once the backup is
// confirmed on disk. With a non-empty exportPath the candidate goes there and
// the original stays untouched. Destination writes go through a temp file and
// rename, so a failed write never leaves a partially written file behind.
func Apply(originalPath, candidate, exportPath string) (WriteResult, error) {
	original, err := os.ReadFile(originalPath)
	if err != nil {
		return WriteResult{}, fmt.Errorf("read original: %w", err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(originalPath); err == nil {
		mode = info.Mode().Perm()
	}

	res := WriteResult{
		LinesBefore: CountLines(string(original)),
		LinesAfter:  CountLines(candidate),
		BackupPath:  BackupPath(originalPath),
	}

	if err := writeAtomic(res.BackupPath, original, mode); err != nil {
		return WriteResult{}, fmt.Errorf("write backup: %w", err)
	}
	written, err := os.ReadFile(res.BackupPath)
	if err != nil {
		return WriteResult{}, fmt.Errorf("verify backup: %w", err)
	}
	if !bytes.Equal(written, original) {
		return WriteResult{}, fmt.Errorf("verify backup: %s does not match original", res.BackupPath)
	}

	dest := originalPath
	if exportPath != "" {
		dest = exportPath
	}
	if err := writeAtomic(dest, []byte(candidate), mode); err != nil {
		return WriteResult{}, fmt.Errorf("write candidate: %w", err)
	}

	res.OutputPath = dest
	return res, nil
}

// writeAtomic writes data to a temp file in the destination directory and
// renames it into place.
func writeAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
