// Package manifest reads and writes the batch job list.
package manifest

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Entry is one manifest row. FilePath is required; the remaining columns
// fall back to batch-level defaults when empty.
type Entry struct {
	FilePath   string
	Model      string
	Prompt     string
	ExportPath string
}

// Columns recognized in the manifest header. Only file_path is mandatory.
const (
	colFilePath   = "file_path"
	colModel      = "model"
	colPrompt     = "prompt"
	colExportPath = "export_path"
)

// Load reads a CSV manifest. The first row is the header; column order does
// not matter and optional columns may be absent entirely.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("manifest: %s is empty (no header row)", path)
	}

	col := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		col[h] = i
	}
	if _, ok := col[colFilePath]; !ok {
		return nil, fmt.Errorf("manifest: %s is missing the %q column", path, colFilePath)
	}

	cell := func(row []string, name string) string {
		if i, ok := col[name]; ok {
			return row[i]
		}
		return ""
	}

	entries := make([]Entry, 0, len(records)-1)
	for i, row := range records[1:] {
		e := Entry{
			FilePath:   cell(row, colFilePath),
			Model:      cell(row, colModel),
			Prompt:     cell(row, colPrompt),
			ExportPath: cell(row, colExportPath),
		}
		if e.FilePath == "" {
			return nil, fmt.Errorf("manifest: row %d has an empty %s", i+2, colFilePath)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

// WriteTemplate creates an example manifest with the header row and
// placeholder entries.
func WriteTemplate(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("manifest: create template %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	w := csv.NewWriter(f)
	rows := [][]string{
		{colFilePath, colModel, colPrompt, colExportPath},
		{"path/to/code1.py", "", "", ""},
		{"path/to/code2.py", "", "", ""},
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("manifest: write template: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("manifest: write template: %w", err)
	}
	return nil
}
