package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeManifest(t,
		"file_path,model,prompt,export_path\n"+
			"a.py,gpt-4o,1,out/a.py\n"+
			"b.py,,,\n")

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	want := Entry{FilePath: "a.py", Model: "gpt-4o", Prompt: "1", ExportPath: "out/a.py"}
	if entries[0] != want {
		t.Errorf("entries[0] = %+v, want %+v", entries[0], want)
	}
	if entries[1] != (Entry{FilePath: "b.py"}) {
		t.Errorf("entries[1] = %+v, want only file_path set", entries[1])
	}
}

func TestLoadColumnOrderIndependent(t *testing.T) {
	path := writeManifest(t,
		"model,file_path\n"+
			"claude-3-7-sonnet,a.py\n")

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if entries[0].FilePath != "a.py" || entries[0].Model != "claude-3-7-sonnet" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
}

func TestLoadFilePathOnly(t *testing.T) {
	path := writeManifest(t, "file_path\na.py\nb.py\n")

	entries, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"missing file_path column", "model,prompt\ngpt-4o,1\n", "file_path"},
		{"empty file", "", "empty"},
		{"empty file_path cell", "file_path,model\n,gpt-4o\n", "row 2"},
		{"ragged row", "file_path,model\na.py\n", "parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("Load() on a missing file should fail")
	}
}

func TestWriteTemplateRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.csv")
	if err := WriteTemplate(path); err != nil {
		t.Fatalf("WriteTemplate() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "file_path,model,prompt,export_path\n") {
		t.Errorf("template missing header: %q", string(data))
	}

	// The template itself must load as a valid manifest.
	entries, err := Load(path)
	if err != nil {
		t.Fatalf("template does not load: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("template has %d example rows, want 2", len(entries))
	}
}
