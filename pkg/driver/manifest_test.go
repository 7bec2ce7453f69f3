package driver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseManifest(t *testing.T) {
	raw := []byte(`
name: demo
files:
  - scripts/main.ql
  - scripts/helpers.ql
continue_on_error: true
`)
	manifest, err := ParseManifest(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manifest.Name != "demo" {
		t.Fatalf("expected name demo, got %q", manifest.Name)
	}
	if len(manifest.Files) != 2 || manifest.Files[0] != "scripts/main.ql" {
		t.Fatalf("unexpected files: %v", manifest.Files)
	}
	if !manifest.ContinueOnError {
		t.Fatalf("expected continue_on_error to be set")
	}
}

func TestParseManifestDefaults(t *testing.T) {
	manifest, err := ParseManifest([]byte("name: demo\nfiles: [main.ql]\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if manifest.ContinueOnError {
		t.Fatalf("continue_on_error should default to false")
	}
}

func TestParseManifestValidation(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantIssue string
	}{
		{"missing name", "files: [main.ql]", "name must not be empty"},
		{"blank name", "name: \"  \"\nfiles: [main.ql]", "name must not be empty"},
		{"no files", "name: demo", "files must list at least one source file"},
		{"wrong extension", "name: demo\nfiles: [main.txt]", "does not have the .ql extension"},
		{"empty entry", "name: demo\nfiles: [\"\"]", "files must not contain empty entries"},
	}

	for _, tt := range tests {
		_, err := ParseManifest([]byte(tt.raw))
		if err == nil {
			t.Fatalf("%s: expected a validation error", tt.name)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected *ValidationError, got %T (%v)", tt.name, err, err)
		}
		if !strings.Contains(verr.Error(), tt.wantIssue) {
			t.Fatalf("%s: expected issue %q, got %q", tt.name, tt.wantIssue, verr.Error())
		}
	}
}

func TestParseManifestAggregatesIssues(t *testing.T) {
	_, err := ParseManifest([]byte("files: [main.txt]"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if len(verr.Issues) != 2 {
		t.Fatalf("expected both issues reported, got %v", verr.Issues)
	}
}

func TestParseManifestMalformedYAML(t *testing.T) {
	_, err := ParseManifest([]byte("name: [unclosed"))
	if err == nil {
		t.Fatalf("expected a decode error")
	}
	if !strings.Contains(err.Error(), "manifest:") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	raw := "name: demo\nfiles:\n  - scripts/main.ql\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(manifest.Path) {
		t.Fatalf("expected an absolute manifest path, got %q", manifest.Path)
	}

	files := manifest.ResolveFiles()
	want := filepath.Join(dir, "scripts", "main.ql")
	if len(files) != 1 || files[0] != want {
		t.Fatalf("expected %q, got %v", want, files)
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), ManifestName))
	if err == nil {
		t.Fatalf("expected an error for a missing manifest")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestResolveFilesKeepsAbsolutePaths(t *testing.T) {
	abs := filepath.Join(string(filepath.Separator), "opt", "scripts", "main.ql")
	manifest := &Manifest{Path: filepath.Join(string(filepath.Separator), "project", ManifestName), Files: []string{abs}}

	files := manifest.ResolveFiles()
	if len(files) != 1 || files[0] != abs {
		t.Fatalf("expected %q untouched, got %v", abs, files)
	}
}
