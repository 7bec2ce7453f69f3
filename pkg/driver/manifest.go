package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ManifestName is the file the CLI looks for when invoked without source
// file arguments.
const ManifestName = "qalo.yml"

// Manifest represents the parsed contents of qalo.yml: the project name,
// the ordered list of source files to execute, and the runner policy.
type Manifest struct {
	Path            string   `yaml:"-"`
	Name            string   `yaml:"name"`
	Files           []string `yaml:"files"`
	ContinueOnError bool     `yaml:"continue_on_error"`
}

// ValidationError aggregates manifest validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "manifest: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadManifest parses qalo.yml from disk, returning a validated manifest.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	manifest, err := ParseManifest(raw)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	manifest.Path = abs
	return manifest, nil
}

// ParseManifest decodes and validates manifest bytes.
func ParseManifest(raw []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(raw, &manifest); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	var issues []string
	if strings.TrimSpace(manifest.Name) == "" {
		issues = append(issues, "name must not be empty")
	}
	if len(manifest.Files) == 0 {
		issues = append(issues, "files must list at least one source file")
	}
	for _, file := range manifest.Files {
		if strings.TrimSpace(file) == "" {
			issues = append(issues, "files must not contain empty entries")
			continue
		}
		if filepath.Ext(file) != ".ql" {
			issues = append(issues, fmt.Sprintf("file %q does not have the .ql extension", file))
		}
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return &manifest, nil
}

// ResolveFiles returns the manifest's source files resolved relative to the
// manifest's directory, preserving order.
func (m *Manifest) ResolveFiles() []string {
	base := filepath.Dir(m.Path)
	resolved := make([]string, 0, len(m.Files))
	for _, file := range m.Files {
		if filepath.IsAbs(file) {
			resolved = append(resolved, filepath.Clean(file))
			continue
		}
		resolved = append(resolved, filepath.Join(base, filepath.FromSlash(file)))
	}
	return resolved
}
