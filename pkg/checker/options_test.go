package checker

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".config-drift.yml")
	content := `repository_url: https://github.com/acme/widget
configuration_file_path: package.json
configuration_jq_query: .contributes.configuration.properties
version_file: Makefile
version_regexp: 'TAG = "([^"]+)"'
version_transform: v{}
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if opts.RepositoryURL != "https://github.com/acme/widget" {
		t.Errorf("repository_url: got %q", opts.RepositoryURL)
	}
	if opts.Query != ".contributes.configuration.properties" {
		t.Errorf("configuration_jq_query: got %q", opts.Query)
	}
	if opts.VersionRegexp != `TAG = "([^"]+)"` {
		t.Errorf("version_regexp: got %q", opts.VersionRegexp)
	}
	if opts.VersionTransform != "v{}" {
		t.Errorf("version_transform: got %q", opts.VersionTransform)
	}

	if err := opts.ValidateFile(); err != nil {
		t.Errorf("Expected loaded file to validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte(":\n\t- nope"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for malformed yaml")
	}
}
