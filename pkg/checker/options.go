package checker

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/wonderfulspam/config-drift/pkg/repo"
)

// Options describes one comparison run. The yaml tags match the keys of
// the tool configuration file, so CI invocations only have to supply the
// two revisions.
type Options struct {
	RepositoryURL    string `yaml:"repository_url"`
	ConfigPath       string `yaml:"configuration_file_path"`
	Query            string `yaml:"configuration_jq_query"`
	VersionFile      string `yaml:"version_file"`
	VersionRegexp    string `yaml:"version_regexp"`
	VersionTransform string `yaml:"version_transform"`

	// Revision specs come from the invocation context, never the file.
	BaseRev string `yaml:"-"`
	HeadRev string `yaml:"-"`
}

// Load reads options from a yaml configuration file.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file: %w", err)
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parsing configuration file %s: %w", path, err)
	}

	return &opts, nil
}

// Validate checks that a complete run configuration is present and
// well-formed.
func (o *Options) Validate() error {
	if err := o.ValidateFile(); err != nil {
		return err
	}
	if o.BaseRev == "" || o.HeadRev == "" {
		return errors.New("base and head revisions are required")
	}
	return nil
}

// ValidateFile checks the inputs that come from the configuration file,
// leaving out the revision specs supplied per invocation.
func (o *Options) ValidateFile() error {
	if o.RepositoryURL == "" {
		return errors.New("repository_url is required")
	}
	if o.ConfigPath == "" {
		return errors.New("configuration_file_path is required")
	}
	if o.VersionFile == "" {
		return errors.New("version_file is required")
	}
	if o.VersionRegexp == "" {
		return errors.New("version_regexp is required")
	}

	re, err := regexp.Compile(o.VersionRegexp)
	if err != nil {
		return fmt.Errorf("version_regexp: %w", err)
	}
	if re.NumSubexp() < 1 {
		return fmt.Errorf("version_regexp %q needs a capture group", o.VersionRegexp)
	}

	if _, err := repo.ParseRemote(o.RepositoryURL); err != nil {
		return err
	}

	return nil
}
