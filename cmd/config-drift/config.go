package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/config-drift/pkg/checker"
)

const defaultConfigFile = ".config-drift.yml"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage config-drift configuration",
	Long:  `Manage config-drift configuration files, including initialization and validation.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init [file]",
	Short: "Generate a default configuration file",
	Long: `Generate a config-drift configuration file with every recognized key and
a commented example. If no file is specified, creates ` + defaultConfigFile + `
in the current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a configuration file",
	Long:  `Validate a config-drift configuration file for correctness.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigValidate,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	outputFile := defaultConfigFile
	if len(args) > 0 {
		outputFile = args[0]
	}

	if _, err := os.Stat(outputFile); err == nil {
		return fmt.Errorf("configuration file %s already exists", outputFile)
	}

	exampleConfig := `# config-drift configuration file
# Defines which repository and files to compare. The two revisions are
# passed per invocation:
#   config-drift check --base v1.0.0 --head v1.1.0

# Repository containing the configuration to watch.
repository_url: https://github.com/acme/widget

# File holding the settings structure, relative to the repository root.
configuration_file_path: package.json

# jq-style query projecting the settings mapping out of the file.
# Omit (or use ".") to treat the whole document as the settings mapping.
configuration_jq_query: .contributes.configuration.properties

# File declaring the release version, and the pattern capturing it.
# The pattern needs exactly one capture group.
version_file: Makefile
version_regexp: 'TAG = "([^"]+)"'

# Optional template applied to the captured version; {} is the capture.
version_transform: v{}
`

	if err := os.WriteFile(outputFile, []byte(exampleConfig), 0644); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Configuration file created: %s\n", outputFile)
	fmt.Fprintf(cmd.OutOrStdout(), "\nYou can now:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "1. Edit the file to point at your repository\n")
	fmt.Fprintf(cmd.OutOrStdout(), "2. Run: config-drift check --config=%s --base <rev> --head <rev>\n", outputFile)
	fmt.Fprintf(cmd.OutOrStdout(), "3. Validate it with: config-drift config validate %s\n", outputFile)

	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	configFile := args[0]

	opts, err := checker.Load(configFile)
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	if err := opts.ValidateFile(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✅ Configuration is valid!\n\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Summary:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Repository: %s\n", opts.RepositoryURL)
	fmt.Fprintf(cmd.OutOrStdout(), "  Settings file: %s\n", opts.ConfigPath)
	if opts.Query != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  Query: %s\n", opts.Query)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "  Query: (whole document)\n")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "  Version file: %s\n", opts.VersionFile)
	fmt.Fprintf(cmd.OutOrStdout(), "  Version pattern: %s\n", opts.VersionRegexp)
	if opts.VersionTransform != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "  Version transform: %s\n", opts.VersionTransform)
	}

	return nil
}
