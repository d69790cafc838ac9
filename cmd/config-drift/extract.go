package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/config-drift/pkg/extractor"
	"github.com/wonderfulspam/config-drift/pkg/repo"
)

var extractCmd = &cobra.Command{
	Use:   "extract --rev <rev>",
	Short: "Extract and display the settings mapping at one revision",
	Long: `Fetches the configuration file at a single revision, applies the query
and prints the extracted settings mapping as JSON. Useful for checking
that the query selects what you expect before wiring up a check.`,
	RunE: runExtract,
}

var (
	extractConfigFile string
	extractRepo       string
	extractPath       string
	extractQuery      string
	extractRev        string
	extractToken      string
)

func init() {
	extractCmd.Flags().StringVar(&extractConfigFile, "config", "", "Path to a configuration file (default: "+defaultConfigFile+" if present)")
	extractCmd.Flags().StringVar(&extractRepo, "repo", "", "Repository URL")
	extractCmd.Flags().StringVar(&extractPath, "path", "", "Path to the settings file within the repository")
	extractCmd.Flags().StringVar(&extractQuery, "query", "", "jq-style query selecting the settings mapping")
	extractCmd.Flags().StringVar(&extractRev, "rev", "", "Revision to inspect (tag, branch or commit)")
	extractCmd.Flags().StringVar(&extractToken, "token", "", "API token (default: $GITHUB_TOKEN)")

	extractCmd.MarkFlagRequired("rev")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(extractConfigFile)
	if err != nil {
		return err
	}

	if extractRepo != "" {
		opts.RepositoryURL = extractRepo
	}
	if extractPath != "" {
		opts.ConfigPath = extractPath
	}
	if extractQuery != "" {
		opts.Query = extractQuery
	}

	if opts.RepositoryURL == "" || opts.ConfigPath == "" {
		return fmt.Errorf("--repo and --path are required when no configuration file is present")
	}

	token := extractToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	ctx := cmd.Context()

	client, err := repo.NewGitHub(ctx, opts.RepositoryURL, &repo.Config{Token: token})
	if err != nil {
		return err
	}

	rev, err := client.ResolveRevision(ctx, extractRev)
	if err != nil {
		return err
	}

	raw, err := client.GetRawFile(ctx, opts.ConfigPath, rev)
	if err != nil {
		return err
	}

	settings, err := extractor.Extract(raw, opts.Query)
	if err != nil {
		return fmt.Errorf("%s at %s: %w", opts.ConfigPath, extractRev, err)
	}

	output, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}

	fmt.Println(string(output))
	return nil
}
