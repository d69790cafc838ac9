package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonderfulspam/config-drift/pkg/checker"
	"github.com/wonderfulspam/config-drift/pkg/repo"
)

var checkCmd = &cobra.Command{
	Use:   "check --base <rev> --head <rev>",
	Short: "Compare settings between two revisions",
	Long: `Fetches the configuration file at two revisions, extracts the settings
mapping from each, and reports added, removed and changed settings
together with the version transition. The report can be printed or
posted directly on a pull request.`,
	RunE: runCheck,
}

var (
	checkConfigFile  string
	repoURL          string
	configPath       string
	jqQuery          string
	versionFile      string
	versionRegexp    string
	versionTransform string
	baseRev          string
	headRev          string
	format           string
	outputFile       string
	apiToken         string
	postPR           int
)

func init() {
	checkCmd.Flags().StringVar(&checkConfigFile, "config", "", "Path to a configuration file (default: "+defaultConfigFile+" if present)")
	checkCmd.Flags().StringVar(&repoURL, "repo", "", "Repository URL")
	checkCmd.Flags().StringVar(&configPath, "path", "", "Path to the settings file within the repository")
	checkCmd.Flags().StringVar(&jqQuery, "query", "", "jq-style query selecting the settings mapping (default: whole document)")
	checkCmd.Flags().StringVar(&versionFile, "version-file", "", "Path to the file declaring the version")
	checkCmd.Flags().StringVar(&versionRegexp, "version-regexp", "", "Pattern with one capture group matching the version")
	checkCmd.Flags().StringVar(&versionTransform, "version-transform", "", "Template applied to the captured version ({} is the capture)")
	checkCmd.Flags().StringVar(&baseRev, "base", "", "Base revision (tag, branch or commit)")
	checkCmd.Flags().StringVar(&headRev, "head", "", "Head revision (tag, branch or commit)")
	checkCmd.Flags().StringVar(&format, "format", "markdown", "Output format (markdown, text, json)")
	checkCmd.Flags().StringVar(&outputFile, "output", "", "Output file for the report (default: stdout)")
	checkCmd.Flags().StringVar(&apiToken, "token", "", "API token (default: $GITHUB_TOKEN)")
	checkCmd.Flags().IntVar(&postPR, "post-pr", 0, "Pull request number to post the report on")

	checkCmd.MarkFlagRequired("base")
	checkCmd.MarkFlagRequired("head")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions(checkConfigFile)
	if err != nil {
		return err
	}

	applyFlagOverrides(opts)
	opts.BaseRev = baseRev
	opts.HeadRev = headRev

	token := apiToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	ctx := cmd.Context()

	client, err := repo.NewGitHub(ctx, opts.RepositoryURL, &repo.Config{Token: token})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Comparing %s against %s...\n", headRev, baseRev)

	rep, err := checker.Run(ctx, client, *opts)
	if err != nil {
		return err
	}

	output, err := rep.Render(format)
	if err != nil {
		return err
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", outputFile)
	} else {
		fmt.Println(output)
	}

	if postPR > 0 {
		// Review comments are always markdown, whatever was printed.
		body, err := rep.Render("markdown")
		if err != nil {
			return err
		}
		if err := client.PostComment(ctx, postPR, body); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Report posted on #%d\n", postPR)
	}

	if rep.HasChanges {
		fmt.Fprintf(os.Stderr, "\n✓ Comparison complete: %s\n", rep.Summary)
	} else {
		fmt.Fprintln(os.Stderr, "\n✓ No settings changed")
	}

	return nil
}

// loadOptions reads the configuration file when one is given or the
// default file exists; otherwise it starts from empty options and relies
// on flags.
func loadOptions(path string) (*checker.Options, error) {
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err == nil {
			path = defaultConfigFile
		}
	}
	if path == "" {
		return &checker.Options{}, nil
	}
	return checker.Load(path)
}

func applyFlagOverrides(opts *checker.Options) {
	if repoURL != "" {
		opts.RepositoryURL = repoURL
	}
	if configPath != "" {
		opts.ConfigPath = configPath
	}
	if jqQuery != "" {
		opts.Query = jqQuery
	}
	if versionFile != "" {
		opts.VersionFile = versionFile
	}
	if versionRegexp != "" {
		opts.VersionRegexp = versionRegexp
	}
	if versionTransform != "" {
		opts.VersionTransform = versionTransform
	}
}
