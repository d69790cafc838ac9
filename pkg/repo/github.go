package repo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v29/github"
	"golang.org/x/oauth2"
)

// githubClient implements Client against the GitHub REST API.
type githubClient struct {
	remote Remote
	gh     *github.Client
}

// NewGitHub builds a Client for the repository at repoURL. A nil config
// means anonymous access with default timeouts.
func NewGitHub(ctx context.Context, repoURL string, config *Config) (Client, error) {
	if config == nil {
		config = &Config{}
	}

	remote, err := ParseRemote(repoURL)
	if err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	httpClient := &http.Client{Timeout: timeout}
	if config.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.Token})
		httpClient = oauth2.NewClient(ctx, ts)
		httpClient.Timeout = timeout
	}

	gh := github.NewClient(httpClient)
	if config.BaseURL != "" {
		gh, err = github.NewEnterpriseClient(config.BaseURL, config.BaseURL, httpClient)
		if err != nil {
			return nil, fmt.Errorf("configuring API base URL: %w", err)
		}
	}

	return &githubClient{remote: remote, gh: gh}, nil
}

func (c *githubClient) ResolveRevision(ctx context.Context, spec string) (string, error) {
	sha, _, err := c.gh.Repositories.GetCommitSHA1(ctx, c.remote.Owner, c.remote.Name, spec, "")
	if err != nil {
		return "", &ResolutionError{Spec: spec, Err: err}
	}
	return sha, nil
}

func (c *githubClient) GetRawFile(ctx context.Context, path, revision string) ([]byte, error) {
	opts := &github.RepositoryContentGetOptions{Ref: revision}

	file, _, _, err := c.gh.Repositories.GetContents(ctx, c.remote.Owner, c.remote.Name,
		strings.TrimPrefix(path, "/"), opts)
	if err != nil {
		return nil, &FetchError{Path: path, Revision: revision, Err: err}
	}
	if file == nil {
		return nil, &FetchError{Path: path, Revision: revision, Err: errors.New("path is a directory")}
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, &FetchError{Path: path, Revision: revision, Err: err}
	}

	return []byte(content), nil
}

func (c *githubClient) PostComment(ctx context.Context, prNumber int, body string) error {
	comment := &github.IssueComment{Body: github.String(body)}

	_, _, err := c.gh.Issues.CreateComment(ctx, c.remote.Owner, c.remote.Name, prNumber, comment)
	if err != nil {
		return fmt.Errorf("posting comment on #%d: %w", prNumber, err)
	}

	return nil
}
