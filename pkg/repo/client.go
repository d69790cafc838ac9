package repo

import (
	"context"
	"time"
)

// Client is the repository access boundary: resolving revision specs to
// concrete commits, fetching raw file contents at a revision and posting
// review feedback. The comparison core only ever sees this interface.
type Client interface {
	// ResolveRevision resolves a tag, branch or commit spec to a commit SHA.
	ResolveRevision(ctx context.Context, spec string) (string, error)

	// GetRawFile returns the raw bytes of the file at path as of revision.
	GetRawFile(ctx context.Context, path, revision string) ([]byte, error)

	// PostComment attaches body to the given pull request.
	PostComment(ctx context.Context, prNumber int, body string) error
}

// Config holds connection settings for a hosted repository client.
type Config struct {
	// Token authenticates API requests. Empty means anonymous access,
	// which GitHub rate-limits aggressively but allows for public repos.
	Token string

	// BaseURL points at a GitHub Enterprise instance. Empty means the
	// public GitHub API.
	BaseURL string

	Timeout time.Duration
}

const defaultTimeout = 30 * time.Second
