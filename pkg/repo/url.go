package repo

import (
	"fmt"
	"strings"

	giturls "github.com/whilp/git-urls"
)

// Remote identifies a hosted repository by owner and name.
type Remote struct {
	Owner string
	Name  string
}

// ParseRemote extracts owner and repository name from an HTTPS, SSH or
// scp-like repository URL.
func ParseRemote(repoURL string) (Remote, error) {
	u, err := giturls.Parse(repoURL)
	if err != nil {
		return Remote{}, fmt.Errorf("parsing repository URL %q: %w", repoURL, err)
	}

	path := strings.Trim(u.Path, "/")
	path = strings.TrimSuffix(path, ".git")

	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Remote{}, fmt.Errorf("repository URL %q: expected an owner/name path, got %q", repoURL, u.Path)
	}

	return Remote{Owner: parts[0], Name: parts[1]}, nil
}
