package repo

import "fmt"

// ResolutionError reports a revision spec that could not be resolved,
// whether because the ref does not exist or the repository is unreachable.
type ResolutionError struct {
	Spec string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving revision %q: %v", e.Spec, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// FetchError reports a file that could not be retrieved at a revision,
// including transport timeouts.
type FetchError struct {
	Path     string
	Revision string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %q at %s: %v", e.Path, e.Revision, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
