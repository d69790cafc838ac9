package report

import (
	"strings"

	"github.com/wonderfulspam/config-drift/pkg/differ"
)

// Report is the sole externally visible artifact of a run: the two
// resolved version labels plus the structural diff, grouped by kind.
type Report struct {
	BaseVersion string         `json:"base_version"`
	HeadVersion string         `json:"head_version"`
	Added       []differ.Entry `json:"added"`
	Removed     []differ.Entry `json:"removed"`
	Changed     []differ.Entry `json:"changed"`
	HasChanges  bool           `json:"has_changes"`
	Summary     string         `json:"summary"`

	// Presentation context, filled in by the caller when known.
	RepositoryURL string `json:"repository_url,omitempty"`
	ConfigPath    string `json:"config_path,omitempty"`
	BaseRev       string `json:"base_rev,omitempty"`
	HeadRev       string `json:"head_rev,omitempty"`
	RawDiff       string `json:"raw_diff,omitempty"`
}

// Assemble combines the two version labels and the diff entries into a
// Report. Pure function of its inputs; the diff entries keep the order
// the differ produced.
func Assemble(baseVersion, headVersion string, entries []differ.Entry) *Report {
	r := &Report{
		BaseVersion: baseVersion,
		HeadVersion: headVersion,
		Added:       []differ.Entry{},
		Removed:     []differ.Entry{},
		Changed:     []differ.Entry{},
	}

	for _, entry := range entries {
		switch entry.Kind {
		case differ.KindAdded:
			r.Added = append(r.Added, entry)
		case differ.KindRemoved:
			r.Removed = append(r.Removed, entry)
		case differ.KindChanged:
			r.Changed = append(r.Changed, entry)
		}
	}

	r.HasChanges = len(entries) > 0
	r.Summary = differ.Summary(entries)

	return r
}

// SchemaURL returns a browsable link to the configuration file at the
// head revision, or "" when the report lacks the context for one.
func (r *Report) SchemaURL() string {
	if r.RepositoryURL == "" || r.HeadRev == "" || r.ConfigPath == "" {
		return ""
	}

	base := strings.TrimSuffix(r.RepositoryURL, "/")
	path := strings.TrimPrefix(r.ConfigPath, "/")

	return base + "/blob/" + r.HeadRev + "/" + path
}

func (r *Report) noChangesLine() string {
	return "No settings changed between `" + r.BaseVersion + "` and `" + r.HeadVersion + "`."
}
