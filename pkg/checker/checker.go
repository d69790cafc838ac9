// Package checker orchestrates one comparison run: resolve both
// revisions, fetch and extract each side, diff the two settings mappings
// and assemble the report. Each run is stateless; any failure aborts the
// whole run rather than degrading into a partial report.
package checker

import (
	"context"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"github.com/wonderfulspam/config-drift/pkg/differ"
	"github.com/wonderfulspam/config-drift/pkg/extractor"
	"github.com/wonderfulspam/config-drift/pkg/report"
	"github.com/wonderfulspam/config-drift/pkg/repo"
	"github.com/wonderfulspam/config-drift/pkg/version"
)

// side holds everything gathered for one end of the comparison.
type side struct {
	rev      string
	raw      []byte
	settings extractor.Settings
	version  string
}

// Run performs a full comparison between the base and head revisions in
// opts. The two sides are gathered concurrently; the first error cancels
// the other side and aborts the run.
func Run(ctx context.Context, client repo.Client, opts Options) (*report.Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var base, head side
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return collect(gctx, client, opts, "base", opts.BaseRev, &base) })
	g.Go(func() error { return collect(gctx, client, opts, "head", opts.HeadRev, &head) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := differ.Compare(base.settings, head.settings)

	rep := report.Assemble(base.version, head.version, entries)
	rep.RepositoryURL = opts.RepositoryURL
	rep.ConfigPath = opts.ConfigPath
	rep.BaseRev = base.rev
	rep.HeadRev = head.rev

	if string(base.raw) != string(head.raw) {
		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(base.raw)),
			B:        difflib.SplitLines(string(head.raw)),
			FromFile: opts.BaseRev,
			ToFile:   opts.HeadRev,
			Context:  3,
		})
		if err != nil {
			return nil, fmt.Errorf("rendering raw diff: %w", err)
		}
		rep.RawDiff = diff
	}

	return rep, nil
}

// collect gathers one side: resolve the revision, fetch and extract the
// settings, fetch and extract the version label. Every error is prefixed
// with the side label so the operator can tell base from head failures.
func collect(ctx context.Context, client repo.Client, opts Options, label, spec string, out *side) error {
	rev, err := client.ResolveRevision(ctx, spec)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}

	raw, err := client.GetRawFile(ctx, opts.ConfigPath, rev)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}

	settings, err := extractor.Extract(raw, opts.Query)
	if err != nil {
		return fmt.Errorf("%s: %s at %s: %w", label, opts.ConfigPath, spec, err)
	}

	versionRaw, err := client.GetRawFile(ctx, opts.VersionFile, rev)
	if err != nil {
		return fmt.Errorf("%s: %w", label, err)
	}

	ver, err := version.Extract(versionRaw, opts.VersionRegexp, opts.VersionTransform)
	if err != nil {
		return fmt.Errorf("%s: %s at %s: %w", label, opts.VersionFile, spec, err)
	}

	*out = side{rev: rev, raw: raw, settings: settings, version: ver}
	return nil
}
