// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package pipeline builds the dashboard for one dandiset: it gathers asset
// metadata, renders the Modality x Subject overview and one Stain x Sample
// plot per subject with Neuroglancer links, and writes the selector page.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dandiviz/dandidash/internal/asset"
	"github.com/dandiviz/dandidash/internal/checkpoint"
	"github.com/dandiviz/dandidash/internal/dandi"
	"github.com/dandiviz/dandidash/internal/output"
	"github.com/dandiviz/dandidash/internal/testable"
)

// FS is the file system used to write the page. Tests may replace it.
var FS testable.FileSystem = testable.DefaultFS

// Stages is the number of build stages reported in progress logs.
const Stages = 7

// OverviewName is the selector label of the Modality x Subject plot.
const OverviewName = "Modality X Subject"

// Source is the metadata source a build reads from. *dandi.Client
// implements it.
type Source interface {
	Dandiset(ctx context.Context, id string) (*dandi.Dandiset, error)
	Assets(ctx context.Context, id, version string) ([]asset.Asset, error)
	ContentURL(ctx context.Context, assetID, pattern string) (string, error)
}

var _ Source = (*dandi.Client)(nil)

// Result summarizes a finished build.
type Result struct {
	RunID    string
	Dandiset string
	Version  string
	// Records is the number of parsed asset records.
	Records int
	// Refined is the number of imaging assets selected for viewer links.
	Refined int
	// Links is the number of viewer links, OVERLAP rows included.
	Links int
	// Skipped counts refined assets dropped for lacking a content URL or
	// required file name entities.
	Skipped   int
	CacheHits int
	Plots     []output.PlotRef
	Output    string
	Duration  time.Duration
}

// Pipeline runs one build.
type Pipeline struct {
	config Config
	source Source
	store  *checkpoint.Store
	runID  string
	now    func() time.Time
}

// New creates a Pipeline for cfg. When source is nil a DANDI API client is
// built from cfg. The checkpoint cache is opened when cfg.Cache is set.
func New(cfg Config, source Source) (*Pipeline, error) {
	cfg = cfg.WithDefaults()
	if errs := cfg.Validate(); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, fmt.Errorf("invalid build config: %w", errors.Join(joined...))
	}

	if source == nil {
		source = dandi.NewClient(cfg.APIURL, cfg.Token)
	}

	p := &Pipeline{
		config: cfg,
		source: source,
		runID:  uuid.NewString(),
		now:    time.Now,
	}
	if cfg.Cache {
		store, err := checkpoint.Open(cfg.CacheDir, p.runID)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		p.store = store
	}
	return p, nil
}

// Config returns the effective configuration, defaults applied.
func (p *Pipeline) Config() Config { return p.config }

// RunID identifies this build in logs, pages and cache entries.
func (p *Pipeline) RunID() string { return p.runID }

// Run executes every stage in order. A failing stage aborts the build.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := p.now()
	res := &Result{RunID: p.runID, Dandiset: p.config.Dandiset}
	slog.Info("building dashboard", "dandiset", p.config.Dandiset, "run", p.runID)

	// 1. Gather.
	version, records, err := p.gather(ctx, res)
	if err != nil {
		return nil, err
	}
	res.Version = version
	res.Records = len(records)
	p.done(1, "gather", "records", len(records), "version", version)

	// 2. Modality x Subject.
	overview, err := p.overview(records)
	if err != nil {
		return nil, err
	}
	p.done(2, "modality x subject", "plot", overview.File)

	// 3. Refine.
	refined := p.refine(records)
	res.Refined = len(refined)
	p.done(3, "refine", "assets", len(refined),
		"modality", p.config.RefineModality, "extension", p.config.RefineExtension)

	// 4. Content URLs.
	urls, err := p.contentURLs(ctx, version, refined, res)
	if err != nil {
		return nil, err
	}
	p.done(4, "content urls", "resolved", len(urls))

	// 5. Neuroglancer.
	links, skipped, err := p.links(refined, urls)
	if err != nil {
		return nil, err
	}
	res.Skipped = skipped
	res.Links = len(links)
	p.done(5, "neuroglancer", "links", len(links), "skipped", skipped)

	// 6. Per-subject plots.
	subjects, err := p.subjectPlots(ctx, links)
	if err != nil {
		return nil, err
	}
	p.done(6, "subject plots", "plots", len(subjects))

	// 7. Page.
	res.Plots = append([]output.PlotRef{overview}, subjects...)
	if err := p.writePage(version, res.Plots); err != nil {
		return nil, err
	}
	res.Output = p.config.Output
	p.done(7, "page", "output", p.config.Output)

	res.Duration = p.now().Sub(start)
	return res, nil
}

func (p *Pipeline) done(stage int, name string, args ...any) {
	attrs := append([]any{"stage", fmt.Sprintf("%d/%d", stage, Stages)}, args...)
	slog.Info(name+" done", attrs...)
}

// writePage renders the selector page for plots to the configured output.
func (p *Pipeline) writePage(version string, plots []output.PlotRef) error {
	var f output.Formatter
	if p.config.Template != "" {
		tf, err := output.NewTemplateFormatter(p.config.Template)
		if err != nil {
			return err
		}
		f = tf
	} else {
		bf, err := output.GetFormatter(p.config.Format)
		if err != nil {
			return err
		}
		f = bf
	}

	page := output.Page{
		Title:       p.config.Title,
		Dandiset:    p.config.Dandiset,
		Version:     version,
		RunID:       p.runID,
		GeneratedAt: p.now(),
		Plots:       plots,
	}

	var buf bytes.Buffer
	if err := f.Format(page, &buf); err != nil {
		return fmt.Errorf("format %s page: %w", f.Name(), err)
	}
	if dir := filepath.Dir(p.config.Output); dir != "." {
		if err := FS.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := FS.WriteFile(p.config.Output, buf.Bytes(), 0o644); err != nil { //nolint:gosec // the page is meant to be readable
		return fmt.Errorf("write page: %w", err)
	}
	return nil
}

// plotRef describes the plot file at path for a page written to the
// configured output. Href is relative to the page directory, with each path
// segment URL-escaped.
func (p *Pipeline) plotRef(name, path string) (output.PlotRef, error) {
	ref := output.PlotRef{Name: name, File: path}

	pageDir, err := FS.Abs(filepath.Dir(p.config.Output))
	if err != nil {
		return ref, fmt.Errorf("resolve output directory: %w", err)
	}
	abs, err := FS.Abs(path)
	if err != nil {
		return ref, fmt.Errorf("resolve plot path: %w", err)
	}
	rel, err := filepath.Rel(pageDir, abs)
	if err != nil {
		return ref, fmt.Errorf("relative plot path: %w", err)
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	ref.Href = strings.Join(segments, "/")
	return ref, nil
}
