// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dandiviz/dandidash/internal/asset"
	"github.com/dandiviz/dandidash/internal/checkpoint"
	"github.com/dandiviz/dandidash/internal/dandi"
	"github.com/dandiviz/dandidash/internal/frame"
	"github.com/dandiviz/dandidash/internal/neuroglancer"
	"github.com/dandiviz/dandidash/internal/output"
	"github.com/dandiviz/dandidash/internal/plot"
)

// Cache key kinds.
const (
	assetsKind      = "assets"
	contentURLsKind = "content-urls"
)

// OverviewFile is the file name of the Modality x Subject plot.
const OverviewFile = "modality_subject.html"

// AssetsKey is the cache key of a dandiset version's asset listing.
func AssetsKey(dandiset, version string) string {
	return checkpoint.Key(assetsKind, dandiset, version)
}

// ContentURLsKey is the cache key of resolved content URLs. The pattern is
// hashed in so a different pattern never reuses stale URLs.
func ContentURLsKey(dandiset, version, pattern string) string {
	return checkpoint.Key(contentURLsKind, dandiset, version, ParamsHash(pattern))
}

// gather resolves the version and lists the dandiset's assets, reading and
// filling the cache when enabled.
func (p *Pipeline) gather(ctx context.Context, res *Result) (string, []asset.Record, error) {
	version := p.config.Version
	if version == "" {
		ds, err := p.source.Dandiset(ctx, p.config.Dandiset)
		if err != nil {
			return "", nil, fmt.Errorf("resolve dandiset %s: %w", p.config.Dandiset, err)
		}
		version = ds.Version
		slog.Debug("resolved version", "dandiset", ds.Identifier, "version", version, "name", ds.Name)
	}

	key := AssetsKey(p.config.Dandiset, version)
	var assets []asset.Asset
	hit, err := p.cacheGet(key, &assets)
	if err != nil {
		return "", nil, err
	}
	if hit {
		res.CacheHits++
		slog.Info("using cached asset listing", "key", key, "assets", len(assets))
	} else {
		assets, err = p.source.Assets(ctx, p.config.Dandiset, version)
		if err != nil {
			return "", nil, fmt.Errorf("list assets: %w", err)
		}
		assets = DedupeAssets(assets)
		if err := p.cachePut(key, assets); err != nil {
			return "", nil, err
		}
	}
	return version, asset.FromAssets(assets), nil
}

// overview writes the non-interactive Modality x Subject plot.
func (p *Pipeline) overview(records []asset.Record) (output.PlotRef, error) {
	rows := frame.Project(records, asset.ColSub, asset.ColModality)
	rows = frame.Filter(rows,
		frame.Has(asset.ColSub, asset.ColModality),
		frame.In(asset.ColModality, p.config.Modalities...))
	rows = frame.SortBy(rows, asset.ColSub, asset.ColModality)

	grid := plot.NewGrid("Modality x Subject",
		plot.CellsFrom(rows, asset.ColSub, asset.ColModality, ""), false).
		WithAxisNames("Subject", "Modality")

	path := filepath.Join(p.config.PlotsDir, OverviewFile)
	if err := grid.WriteFile(path); err != nil {
		return output.PlotRef{}, err
	}
	return p.plotRef(OverviewName, path)
}

// refine keeps the imaging assets viewer links are built for.
func (p *Pipeline) refine(records []asset.Record) []asset.Record {
	return frame.Filter(records,
		frame.Equals(asset.ColModality, p.config.RefineModality),
		frame.Equals(asset.ColExtension, p.config.RefineExtension))
}

// contentURLs resolves the content URL of every refined asset with bounded
// concurrency. Cached URLs are reused; only missing ones are fetched. Assets
// without a matching URL are left out of the result.
func (p *Pipeline) contentURLs(ctx context.Context, version string, refined []asset.Record, res *Result) (map[string]string, error) {
	key := ContentURLsKey(p.config.Dandiset, version, p.config.ContentURLPattern)
	urls := make(map[string]string, len(refined))
	hit, err := p.cacheGet(key, &urls)
	if err != nil {
		return nil, err
	}
	if hit {
		res.CacheHits++
	}

	var missing []string
	for _, r := range refined {
		if _, ok := urls[r.AssetID]; !ok {
			missing = append(missing, r.AssetID)
		}
	}
	if len(missing) == 0 {
		return urls, nil
	}
	slog.Debug("resolving content urls", "assets", len(missing), "concurrency", p.config.Concurrency)

	resolved := make([]string, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.Concurrency)
	for i, id := range missing {
		g.Go(func() error {
			u, err := p.source.ContentURL(gctx, id, p.config.ContentURLPattern)
			if errors.Is(err, dandi.ErrNoContentURL) {
				slog.Warn("asset has no matching content url", "asset", id, "pattern", p.config.ContentURLPattern)
				return nil
			}
			if err != nil {
				return fmt.Errorf("content url for asset %s: %w", id, err)
			}
			resolved[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	added := 0
	for i, id := range missing {
		if resolved[i] != "" {
			urls[id] = resolved[i]
			added++
		}
	}
	if added > 0 {
		if err := p.cachePut(key, urls); err != nil {
			return nil, err
		}
	}
	return urls, nil
}

// links builds the viewer links. Rows without a content URL or lacking a
// sample or stain entity are skipped and counted.
func (p *Pipeline) links(refined []asset.Record, urls map[string]string) ([]neuroglancer.Row, int, error) {
	rows := make([]neuroglancer.Row, 0, len(refined))
	skipped := 0
	for _, r := range refined {
		row := neuroglancer.Row{URL: urls[r.AssetID]}
		row.Sub, _ = r.Get(asset.ColSub)
		row.Sample, _ = r.Get(asset.ColSample)
		row.Stain, _ = r.Get(asset.ColStain)
		row.Modality, _ = r.Get(asset.ColModality)

		if errs := ValidateRow(row); len(errs) > 0 {
			slog.Warn("skipping asset", "path", r.Path, "reason", joinErrors(errs))
			skipped++
			continue
		}
		rows = append(rows, row)
	}

	rows = frame.SortBy(rows, asset.ColSub)
	links, err := neuroglancer.Links(rows, p.config.Neuroglancer)
	if err != nil {
		return nil, 0, fmt.Errorf("build viewer links: %w", err)
	}
	return links, skipped, nil
}

// subjectPlots writes one interactive Stain x Sample plot per subject, in
// subject order, rendering them concurrently.
func (p *Pipeline) subjectPlots(ctx context.Context, links []neuroglancer.Row) ([]output.PlotRef, error) {
	subjects := frame.Unique(links, asset.ColSub)
	refs := make([]output.PlotRef, len(subjects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.Concurrency)
	for i, sub := range subjects {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows := frame.Filter(links, frame.Equals(asset.ColSub, sub))
			rows = frame.SortBy(rows, asset.ColSample, asset.ColStain)

			grid := plot.NewGrid(sub+" - Stain x Sample",
				plot.CellsFrom(rows, asset.ColSample, asset.ColStain, "url"), true)

			path := filepath.Join(p.config.PlotsDir, sub+".html")
			if err := grid.WriteFile(path); err != nil {
				return err
			}
			ref, err := p.plotRef(sub, path)
			if err != nil {
				return err
			}
			refs[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

func (p *Pipeline) cacheGet(key string, v any) (bool, error) {
	if p.store == nil {
		return false, nil
	}
	hit, err := p.store.Get(key, v)
	if err != nil {
		return false, fmt.Errorf("read cache %s: %w", key, err)
	}
	return hit, nil
}

func (p *Pipeline) cachePut(key string, v any) error {
	if p.store == nil {
		return nil
	}
	if err := p.store.Put(key, v); err != nil {
		return fmt.Errorf("write cache %s: %w", key, err)
	}
	return nil
}

func joinErrors(errs []ValidationError) string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}
