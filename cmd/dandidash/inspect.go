// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dandiviz/dandidash/internal/asset"
	"github.com/dandiviz/dandidash/internal/checkpoint"
	"github.com/dandiviz/dandidash/internal/dandi"
	"github.com/dandiviz/dandidash/internal/frame"
	"github.com/dandiviz/dandidash/internal/pipeline"
)

// Inspect command flags.
var inspectCache bool

// inspectCmd summarizes a dandiset's metadata without writing plots.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Summarize a dandiset's subjects, modalities and file types",
	Long: `Fetch and parse the dandiset's asset metadata and print a table of asset
counts per subject and modality, followed by totals per file extension.

With --cache, the asset listing is read from (and saved to) the same
checkpoint cache the build uses.`,
	Args: cobra.NoArgs,
	RunE: runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.String("dandiset", "", "dandiset identifier (default "+pipeline.DefaultDandiset+")")
	f.String("version", "", "dandiset version (default: latest published, else draft)")
	f.String("api-url", "", "DANDI API base URL")
	f.BoolVar(&inspectCache, "cache", false, "reuse and update the cached asset listing")
	f.String("cache-dir", "", "checkpoint cache directory")
}

func runInspect(cmd *cobra.Command, _ []string) error {
	f := cmd.Flags()
	cfg, err := resolveConfig(pipeline.Config{
		Dandiset: stringFlag(f, "dandiset"),
		Version:  stringFlag(f, "version"),
		APIURL:   stringFlag(f, "api-url"),
		Cache:    inspectCache,
		CacheDir: stringFlag(f, "cache-dir"),
	})
	if err != nil {
		return err
	}
	cfg = cfg.WithDefaults()

	ctx := cmd.Context()
	client := dandi.NewClient(cfg.APIURL, cfg.Token)
	version := cfg.Version
	if version == "" {
		ds, err := client.Dandiset(ctx, cfg.Dandiset)
		if err != nil {
			return exitError(ExitFailure, "dandidash: cannot resolve dandiset %s (%v)", cfg.Dandiset, err)
		}
		version = ds.Version
	}

	assets, err := inspectAssets(ctx, client, cfg, version)
	if err != nil {
		return exitError(ExitFailure, "dandidash: %v", err)
	}
	records := asset.FromAssets(assets)

	w := cmd.OutOrStdout()
	_, _ = color.New(color.Bold).Fprintf(w, "Dandiset %s (version %s): %d assets\n", cfg.Dandiset, version, len(records))
	_, _ = fmt.Fprintln(w, subjectModalityTable(records))
	_, _ = fmt.Fprintln(w, extensionTable(records))
	return nil
}

// inspectAssets lists the assets of one dandiset version, going through the
// checkpoint cache when it is enabled.
func inspectAssets(ctx context.Context, client *dandi.Client, cfg pipeline.Config, version string) ([]asset.Asset, error) {
	var store *checkpoint.Store
	key := pipeline.AssetsKey(cfg.Dandiset, version)
	if cfg.Cache {
		s, err := checkpoint.Open(cfg.CacheDir, "")
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		store = s
		var cached []asset.Asset
		hit, err := store.Get(key, &cached)
		if err != nil {
			return nil, fmt.Errorf("read cache %s: %w", key, err)
		}
		if hit {
			return cached, nil
		}
	}

	assets, err := client.Assets(ctx, cfg.Dandiset, version)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	assets = pipeline.DedupeAssets(assets)
	if store != nil {
		if err := store.Put(key, assets); err != nil {
			return nil, fmt.Errorf("write cache %s: %w", key, err)
		}
	}
	return assets, nil
}

// subjectModalityTable counts assets per subject (rows) and modality
// (columns). Assets without a subject or modality are not counted.
func subjectModalityTable(records []asset.Record) string {
	rows := frame.Filter(frame.Project(records, asset.ColSub, asset.ColModality),
		frame.Has(asset.ColSub, asset.ColModality))

	modalities := frame.Unique(rows, asset.ColModality)
	sort.Strings(modalities)
	col := make(map[string]int, len(modalities))
	for i, m := range modalities {
		col[m] = i
	}

	headers := append([]string{"Subject"}, modalities...)
	headers = append(headers, "Total")
	aligns := []columnAlignment{alignLeft}
	for range len(modalities) + 1 {
		aligns = append(aligns, alignRight)
	}

	var out [][]string
	for _, g := range frame.GroupBy(rows, asset.ColSub) {
		counts := make([]int, len(modalities))
		for _, r := range g.Rows {
			m, _ := r.Get(asset.ColModality)
			counts[col[m]]++
		}
		line := []string{g.Keys[0]}
		for _, n := range counts {
			line = append(line, countCell(n))
		}
		line = append(line, strconv.Itoa(len(g.Rows)))
		out = append(out, line)
	}
	return renderTable(headers, out, aligns)
}

// extensionTable counts assets per file extension, most common first.
func extensionTable(records []asset.Record) string {
	type total struct {
		ext   string
		count int
	}
	var totals []total
	for _, g := range frame.GroupBy(records, asset.ColExtension) {
		ext := g.Keys[0]
		if ext == "" {
			ext = "(none)"
		}
		totals = append(totals, total{ext: ext, count: len(g.Rows)})
	}
	sort.SliceStable(totals, func(i, j int) bool { return totals[i].count > totals[j].count })

	rows := make([][]string, len(totals))
	for i, t := range totals {
		rows[i] = []string{t.ext, strconv.Itoa(t.count)}
	}
	return renderTable([]string{"Extension", "Assets"}, rows, []columnAlignment{alignLeft, alignRight})
}

func countCell(n int) string {
	if n == 0 {
		return "-"
	}
	return strconv.Itoa(n)
}
