// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dandiviz/dandidash/internal/output"
	"github.com/dandiviz/dandidash/internal/pipeline"
)

// Build command flags.
var (
	buildModalities  []string
	buildCache       bool
	buildConcurrency int
)

// buildCmd runs the full dashboard build.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the plot dashboard for a dandiset",
	Long: `Fetch the dandiset's asset metadata and write the dashboard: a Modality x
Subject overview, one Stain x Sample plot per subject with Neuroglancer links,
and the page that selects between them.

Flags override DANDIDASH_* environment variables, which override
.dandidash.yaml (or .dandidash.toml) in the current directory, which
overrides the global config.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.String("dandiset", "", "dandiset identifier (default "+pipeline.DefaultDandiset+")")
	f.String("version", "", "dandiset version (default: latest published, else draft)")
	f.String("api-url", "", "DANDI API base URL")
	f.String("plots-dir", "", "directory for plot files (default "+pipeline.DefaultPlotsDir+")")
	f.StringP("output", "o", "", "selector page path (default "+pipeline.DefaultOutput+")")
	f.String("format", "", "page format: "+formatList()+" (default "+pipeline.DefaultFormat+")")
	f.String("template", "", "render the page with a custom Go template file")
	f.String("title", "", "page title")
	f.StringSliceVar(&buildModalities, "modalities", nil, "modalities shown in the Modality x Subject plot")
	f.BoolVar(&buildCache, "cache", false, "reuse and update the checkpoint cache")
	f.String("cache-dir", "", "checkpoint cache directory")
	f.IntVar(&buildConcurrency, "concurrency", 0, "parallel API requests and plot writes")
}

func formatList() string {
	return strings.Join(output.Names(), ", ")
}

// buildFlagConfig collects the build flags that were set.
func buildFlagConfig(cmd *cobra.Command) pipeline.Config {
	f := cmd.Flags()
	return pipeline.Config{
		Dandiset:    stringFlag(f, "dandiset"),
		Version:     stringFlag(f, "version"),
		APIURL:      stringFlag(f, "api-url"),
		PlotsDir:    stringFlag(f, "plots-dir"),
		Output:      stringFlag(f, "output"),
		Format:      stringFlag(f, "format"),
		Template:    stringFlag(f, "template"),
		Title:       stringFlag(f, "title"),
		Modalities:  buildModalities,
		Cache:       buildCache,
		CacheDir:    stringFlag(f, "cache-dir"),
		Concurrency: buildConcurrency,
	}
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(buildFlagConfig(cmd))
	if err != nil {
		return err
	}
	if cfg.Template == "" && cfg.Format != "" {
		if _, err := output.GetFormatter(cfg.Format); err != nil {
			return exitError(ExitFailure, "dandidash: %v", err)
		}
	}
	p, err := pipeline.New(cfg, nil)
	if err != nil {
		return exitError(ExitFailure, "dandidash: %v", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	res, err := p.Run(ctx)
	if err != nil {
		return exitError(ExitFailure, "dandidash: build failed (%v)", err)
	}
	if !quiet {
		printBuildSummary(cmd.OutOrStdout(), res)
	}
	return nil
}

func printBuildSummary(w io.Writer, res *pipeline.Result) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	_, _ = bold.Fprintf(w, "dandidash: built %s (version %s)\n", res.Dandiset, res.Version)
	_, _ = fmt.Fprintf(w, "  %d assets, %d imaging, %d viewer links\n", res.Records, res.Refined, res.Links)
	if res.Skipped > 0 {
		_, _ = yellow.Fprintf(w, "  %d asset(s) skipped\n", res.Skipped)
	}
	if res.CacheHits > 0 {
		_, _ = fmt.Fprintf(w, "  %d cache hit(s)\n", res.CacheHits)
	}
	for _, ref := range res.Plots {
		_, _ = fmt.Fprintf(w, "  %s %s\n", green.Sprint("+"), ref.File)
	}
	_, _ = fmt.Fprintf(w, "  %s %s (%s)\n", green.Sprint("=>"), res.Output, res.Duration.Round(1_000_000))
}
