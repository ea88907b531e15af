// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"os"
	"path/filepath"

	"github.com/dandiviz/dandidash/internal/dandi"
	"github.com/dandiviz/dandidash/internal/neuroglancer"
)

// Defaults for a build of the demo dataset.
const (
	DefaultDandiset          = "000026"
	DefaultPlotsDir          = "plots"
	DefaultOutput            = "DANDI_interactive_plot_selector.html"
	DefaultFormat            = "selector"
	DefaultRefineModality    = "SPIM"
	DefaultRefineExtension   = "ome.zarr"
	DefaultContentURLPattern = "s3"
	DefaultConcurrency       = 8
	MaxConcurrency           = 64
	DefaultContrast          = 100.0
	DefaultIntensity         = 1.0
)

// DefaultModalities are the modalities shown in the Modality x Subject plot.
var DefaultModalities = []string{"STER", "SPIM", "OCT"}

// Config holds everything one build needs. Zero fields fall back to the
// defaults above through WithDefaults.
type Config struct {
	Dandiset string
	// Version pins a dandiset version; empty resolves the most recent
	// published version, or the draft.
	Version string
	APIURL  string
	Token   string

	PlotsDir string
	Output   string
	Format   string
	// Template, when set, replaces the built-in page with a user template.
	Template string
	Title    string

	Modalities        []string
	RefineModality    string
	RefineExtension   string
	ContentURLPattern string
	Neuroglancer      neuroglancer.Options

	Concurrency int

	// Cache enables the checkpoint cache in CacheDir.
	Cache    bool
	CacheDir string
}

// DefaultCacheDir is the per-user cache location, or a directory under the
// system temp dir when the user cache dir is unknown.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "dandidash")
	}
	return filepath.Join(os.TempDir(), "dandidash-cache")
}

// WithDefaults returns c with every zero field replaced by its default.
func (c Config) WithDefaults() Config {
	if c.Dandiset == "" {
		c.Dandiset = DefaultDandiset
	}
	if c.APIURL == "" {
		c.APIURL = dandi.DefaultBaseURL
	}
	if c.PlotsDir == "" {
		c.PlotsDir = DefaultPlotsDir
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.Title == "" {
		c.Title = "DANDI " + c.Dandiset + " interactive plots"
	}
	if len(c.Modalities) == 0 {
		c.Modalities = append([]string(nil), DefaultModalities...)
	}
	if c.RefineModality == "" {
		c.RefineModality = DefaultRefineModality
	}
	if c.RefineExtension == "" {
		c.RefineExtension = DefaultRefineExtension
	}
	if c.ContentURLPattern == "" {
		c.ContentURLPattern = DefaultContentURLPattern
	}
	if c.Neuroglancer.Contrast == 0 {
		c.Neuroglancer.Contrast = DefaultContrast
	}
	if c.Neuroglancer.Intensity == 0 {
		c.Neuroglancer.Intensity = DefaultIntensity
	}
	c.Neuroglancer = c.Neuroglancer.WithDefaults()
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.Cache && c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir()
	}
	return c
}
