// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandiviz/dandidash/internal/neuroglancer"
)

func validRow() neuroglancer.Row {
	return neuroglancer.Row{
		Sub:      "I48",
		Sample:   "01",
		Stain:    "NeuN",
		Modality: "SPIM",
		URL:      "https://dandiarchive.s3.amazonaws.com/zarr/z1/",
	}
}

func TestValidateRow_Valid(t *testing.T) {
	assert.Empty(t, ValidateRow(validRow()))
}

func TestValidateRow_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*neuroglancer.Row)
		field  string
	}{
		{"empty sub", func(r *neuroglancer.Row) { r.Sub = "" }, "Sub"},
		{"blank sample", func(r *neuroglancer.Row) { r.Sample = "  " }, "Sample"},
		{"empty stain", func(r *neuroglancer.Row) { r.Stain = "" }, "Stain"},
		{"reserved stain", func(r *neuroglancer.Row) { r.Stain = neuroglancer.OverlapStain }, "Stain"},
		{"no url", func(r *neuroglancer.Row) { r.URL = "" }, "URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRow()
			tt.mutate(&r)
			errs := ValidateRow(r)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestValidateRow_CollectsAll(t *testing.T) {
	errs := ValidateRow(neuroglancer.Row{})
	assert.Len(t, errs, 4)
	assert.Equal(t, "Sub: must not be empty", errs[0].Error())
}

func TestConfig_Validate(t *testing.T) {
	assert.Empty(t, Config{}.WithDefaults().Validate())

	cfg := Config{}.WithDefaults()
	cfg.Concurrency = 0
	cfg.Output = ""
	cfg.Modalities = []string{"SPIM", ""}
	cfg.Neuroglancer.NormalizedRange = neuroglancer.Range{10, 1}
	errs := cfg.Validate()
	fields := make([]string, len(errs))
	for i, e := range errs {
		fields[i] = e.Field
	}
	assert.Equal(t, []string{"Concurrency", "Output", "Modalities", "Neuroglancer.NormalizedRange"}, fields)
}

func TestConfig_ValidateConcurrencyCap(t *testing.T) {
	cfg := Config{Concurrency: MaxConcurrency}.WithDefaults()
	assert.Empty(t, cfg.Validate())

	cfg.Concurrency = MaxConcurrency + 1
	errs := cfg.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "Concurrency", errs[0].Field)
	assert.Contains(t, errs[0].Message, "at most 64")
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	assert.Equal(t, "000026", cfg.Dandiset)
	assert.Equal(t, "https://api.dandiarchive.org/api", cfg.APIURL)
	assert.Equal(t, "plots", cfg.PlotsDir)
	assert.Equal(t, "DANDI_interactive_plot_selector.html", cfg.Output)
	assert.Equal(t, "selector", cfg.Format)
	assert.Equal(t, []string{"STER", "SPIM", "OCT"}, cfg.Modalities)
	assert.Equal(t, "SPIM", cfg.RefineModality)
	assert.Equal(t, "ome.zarr", cfg.RefineExtension)
	assert.Equal(t, "s3", cfg.ContentURLPattern)
	assert.Equal(t, 100.0, cfg.Neuroglancer.Contrast)
	assert.Equal(t, 1.0, cfg.Neuroglancer.Intensity)
	assert.Equal(t, "yz", cfg.Neuroglancer.Layout)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Empty(t, cfg.CacheDir, "no cache dir unless caching is on")

	cached := Config{Cache: true}.WithDefaults()
	assert.NotEmpty(t, cached.CacheDir)

	custom := Config{Dandiset: "000108", Modalities: []string{"OCT"}}.WithDefaults()
	assert.Equal(t, "DANDI 000108 interactive plots", custom.Title)
	assert.Equal(t, []string{"OCT"}, custom.Modalities)

	// Callers' slices are never shared with the defaults.
	cfg.Modalities[0] = "X"
	assert.Equal(t, "STER", DefaultModalities[0])
}
