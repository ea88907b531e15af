// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandiviz/dandidash/internal/neuroglancer"
	"github.com/dandiviz/dandidash/internal/pipeline"
)

func boolPtr(b bool) *bool { return &b }

func TestMerge_CLIOverridesFile(t *testing.T) {
	fileCfg := &Config{Dandiset: "000108", Format: "inline", Concurrency: 2}
	cliCfg := pipeline.Config{Dandiset: "000026", Format: "json", Concurrency: 16}

	result := Merge(fileCfg, cliCfg)
	assert.Equal(t, "000026", result.Dandiset)
	assert.Equal(t, "json", result.Format)
	assert.Equal(t, 16, result.Concurrency)
}

func TestMerge_FileFillsInDefaults(t *testing.T) {
	fileCfg := &Config{
		Dandiset:          "000108",
		Version:           "draft",
		APIURL:            "https://api.sandbox.dandiarchive.org/api",
		PlotsDir:          "out",
		Output:            "out/index.html",
		Format:            "inline",
		Template:          "page.tmpl",
		Title:             "Brains",
		Modalities:        []string{"OCT"},
		Refine:            RefineConfig{Modality: "OCT", Extension: "nii.gz"},
		ContentURLPattern: "amazonaws",
		Neuroglancer:      neuroglancer.Options{Contrast: 10, Layout: "xy"},
		Concurrency:       3,
		Cache:             boolPtr(true),
		CacheDir:          "/var/cache/dd",
	}

	result := Merge(fileCfg, pipeline.Config{})
	assert.Equal(t, pipeline.Config{
		Dandiset:          "000108",
		Version:           "draft",
		APIURL:            "https://api.sandbox.dandiarchive.org/api",
		PlotsDir:          "out",
		Output:            "out/index.html",
		Format:            "inline",
		Template:          "page.tmpl",
		Title:             "Brains",
		Modalities:        []string{"OCT"},
		RefineModality:    "OCT",
		RefineExtension:   "nii.gz",
		ContentURLPattern: "amazonaws",
		Neuroglancer:      neuroglancer.Options{Contrast: 10, Layout: "xy"},
		Concurrency:       3,
		Cache:             true,
		CacheDir:          "/var/cache/dd",
	}, result)

	// The file's slice is not aliased.
	result.Modalities[0] = "X"
	assert.Equal(t, "OCT", fileCfg.Modalities[0])
}

func TestMerge_EmptyFileConfig(t *testing.T) {
	cliCfg := pipeline.Config{Dandiset: "000026", Cache: true}
	assert.Equal(t, cliCfg, Merge(&Config{}, cliCfg))
}

func TestMerge_CacheFalseInFileDoesNotDisableCLI(t *testing.T) {
	result := Merge(&Config{Cache: boolPtr(false)}, pipeline.Config{Cache: true})
	assert.True(t, result.Cache)
}

func TestMerge_NeuroglancerPerField(t *testing.T) {
	fileCfg := &Config{Neuroglancer: neuroglancer.Options{Contrast: 10, Intensity: 3}}
	cliCfg := pipeline.Config{Neuroglancer: neuroglancer.Options{Contrast: 50}}

	result := Merge(fileCfg, cliCfg)
	assert.Equal(t, 50.0, result.Neuroglancer.Contrast)
	assert.Equal(t, 3.0, result.Neuroglancer.Intensity)
}

func TestApplyEnv(t *testing.T) {
	e := Env{
		APIKey:      "secret",
		APIURL:      "https://env.example/api",
		CacheDir:    "/env/cache",
		Dandiset:    "000108",
		Modalities:  []string{"SPIM"},
		Concurrency: 2,
	}

	result := ApplyEnv(e, pipeline.Config{Dandiset: "000026"})
	assert.Equal(t, "secret", result.Token)
	assert.Equal(t, "https://env.example/api", result.APIURL)
	assert.Equal(t, "/env/cache", result.CacheDir)
	assert.Equal(t, "000026", result.Dandiset, "flags beat the environment")
	assert.Equal(t, []string{"SPIM"}, result.Modalities)
	assert.Equal(t, 2, result.Concurrency)
}

func TestPrecedence_FlagsEnvProjectGlobal(t *testing.T) {
	global := &Config{Dandiset: "g", APIURL: "https://global/api", PlotsDir: "global-plots", Format: "json"}
	project := &Config{APIURL: "https://project/api", PlotsDir: "project-plots"}
	e := Env{APIURL: "https://env/api"}
	cli := pipeline.Config{Format: "inline"}

	files := MergeConfigs(global, project)
	result := Merge(files, ApplyEnv(e, cli)).WithDefaults()

	assert.Equal(t, "inline", result.Format)
	assert.Equal(t, "https://env/api", result.APIURL)
	assert.Equal(t, "project-plots", result.PlotsDir)
	assert.Equal(t, "g", result.Dandiset)
	assert.Equal(t, pipeline.DefaultOutput, result.Output)
}

func TestMergeConfigs(t *testing.T) {
	global := &Config{
		Dandiset:     "000026",
		Format:       "json",
		Modalities:   []string{"STER"},
		Cache:        boolPtr(true),
		Neuroglancer: neuroglancer.Options{Contrast: 5, Intensity: 2},
	}
	project := &Config{
		Format:       "inline",
		Cache:        boolPtr(false),
		Neuroglancer: neuroglancer.Options{Contrast: 7},
	}

	merged := MergeConfigs(global, project)
	require.NotNil(t, merged.Cache)
	assert.False(t, *merged.Cache)
	assert.Equal(t, "000026", merged.Dandiset)
	assert.Equal(t, "inline", merged.Format)
	assert.Equal(t, []string{"STER"}, merged.Modalities)
	assert.Equal(t, 7.0, merged.Neuroglancer.Contrast)
	assert.Equal(t, 2.0, merged.Neuroglancer.Intensity)
	assert.Equal(t, "json", global.Format, "inputs are not modified")
}
