// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package config

import (
	"slices"

	"github.com/dandiviz/dandidash/internal/neuroglancer"
	"github.com/dandiviz/dandidash/internal/pipeline"
)

// Merge combines file-based config with the CLI-provided build config.
// CLI values take precedence; zero-value CLI fields fall through to file config.
func Merge(fileCfg *Config, cliCfg pipeline.Config) pipeline.Config {
	result := cliCfg

	fill(&result.Dandiset, fileCfg.Dandiset)
	fill(&result.Version, fileCfg.Version)
	fill(&result.APIURL, fileCfg.APIURL)
	fill(&result.PlotsDir, fileCfg.PlotsDir)
	fill(&result.Output, fileCfg.Output)
	fill(&result.Format, fileCfg.Format)
	fill(&result.Template, fileCfg.Template)
	fill(&result.Title, fileCfg.Title)
	fill(&result.RefineModality, fileCfg.Refine.Modality)
	fill(&result.RefineExtension, fileCfg.Refine.Extension)
	fill(&result.ContentURLPattern, fileCfg.ContentURLPattern)
	fill(&result.CacheDir, fileCfg.CacheDir)

	if len(result.Modalities) == 0 && len(fileCfg.Modalities) > 0 {
		result.Modalities = slices.Clone(fileCfg.Modalities)
	}
	if result.Concurrency == 0 && fileCfg.Concurrency > 0 {
		result.Concurrency = fileCfg.Concurrency
	}

	// Cache: CLI wins if true, otherwise file config.
	if !result.Cache && fileCfg.Cache != nil && *fileCfg.Cache {
		result.Cache = true
	}

	result.Neuroglancer = mergeNeuroglancer(result.Neuroglancer, fileCfg.Neuroglancer)
	return result
}

// ApplyEnv fills zero fields of cliCfg from the environment. Apply it before
// Merge so the environment ranks between flags and files.
func ApplyEnv(e Env, cliCfg pipeline.Config) pipeline.Config {
	result := cliCfg
	fill(&result.Token, e.APIKey)
	fill(&result.APIURL, e.APIURL)
	fill(&result.CacheDir, e.CacheDir)
	fill(&result.Dandiset, e.Dandiset)
	if len(result.Modalities) == 0 && len(e.Modalities) > 0 {
		result.Modalities = slices.Clone(e.Modalities)
	}
	if result.Concurrency == 0 && e.Concurrency > 0 {
		result.Concurrency = e.Concurrency
	}
	return result
}

// MergeConfigs layers a project config over the global one. Only non-zero
// project values override global values.
func MergeConfigs(global, project *Config) *Config {
	merged := *global

	override(&merged.Dandiset, project.Dandiset)
	override(&merged.Version, project.Version)
	override(&merged.APIURL, project.APIURL)
	override(&merged.PlotsDir, project.PlotsDir)
	override(&merged.Output, project.Output)
	override(&merged.Format, project.Format)
	override(&merged.Template, project.Template)
	override(&merged.Title, project.Title)
	override(&merged.Refine.Modality, project.Refine.Modality)
	override(&merged.Refine.Extension, project.Refine.Extension)
	override(&merged.ContentURLPattern, project.ContentURLPattern)
	override(&merged.CacheDir, project.CacheDir)

	if len(project.Modalities) > 0 {
		merged.Modalities = slices.Clone(project.Modalities)
	}
	if project.Concurrency != 0 {
		merged.Concurrency = project.Concurrency
	}
	if project.Cache != nil {
		merged.Cache = project.Cache
	}
	merged.Neuroglancer = mergeNeuroglancer(project.Neuroglancer, global.Neuroglancer)
	return &merged
}

// mergeNeuroglancer fills zero fields of dst from src.
func mergeNeuroglancer(dst, src neuroglancer.Options) neuroglancer.Options {
	fill(&dst.BaseURL, src.BaseURL)
	fill(&dst.Layout, src.Layout)
	if dst.VoxelSize == 0 {
		dst.VoxelSize = src.VoxelSize
	}
	if dst.GPUMemoryLimit == 0 {
		dst.GPUMemoryLimit = src.GPUMemoryLimit
	}
	if dst.NormalizedRange.IsZero() {
		dst.NormalizedRange = src.NormalizedRange
	}
	if dst.Contrast == 0 {
		dst.Contrast = src.Contrast
	}
	if dst.Intensity == 0 {
		dst.Intensity = src.Intensity
	}
	return dst
}

func fill(dst *string, src string) {
	if *dst == "" {
		*dst = src
	}
}

func override(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
