// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package config handles dandidash configuration files and environment
// overrides.
package config

import "github.com/dandiviz/dandidash/internal/neuroglancer"

// Config represents the contents of a .dandidash.yaml or .dandidash.toml
// file.
type Config struct {
	Dandiset          string               `yaml:"dandiset,omitempty" toml:"dandiset,omitempty"`
	Version           string               `yaml:"version,omitempty" toml:"version,omitempty"`
	APIURL            string               `yaml:"api_url,omitempty" toml:"api_url,omitempty"`
	PlotsDir          string               `yaml:"plots_dir,omitempty" toml:"plots_dir,omitempty"`
	Output            string               `yaml:"output,omitempty" toml:"output,omitempty"`
	Format            string               `yaml:"format,omitempty" toml:"format,omitempty"`
	Template          string               `yaml:"template,omitempty" toml:"template,omitempty"`
	Title             string               `yaml:"title,omitempty" toml:"title,omitempty"`
	Modalities        []string             `yaml:"modalities,omitempty,flow" toml:"modalities,omitempty"`
	Refine            RefineConfig         `yaml:"refine,omitempty" toml:"refine,omitempty"`
	ContentURLPattern string               `yaml:"content_url_pattern,omitempty" toml:"content_url_pattern,omitempty"`
	Neuroglancer      neuroglancer.Options `yaml:"neuroglancer,omitempty" toml:"neuroglancer,omitempty"`
	Concurrency       int                  `yaml:"concurrency,omitempty" toml:"concurrency,omitempty"`
	Cache             *bool                `yaml:"cache,omitempty" toml:"cache,omitempty"`
	CacheDir          string               `yaml:"cache_dir,omitempty" toml:"cache_dir,omitempty"`
}

// RefineConfig selects the imaging assets viewer links are built for.
type RefineConfig struct {
	Modality  string `yaml:"modality,omitempty" toml:"modality,omitempty"`
	Extension string `yaml:"extension,omitempty" toml:"extension,omitempty"`
}

// Project config file names, in lookup order.
const (
	FileName     = ".dandidash.yaml"
	TOMLFileName = ".dandidash.toml"
)
