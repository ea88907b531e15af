// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/spf13/pflag"

	"github.com/dandiviz/dandidash/internal/config"
	"github.com/dandiviz/dandidash/internal/pipeline"
)

// loadFileConfig loads the global config and the project config in dir,
// layers them and validates the result.
func loadFileConfig(dir string) (*config.Config, error) {
	global, err := config.LoadGlobal()
	if err != nil {
		return nil, exitError(ExitFailure, "dandidash: failed to load %s (%v)", config.GlobalConfigPath(), err)
	}
	project, err := config.Load(dir)
	if err != nil {
		return nil, exitError(ExitFailure, "dandidash: failed to load project config (%v)", err)
	}
	merged := config.MergeConfigs(global, project)
	if err := config.Validate(merged); err != nil {
		return nil, exitError(ExitFailure, "dandidash: %v", err)
	}
	return merged, nil
}

// resolveConfig layers cli over the environment, the project config in the
// working directory and the global config. Defaults are not applied.
func resolveConfig(cli pipeline.Config) (pipeline.Config, error) {
	files, err := loadFileConfig(".")
	if err != nil {
		return pipeline.Config{}, err
	}
	env, err := config.ParseEnv()
	if err != nil {
		return pipeline.Config{}, exitError(ExitFailure, "dandidash: %v", err)
	}
	return config.Merge(files, config.ApplyEnv(env, cli)), nil
}

// stringFlag returns the value of a string flag only when it was set on the
// command line, so an unset flag never masks a config file value.
func stringFlag(flags *pflag.FlagSet, name string) string {
	if !flags.Changed(name) {
		return ""
	}
	v, _ := flags.GetString(name)
	return v
}

// toFileConfig converts an effective build config back to its file form.
// The API token is never included.
func toFileConfig(c pipeline.Config) *config.Config {
	cache := c.Cache
	return &config.Config{
		Dandiset:          c.Dandiset,
		Version:           c.Version,
		APIURL:            c.APIURL,
		PlotsDir:          c.PlotsDir,
		Output:            c.Output,
		Format:            c.Format,
		Template:          c.Template,
		Title:             c.Title,
		Modalities:        c.Modalities,
		Refine:            config.RefineConfig{Modality: c.RefineModality, Extension: c.RefineExtension},
		ContentURLPattern: c.ContentURLPattern,
		Neuroglancer:      c.Neuroglancer,
		Concurrency:       c.Concurrency,
		Cache:             &cache,
		CacheDir:          c.CacheDir,
	}
}
