// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dandiviz/dandidash/internal/output"
	"github.com/dandiviz/dandidash/internal/pipeline"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Format != "" {
		if _, err := output.GetFormatter(cfg.Format); err != nil {
			errs = append(errs, fmt.Sprintf("format: %v", err))
		}
	}

	if cfg.Concurrency < 0 {
		errs = append(errs, fmt.Sprintf("concurrency: must be non-negative, got %d", cfg.Concurrency))
	}
	if cfg.Concurrency > pipeline.MaxConcurrency {
		errs = append(errs, fmt.Sprintf("concurrency: must be at most %d, got %d", pipeline.MaxConcurrency, cfg.Concurrency))
	}

	if cfg.ContentURLPattern != "" {
		if _, err := regexp.Compile(cfg.ContentURLPattern); err != nil {
			errs = append(errs, fmt.Sprintf("content_url_pattern: %v", err))
		}
	}

	if cfg.APIURL != "" && !strings.HasPrefix(cfg.APIURL, "http://") && !strings.HasPrefix(cfg.APIURL, "https://") {
		errs = append(errs, fmt.Sprintf("api_url: must be an http(s) URL, got %q", cfg.APIURL))
	}

	for i, m := range cfg.Modalities {
		if strings.TrimSpace(m) == "" {
			errs = append(errs, fmt.Sprintf("modalities[%d]: must not be empty", i))
		}
	}

	ng := cfg.Neuroglancer
	if ng.Contrast < 0 {
		errs = append(errs, fmt.Sprintf("neuroglancer.contrast_multiplier: must be non-negative, got %g", ng.Contrast))
	}
	if ng.Intensity < 0 {
		errs = append(errs, fmt.Sprintf("neuroglancer.intensity_multiplier: must be non-negative, got %g", ng.Intensity))
	}
	if ng.NormalizedRange[0] > ng.NormalizedRange[1] {
		errs = append(errs, fmt.Sprintf("neuroglancer.normalized_range: min %g exceeds max %g", ng.NormalizedRange[0], ng.NormalizedRange[1]))
	}
	if ng.Layout != "" {
		switch ng.Layout {
		case "xy", "yz", "xz", "3d", "4panel", "xy-3d", "yz-3d", "xz-3d":
			// valid
		default:
			errs = append(errs, fmt.Sprintf("neuroglancer.layout: invalid value %q", ng.Layout))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
