// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dandiviz/dandidash/internal/neuroglancer"
)

// ValidationError describes a single validation failure.
type ValidationError struct {
	// Field is the struct field that failed validation.
	Field string

	// Message describes what went wrong.
	Message string
}

// Error implements the error interface.
func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ValidateRow checks a refined imaging row before link generation and
// returns all validation errors found. An empty slice means the row is
// usable.
func ValidateRow(r neuroglancer.Row) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(r.Sub) == "" {
		errs = append(errs, ValidationError{Field: "Sub", Message: "must not be empty"})
	}
	if strings.TrimSpace(r.Sample) == "" {
		errs = append(errs, ValidationError{Field: "Sample", Message: "must not be empty"})
	}
	if strings.TrimSpace(r.Stain) == "" {
		errs = append(errs, ValidationError{Field: "Stain", Message: "must not be empty"})
	}
	if r.Stain == neuroglancer.OverlapStain {
		errs = append(errs, ValidationError{Field: "Stain", Message: fmt.Sprintf("%q is reserved", neuroglancer.OverlapStain)})
	}
	if strings.TrimSpace(r.URL) == "" {
		errs = append(errs, ValidationError{Field: "URL", Message: "must not be empty"})
	}

	return errs
}

// Validate checks c, after defaults, and returns all validation errors found.
func (c Config) Validate() []ValidationError {
	var errs []ValidationError

	if strings.ContainsAny(c.Dandiset, "/?#") {
		errs = append(errs, ValidationError{Field: "Dandiset", Message: fmt.Sprintf("invalid identifier %q", c.Dandiset)})
	}
	if _, err := regexp.Compile(c.ContentURLPattern); err != nil {
		errs = append(errs, ValidationError{Field: "ContentURLPattern", Message: err.Error()})
	}
	if c.Concurrency < 1 {
		errs = append(errs, ValidationError{Field: "Concurrency", Message: fmt.Sprintf("must be positive, got %d", c.Concurrency)})
	}
	if c.Concurrency > MaxConcurrency {
		errs = append(errs, ValidationError{Field: "Concurrency", Message: fmt.Sprintf("must be at most %d, got %d", MaxConcurrency, c.Concurrency)})
	}
	if c.Output == "" {
		errs = append(errs, ValidationError{Field: "Output", Message: "must not be empty"})
	}
	for _, m := range c.Modalities {
		if strings.TrimSpace(m) == "" {
			errs = append(errs, ValidationError{Field: "Modalities", Message: "must not contain empty names"})
			break
		}
	}
	if r := c.Neuroglancer.NormalizedRange; r[0] > r[1] {
		errs = append(errs, ValidationError{Field: "Neuroglancer.NormalizedRange", Message: fmt.Sprintf("min %g exceeds max %g", r[0], r[1])})
	}

	return errs
}
