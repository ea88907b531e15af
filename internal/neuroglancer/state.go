// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package neuroglancer builds Neuroglancer viewer links for Zarr imaging
// data: one link per stain and one overlap link per (subject, sample).
package neuroglancer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Defaults used when Options fields are zero.
const (
	DefaultBaseURL        = "https://neuroglancer-demo.appspot.com/#!"
	DefaultVoxelSize      = 0.0000036
	DefaultGPUMemoryLimit = 5000000000
	DefaultLayout         = "yz"
	DefaultContrast       = 2.0
	DefaultIntensity      = 1.5
)

// Range is a [min, max] intensity window.
type Range [2]float64

// IsZero reports whether the range is unset.
func (r Range) IsZero() bool { return r == Range{} }

// DefaultNormalizedRange is the intensity window applied to single-stain layers.
var DefaultNormalizedRange = Range{0, 2000}

// Options controls the generated viewer state.
type Options struct {
	BaseURL         string  `yaml:"base_url,omitempty" toml:"base_url,omitempty"`
	VoxelSize       float64 `yaml:"voxel_size_m,omitempty" toml:"voxel_size_m,omitempty"`
	GPUMemoryLimit  int64   `yaml:"gpu_memory_limit,omitempty" toml:"gpu_memory_limit,omitempty"`
	Layout          string  `yaml:"layout,omitempty" toml:"layout,omitempty"`
	NormalizedRange Range   `yaml:"normalized_range,flow,omitempty" toml:"normalized_range,omitempty"`
	Contrast        float64 `yaml:"contrast_multiplier,omitempty" toml:"contrast_multiplier,omitempty"`
	Intensity       float64 `yaml:"intensity_multiplier,omitempty" toml:"intensity_multiplier,omitempty"`
}

// WithDefaults returns o with every zero field replaced by its default.
func (o Options) WithDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.VoxelSize == 0 {
		o.VoxelSize = DefaultVoxelSize
	}
	if o.GPUMemoryLimit == 0 {
		o.GPUMemoryLimit = DefaultGPUMemoryLimit
	}
	if o.Layout == "" {
		o.Layout = DefaultLayout
	}
	if o.NormalizedRange.IsZero() {
		o.NormalizedRange = DefaultNormalizedRange
	}
	if o.Contrast == 0 {
		o.Contrast = DefaultContrast
	}
	if o.Intensity == 0 {
		o.Intensity = DefaultIntensity
	}
	return o
}

// Dimension is a [scale, unit] pair, serialized as a two-element array.
type Dimension struct {
	Scale float64
	Unit  string
}

// MarshalJSON implements json.Marshaler.
func (d Dimension) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{d.Scale, d.Unit})
}

// Dimensions are the z, y, x axes in that order.
type Dimensions struct {
	Z Dimension `json:"z"`
	Y Dimension `json:"y"`
	X Dimension `json:"x"`
}

// NormalizedControl is the "normalized" shader control.
type NormalizedControl struct {
	Range Range `json:"range"`
}

// ShaderControls holds per-layer shader control values.
type ShaderControls struct {
	Normalized NormalizedControl `json:"normalized"`
}

// Layer is one image layer of the viewer.
type Layer struct {
	Type           string          `json:"type"`
	Source         string          `json:"source"`
	Tab            string          `json:"tab"`
	ShaderControls *ShaderControls `json:"shaderControls,omitempty"`
	Shader         string          `json:"shader,omitempty"`
	Name           string          `json:"name"`
}

// State is the subset of the Neuroglancer viewer state dandidash sets.
type State struct {
	Dimensions     Dimensions `json:"dimensions"`
	Layers         []Layer    `json:"layers"`
	GPUMemoryLimit int64      `json:"gpuMemoryLimit"`
	Layout         string     `json:"layout"`
}

// NewState wraps layers in a viewer state configured by opts.
func NewState(layers []Layer, opts Options) State {
	opts = opts.WithDefaults()
	dim := Dimension{Scale: opts.VoxelSize, Unit: "m"}
	return State{
		Dimensions:     Dimensions{Z: dim, Y: dim, X: dim},
		Layers:         layers,
		GPUMemoryLimit: opts.GPUMemoryLimit,
		Layout:         opts.Layout,
	}
}

// BuildURL returns the viewer link for layers: the base URL followed by the
// percent-encoded JSON state.
func BuildURL(layers []Layer, opts Options) (string, error) {
	opts = opts.WithDefaults()

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewState(layers, opts)); err != nil {
		return "", fmt.Errorf("encode viewer state: %w", err)
	}
	return opts.BaseURL + Quote(strings.TrimSuffix(buf.String(), "\n")), nil
}

// Quote percent-encodes s, leaving only ASCII letters, digits, "_.-~" and
// "/" unescaped.
func Quote(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("_.-~/", c) >= 0
}
