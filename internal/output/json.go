// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// Manifest is the top-level JSON output structure.
type Manifest struct {
	Title       string    `json:"title"`
	Dandiset    string    `json:"dandiset"`
	Version     string    `json:"version"`
	RunID       string    `json:"run_id,omitempty"`
	GeneratedAt string    `json:"generated_at"`
	TotalCount  int       `json:"total_count"`
	Plots       []PlotRef `json:"plots"`
}

// JSONFormatter writes a machine-readable manifest of the generated plots.
type JSONFormatter struct {
	// Compact forces compact output. When false, output is pretty-printed
	// for terminals and compact for pipes and files.
	Compact bool

	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*JSONFormatter)(nil)

// NewJSONFormatter returns a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the manifest to w.
func (f *JSONFormatter) Format(page Page, w io.Writer) error {
	generated := page.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
		if f.nowFunc != nil {
			generated = f.nowFunc()
		}
	}

	plots := page.Plots
	if plots == nil {
		plots = []PlotRef{}
	}

	m := Manifest{
		Title:       page.Title,
		Dandiset:    page.Dandiset,
		Version:     page.Version,
		RunID:       page.RunID,
		GeneratedAt: generated.UTC().Format(time.RFC3339),
		TotalCount:  len(plots),
		Plots:       plots,
	}

	var data []byte
	var err error
	if f.shouldCompact(w) {
		data, err = json.Marshal(m)
	} else {
		data, err = json.MarshalIndent(m, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write json trailing newline: %w", err)
	}
	return nil
}

// shouldCompact reports whether to skip indentation: always when Compact is
// set, otherwise only for non-terminal files.
func (f *JSONFormatter) shouldCompact(w io.Writer) bool {
	if f.Compact {
		return true
	}
	if file, ok := w.(*os.File); ok {
		fi, err := file.Stat()
		if err != nil {
			return false
		}
		return fi.Mode()&os.ModeCharDevice == 0
	}
	return false
}
