// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package output renders the plot selector page in various formats.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dandiviz/dandidash/internal/testable"
)

// FS is the file system used to read plot files and templates. Tests may
// replace it.
var FS testable.FileSystem = testable.DefaultFS

// PlotRef points at one rendered plot.
type PlotRef struct {
	// Name is the label shown in the selector.
	Name string `json:"name"`
	// Href is the plot location relative to the page.
	Href string `json:"href"`
	// File is the plot location on disk.
	File string `json:"-"`
}

// Page is everything a formatter needs to render the selector.
type Page struct {
	Title       string
	Dandiset    string
	Version     string
	RunID       string
	GeneratedAt time.Time
	Plots       []PlotRef
}

// Subs maps plot names to their hrefs. Custom templates range over it.
func (p Page) Subs() map[string]string {
	m := make(map[string]string, len(p.Plots))
	for _, ref := range p.Plots {
		m[ref.Name] = ref.Href
	}
	return m
}

// Formatter writes a selector page to the given writer in a specific format.
type Formatter interface {
	// Name returns the format name (e.g., "selector", "inline", "json").
	Name() string

	// Format writes the page to w.
	Format(page Page, w io.Writer) error
}

var (
	fmtMu       sync.RWMutex
	fmtRegistry = make(map[string]Formatter)
)

// RegisterFormatter adds a formatter to the global registry.
func RegisterFormatter(f Formatter) {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry[f.Name()] = f
}

// GetFormatter returns the formatter with the given name, or an error if not found.
func GetFormatter(name string) (Formatter, error) {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	f, ok := fmtRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown format: %q (available: %s)", name, formatNames())
	}
	return f, nil
}

// Names returns the sorted registered format names.
func Names() []string {
	fmtMu.RLock()
	defer fmtMu.RUnlock()
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resetFmtForTesting clears the formatter registry. Only for use in tests.
func resetFmtForTesting() {
	fmtMu.Lock()
	defer fmtMu.Unlock()
	fmtRegistry = make(map[string]Formatter)
}

// formatNames returns a comma-separated sorted list of registered format
// names. Callers hold fmtMu.
func formatNames() string {
	names := make([]string, 0, len(fmtRegistry))
	for name := range fmtRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
