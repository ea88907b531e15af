// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package plot renders categorical grid plots (one colored cell per x/y
// factor pair) as standalone HTML pages. Interactive grids open a link when
// a cell is clicked and show a tooltip on hover.
package plot

import (
	"github.com/dandiviz/dandidash/internal/frame"
	"github.com/dandiviz/dandidash/internal/palette"
)

// Default canvas size in pixels.
const (
	DefaultWidth  = 1200
	DefaultHeight = 600
)

// Cell is one filled position of the grid.
type Cell struct {
	X   string `json:"x"`
	Y   string `json:"y"`
	URL string `json:"url,omitempty"`
}

// Grid is a categorical matrix plot. X factors run left to right, Y factors
// bottom to top, both in first-appearance order of the cells.
type Grid struct {
	Title       string
	XName       string
	YName       string
	XFactors    []string
	YFactors    []string
	Cells       []Cell
	Colors      map[string]string
	Interactive bool
	Width       int
	Height      int
}

// NewGrid builds a grid from cells. Cells repeating an (X, Y) pair after the
// first are dropped. Each Y factor gets its own color.
func NewGrid(title string, cells []Cell, interactive bool) *Grid {
	g := &Grid{
		Title:       title,
		XName:       "Sample",
		YName:       "Stain",
		Interactive: interactive,
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Colors:      make(map[string]string),
	}

	type key struct{ x, y string }
	seen := make(map[key]struct{}, len(cells))
	xs := make(map[string]struct{})
	ys := make(map[string]struct{})
	for _, c := range cells {
		k := key{c.X, c.Y}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		g.Cells = append(g.Cells, c)
		if _, ok := xs[c.X]; !ok {
			xs[c.X] = struct{}{}
			g.XFactors = append(g.XFactors, c.X)
		}
		if _, ok := ys[c.Y]; !ok {
			ys[c.Y] = struct{}{}
			g.YFactors = append(g.YFactors, c.Y)
		}
	}

	for i, color := range palette.ForFactors(len(g.YFactors)) {
		g.Colors[g.YFactors[i]] = color
	}
	return g
}

// WithAxisNames sets the names shown in tooltips for the two axes.
func (g *Grid) WithAxisNames(x, y string) *Grid {
	g.XName = x
	g.YName = y
	return g
}

// CellsFrom projects rows onto grid cells using the named columns. Rows
// missing the x or y column are skipped; urlCol may be empty.
func CellsFrom[T frame.Getter](rows []T, xCol, yCol, urlCol string) []Cell {
	var cells []Cell
	for _, r := range rows {
		x, xok := r.Get(xCol)
		y, yok := r.Get(yCol)
		if !xok || !yok {
			continue
		}
		c := Cell{X: x, Y: y}
		if urlCol != "" {
			c.URL, _ = r.Get(urlCol)
		}
		cells = append(cells, c)
	}
	return cells
}
