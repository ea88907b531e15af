// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package plot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"sync"

	"github.com/dandiviz/dandidash/internal/testable"
)

// FS is the file system used by WriteFile. Tests may replace it.
var FS testable.FileSystem = testable.DefaultFS

var (
	gridTmplOnce sync.Once
	gridTmpl     *template.Template
)

type gridData struct {
	Title       string
	Interactive bool
	Axes        map[string]string
	Layout      layout
}

// Render writes the grid as a standalone HTML page to w.
func (g *Grid) Render(w io.Writer) error {
	if len(g.Cells) == 0 {
		return writeEmpty(w, g.Title)
	}

	gridTmplOnce.Do(func() {
		gridTmpl = template.Must(template.New("grid").Funcs(template.FuncMap{
			"json": func(v any) template.JS {
				b, _ := json.Marshal(v)
				return template.JS(b) //nolint:gosec // intentional unescaped embedding
			},
		}).Parse(gridTemplate))
	})

	data := gridData{
		Title:       g.Title,
		Interactive: g.Interactive,
		Axes:        map[string]string{"x": g.XName, "y": g.YName},
		Layout:      g.computeLayout(),
	}
	if err := gridTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute grid template: %w", err)
	}
	return nil
}

// WriteFile renders the grid to path, creating parent directories.
func (g *Grid) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := g.Render(&buf); err != nil {
		return err
	}
	if err := FS.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create plot directory: %w", err)
	}
	if err := FS.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // plots are meant to be readable
		return fmt.Errorf("write plot %s: %w", path, err)
	}
	return nil
}

func writeEmpty(w io.Writer, title string) error {
	const emptyHTML = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>{{.}}</title>
<style>body{font-family:sans-serif;display:flex;justify-content:center;align-items:center;height:100vh;color:#6c757d;}</style>
</head><body><p>{{.}}: no data.</p></body></html>`
	t := template.Must(template.New("empty").Parse(emptyHTML))
	if err := t.Execute(w, title); err != nil {
		return fmt.Errorf("write empty plot: %w", err)
	}
	return nil
}
