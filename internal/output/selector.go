// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"sync"
	"time"
)

func init() {
	RegisterFormatter(NewSelectorFormatter())
}

// SelectorFormatter writes a page with a dropdown of plot names and an
// iframe that loads the chosen plot file.
type SelectorFormatter struct {
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*SelectorFormatter)(nil)

// NewSelectorFormatter returns a new SelectorFormatter.
func NewSelectorFormatter() *SelectorFormatter {
	return &SelectorFormatter{}
}

// Name returns the format name.
func (s *SelectorFormatter) Name() string {
	return "selector"
}

// Format writes the selector page to w.
func (s *SelectorFormatter) Format(page Page, w io.Writer) error {
	if len(page.Plots) == 0 {
		return writeEmpty(w, page.Title)
	}
	data := buildPageData(page, s.nowFunc)
	return executePage(w, data)
}

var (
	pageTmplOnce sync.Once
	pageTmpl     *template.Template
)

// funcs is shared by the built-in and user-supplied templates.
func funcs() template.FuncMap {
	return template.FuncMap{
		"json": func(v any) template.JS {
			b, _ := json.Marshal(v)
			return template.JS(b) //nolint:gosec // intentional unescaped embedding
		},
	}
}

func executePage(w io.Writer, data pageData) error {
	pageTmplOnce.Do(func() {
		pageTmpl = template.Must(template.New("selector").Funcs(funcs()).Parse(pageTemplate))
	})
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute selector template: %w", err)
	}
	return nil
}

// pageData holds all template data for the selector page.
type pageData struct {
	Title       string
	Dandiset    string
	Version     string
	RunID       string
	GeneratedAt string
	Inline      bool
	Plots       []plotView
}

type plotView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Href    string `json:"href"`
	Content string `json:"-"`
}

func buildPageData(page Page, nowFunc func() time.Time) pageData {
	generated := page.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
		if nowFunc != nil {
			generated = nowFunc()
		}
	}
	data := pageData{
		Title:       page.Title,
		Dandiset:    page.Dandiset,
		Version:     page.Version,
		RunID:       page.RunID,
		GeneratedAt: generated.UTC().Format("2006-01-02 15:04 UTC"),
		Plots:       make([]plotView, len(page.Plots)),
	}
	for i, ref := range page.Plots {
		data.Plots[i] = plotView{
			ID:   fmt.Sprintf("plot-%d", i),
			Name: ref.Name,
			Href: ref.Href,
		}
	}
	return data
}

func writeEmpty(w io.Writer, title string) error {
	const emptyHTML = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>{{.}}</title>
<style>body{font-family:sans-serif;display:flex;justify-content:center;align-items:center;height:100vh;color:#6c757d;}</style>
</head><body><p>No plots generated.</p></body></html>`
	t := template.Must(template.New("empty").Parse(emptyHTML))
	if err := t.Execute(w, title); err != nil {
		return fmt.Errorf("write empty html: %w", err)
	}
	return nil
}
