// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
)

// TemplateFormatter renders a user-supplied html/template file. The template
// receives the Page; .Subs maps plot names to hrefs.
type TemplateFormatter struct {
	path string
	tmpl *template.Template
}

// Compile-time interface check.
var _ Formatter = (*TemplateFormatter)(nil)

// NewTemplateFormatter parses the template at path.
func NewTemplateFormatter(path string) (*TemplateFormatter, error) {
	b, err := FS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	t, err := template.New(filepath.Base(path)).Funcs(funcs()).Parse(string(b))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	return &TemplateFormatter{path: path, tmpl: t}, nil
}

// Name returns the format name.
func (f *TemplateFormatter) Name() string {
	return "template"
}

// Format executes the template with page. Unlike the built-in formatters an
// empty page is passed through so the template decides what to show.
func (f *TemplateFormatter) Format(page Page, w io.Writer) error {
	if err := f.tmpl.Execute(w, page); err != nil {
		return fmt.Errorf("execute template %s: %w", f.path, err)
	}
	return nil
}
