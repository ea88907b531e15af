// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"time"
)

func init() {
	RegisterFormatter(NewInlineFormatter())
}

// InlineFormatter writes the selector page with every plot embedded through
// srcdoc, so the result is a single self-contained file.
type InlineFormatter struct {
	nowFunc func() time.Time
}

// Compile-time interface check.
var _ Formatter = (*InlineFormatter)(nil)

// NewInlineFormatter returns a new InlineFormatter.
func NewInlineFormatter() *InlineFormatter {
	return &InlineFormatter{}
}

// Name returns the format name.
func (f *InlineFormatter) Name() string {
	return "inline"
}

// Format reads each plot file and writes the self-contained page to w.
func (f *InlineFormatter) Format(page Page, w io.Writer) error {
	if len(page.Plots) == 0 {
		return writeEmpty(w, page.Title)
	}
	data := buildPageData(page, f.nowFunc)
	data.Inline = true
	for i, ref := range page.Plots {
		b, err := FS.ReadFile(ref.File)
		if err != nil {
			return fmt.Errorf("read plot %q: %w", ref.Name, err)
		}
		data.Plots[i].Content = string(b)
		data.Plots[i].Href = ""
	}
	return executePage(w, data)
}
