// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time interface check.
var _ Formatter = (*stubFormatter)(nil)

type stubFormatter struct{}

func (s *stubFormatter) Name() string                   { return "stub" }
func (s *stubFormatter) Format(_ Page, _ io.Writer) error { return nil }

func restoreFormatters() {
	resetFmtForTesting()
	RegisterFormatter(NewSelectorFormatter())
	RegisterFormatter(NewInlineFormatter())
	RegisterFormatter(NewJSONFormatter())
}

func fixedNow() time.Time {
	return time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
}

func samplePage() Page {
	return Page{
		Title:       "DANDI 000026",
		Dandiset:    "000026",
		Version:     "0.230412.1234",
		RunID:       "run-1",
		GeneratedAt: fixedNow(),
		Plots: []PlotRef{
			{Name: "Modality X Subject", Href: "plots/modality_subject.html", File: "/tmp/plots/modality_subject.html"},
			{Name: "I48", Href: "plots/I48.html", File: "/tmp/plots/I48.html"},
		},
	}
}

func TestFormatterInterface(t *testing.T) {
	var f Formatter = &stubFormatter{}
	assert.Equal(t, "stub", f.Name())

	var buf bytes.Buffer
	assert.NoError(t, f.Format(Page{}, &buf))
}

func TestRegistry(t *testing.T) {
	resetFmtForTesting()
	defer restoreFormatters()

	_, err := GetFormatter("stub")
	require.Error(t, err)

	RegisterFormatter(&stubFormatter{})
	f, err := GetFormatter("stub")
	require.NoError(t, err)
	assert.Equal(t, "stub", f.Name())
	assert.Equal(t, []string{"stub"}, Names())
}

func TestRegistry_Builtins(t *testing.T) {
	assert.Equal(t, []string{"inline", "json", "selector"}, Names())
}

func TestGetFormatter_UnknownListsAvailable(t *testing.T) {
	_, err := GetFormatter("pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format: "pdf"`)
	assert.Contains(t, err.Error(), "inline, json, selector")
}

func TestPage_Subs(t *testing.T) {
	subs := samplePage().Subs()
	assert.Equal(t, map[string]string{
		"Modality X Subject": "plots/modality_subject.html",
		"I48":                "plots/I48.html",
	}, subs)
}
