// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatter_Name(t *testing.T) {
	assert.Equal(t, "json", NewJSONFormatter().Name())
}

func TestJSONFormatter_Manifest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(samplePage(), &buf))

	var m Manifest
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, "000026", m.Dandiset)
	assert.Equal(t, "0.230412.1234", m.Version)
	assert.Equal(t, "run-1", m.RunID)
	assert.Equal(t, "2026-03-04T10:30:00Z", m.GeneratedAt)
	assert.Equal(t, 2, m.TotalCount)
	require.Len(t, m.Plots, 2)
	assert.Equal(t, PlotRef{Name: "I48", Href: "plots/I48.html"}, m.Plots[1])
	assert.NotContains(t, buf.String(), "/tmp/plots", "disk paths stay out of the manifest")
}

func TestJSONFormatter_EmptyPlots(t *testing.T) {
	f := &JSONFormatter{nowFunc: fixedNow}
	var buf bytes.Buffer
	require.NoError(t, f.Format(Page{Dandiset: "000026"}, &buf))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.Equal(t, []any{}, raw["plots"])
	assert.Equal(t, float64(0), raw["total_count"])
	assert.Equal(t, "2026-03-04T10:30:00Z", raw["generated_at"])
}

func TestJSONFormatter_Compact(t *testing.T) {
	f := &JSONFormatter{Compact: true}
	var buf bytes.Buffer
	require.NoError(t, f.Format(samplePage(), &buf))
	out := strings.TrimSuffix(buf.String(), "\n")
	assert.NotContains(t, out, "\n")
}

func TestJSONFormatter_PrettyForBuffers(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(samplePage(), &buf))
	assert.Contains(t, buf.String(), "\n  \"dandiset\"")
}

func TestJSONFormatter_CompactForFiles(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "manifest-*.json")
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // test cleanup

	require.NoError(t, NewJSONFormatter().Format(samplePage(), f))
	b, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(b), "\n"))
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestJSONFormatter_WriteError(t *testing.T) {
	err := NewJSONFormatter().Format(Page{GeneratedAt: time.Now()}, failWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write json")
}
