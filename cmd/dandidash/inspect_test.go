// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandiviz/dandidash/internal/asset"
)

func TestInspect(t *testing.T) {
	isolate(t)
	archive, apiURL := serveArchive(t)

	out, err := executeCmd(t, "inspect", "--api-url", apiURL)
	require.NoError(t, err)

	assert.Contains(t, out, "Dandiset 000026 (version 0.240501.1200): 7 assets")
	for _, s := range []string{"I45", "I46", "I48", "OCT", "SPIM", "ome.zarr", "json"} {
		assert.Contains(t, out, s)
	}
	assert.Equal(t, 0, archive.Requests("asset"), "inspect never resolves content urls")
}

func TestInspect_Cache(t *testing.T) {
	isolate(t)
	archive, apiURL := serveArchive(t)
	cacheDir := t.TempDir()

	_, err := executeCmd(t, "inspect", "--api-url", apiURL, "--cache", "--cache-dir", cacheDir)
	require.NoError(t, err)
	listings := archive.Requests("assets")

	_, err = executeCmd(t, "inspect", "--api-url", apiURL, "--cache", "--cache-dir", cacheDir)
	require.NoError(t, err)
	assert.Equal(t, listings, archive.Requests("assets"))
}

func TestInspect_PinnedVersion(t *testing.T) {
	isolate(t)
	archive, apiURL := serveArchive(t)

	out, err := executeCmd(t, "inspect", "--api-url", apiURL, "--version", "draft")
	require.NoError(t, err)
	assert.Contains(t, out, "(version draft)")
	assert.Equal(t, 0, archive.Requests("dandiset"))
}

func TestSubjectModalityTable(t *testing.T) {
	records := asset.FromAssets(newArchive().Assets)
	out := subjectModalityTable(records)

	var i45 string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "I45") {
			i45 = line
		}
	}
	require.NotEmpty(t, i45)
	fields := strings.FieldsFunc(i45, func(r rune) bool { return r == '│' || r == ' ' })
	// Subject, OCT, SPIM, Total.
	assert.Equal(t, []string{"I45", "1", "2", "3"}, fields)
	assert.NotContains(t, out, "dataset_description")
}

func TestExtensionTable(t *testing.T) {
	records := asset.FromAssets(newArchive().Assets)
	out := extensionTable(records)

	zarr := strings.Index(out, "ome.zarr")
	jsonExt := strings.Index(out, "json")
	require.NotEqual(t, -1, zarr)
	require.NotEqual(t, -1, jsonExt)
	assert.Less(t, zarr, jsonExt, "most common extension first")
}

func TestCountCell(t *testing.T) {
	assert.Equal(t, "-", countCell(0))
	assert.Equal(t, "12", countCell(12))
}
