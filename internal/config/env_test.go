// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("DANDI_API_KEY", "abc123")
	t.Setenv("DANDIDASH_API_URL", "https://api.sandbox.dandiarchive.org/api")
	t.Setenv("DANDIDASH_CACHE_DIR", "/tmp/dd")
	t.Setenv("DANDIDASH_DANDISET", "000108")
	t.Setenv("DANDIDASH_MODALITIES", "SPIM,OCT")
	t.Setenv("DANDIDASH_CONCURRENCY", "3")

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, Env{
		APIKey:      "abc123",
		APIURL:      "https://api.sandbox.dandiarchive.org/api",
		CacheDir:    "/tmp/dd",
		Dandiset:    "000108",
		Modalities:  []string{"SPIM", "OCT"},
		Concurrency: 3,
	}, e)
}

func TestParseEnv_Unset(t *testing.T) {
	for _, k := range []string{"DANDI_API_KEY", "DANDIDASH_API_URL", "DANDIDASH_CACHE_DIR", "DANDIDASH_DANDISET", "DANDIDASH_MODALITIES", "DANDIDASH_CONCURRENCY"} {
		t.Setenv(k, "")
	}
	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Empty(t, e.APIKey)
	assert.Zero(t, e.Concurrency)
}

func TestParseEnv_BadInt(t *testing.T) {
	t.Setenv("DANDIDASH_CONCURRENCY", "many")
	_, err := ParseEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}
