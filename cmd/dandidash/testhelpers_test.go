// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/dandiviz/dandidash/internal/asset"
	"github.com/dandiviz/dandidash/internal/dandi"
)

var envVars = []string{
	"DANDI_API_KEY",
	"DANDIDASH_API_URL",
	"DANDIDASH_CACHE_DIR",
	"DANDIDASH_DANDISET",
	"DANDIDASH_MODALITIES",
	"DANDIDASH_CONCURRENCY",
}

// isolate runs the test in an empty working directory with its own global
// config home and no dandidash environment variables. Returns the directory.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range envVars {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// resetFlags restores every command flag to its default so tests do not
// leak state into each other through the package-level commands.
func resetFlags() {
	reset := func(f *pflag.Flag) {
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	}
	for _, c := range []*cobra.Command{rootCmd, buildCmd, inspectCmd, cacheCmd, cacheListCmd, cacheClearCmd} {
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}
	// StringSlice.Set appends, so clear it after VisitAll.
	buildModalities = nil
	resetConfigFlags()
}

// executeCmd runs the root command with args and returns its stdout. Color
// is always off so output can be matched verbatim.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--no-color"}, args...))
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// newArchive is a small dandiset with three subjects. I46's only imaging
// asset has no s3 URL and is skipped.
func newArchive() *dandi.FakeArchive {
	modified := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s3 := func(id string) []string {
		return []string{
			"https://api.dandiarchive.org/api/zarr/" + id + "/",
			"https://dandiarchive.s3.amazonaws.com/zarr/" + id + "/",
		}
	}
	return &dandi.FakeArchive{
		Identifier: "000026",
		Published:  "0.240501.1200",
		Assets: []asset.Asset{
			{ID: "a1", Path: "sub-I48/micr/sub-I48_sample-01_stain-NeuN_SPIM.ome.zarr", Modified: modified},
			{ID: "a2", Path: "sub-I48/micr/sub-I48_sample-01_stain-Nissl_SPIM.ome.zarr", Modified: modified},
			{ID: "a3", Path: "sub-I45/micr/sub-I45_sample-01_stain-NeuN_SPIM.ome.zarr", Modified: modified},
			{ID: "a4", Path: "sub-I45/micr/sub-I45_sample-01_stain-NeuN_SPIM.json", Modified: modified},
			{ID: "a5", Path: "sub-I45/oct/sub-I45_OCT.json", Modified: modified},
			{ID: "a6", Path: "dataset_description.json", Modified: modified},
			{ID: "a7", Path: "sub-I46/micr/sub-I46_sample-01_stain-NeuN_SPIM.ome.zarr", Modified: modified},
		},
		ContentURLs: map[string][]string{
			"a1": s3("z1"),
			"a2": s3("z2"),
			"a3": s3("z3"),
			"a7": {"https://api.dandiarchive.org/api/zarr/z7/"},
		},
	}
}

// serveArchive starts a fake DANDI API and returns it with its base URL.
func serveArchive(t *testing.T) (*dandi.FakeArchive, string) {
	t.Helper()
	archive := newArchive()
	srv := archive.NewServer()
	t.Cleanup(srv.Close)
	return archive, srv.URL
}
