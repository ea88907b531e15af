// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubjectFromPath(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{"subject dir", "sub-I48/ses-1/sub-I48_sample-02_SPIM.ome.zarr", "I48", true},
		{"first subject wins", "derivatives/sub-01/sub-02/file.nii", "01", true},
		{"file name only", "sub-01_T1w.nii.gz", "", false},
		{"no subject", "code/README.md", "", false},
		{"repeated prefix", "sub-01sub-02/file.nii", "01", true},
		{"empty label", "sub-/file.nii", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SubjectFromPath(strings.Split(tt.path, "/"))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubjectFromPath_Empty(t *testing.T) {
	_, ok := SubjectFromPath(nil)
	assert.False(t, ok)
}

func TestParseFilename(t *testing.T) {
	ents := ParseFilename("sub-I48_sample-02_stain-NeuN_chunk-1-2_SPIM.ome.zarr")

	assert.Equal(t, []string{"sub", "sample", "stain", "chunk"}, ents.Keys())
	v, ok := ents.Get("chunk")
	assert.True(t, ok)
	assert.Equal(t, "1-2", v, "value keeps inner hyphens")
	_, ok = ents.Get("SPIM")
	assert.False(t, ok, "suffix without hyphen is not an entity")
}

func TestParseFilename_DuplicateKeyKeepsPosition(t *testing.T) {
	ents := ParseFilename("sub-01_run-1_sub-02_bold.nii")
	assert.Equal(t, []string{"sub", "run"}, ents.Keys())
	v, _ := ents.Get("sub")
	assert.Equal(t, "02", v)
}

func TestParseFilename_NoEntities(t *testing.T) {
	assert.Empty(t, ParseFilename("dataset_description.json"))
	assert.Empty(t, ParseFilename("README"))
}

func TestModalityFromFilename(t *testing.T) {
	tests := []struct {
		name, file, path string
		want             string
		wantOK           bool
	}{
		{"nested", "sub-I48_sample-02_stain-NeuN_SPIM.ome.zarr", "sub-I48/ses-1/micr/sub-I48_sample-02_stain-NeuN_SPIM.ome.zarr", "SPIM", true},
		{"one level", "sub-01_OCT.json", "sub-01/sub-01_OCT.json", "OCT", true},
		{"top level", "sub-01_T1w.nii.gz", "sub-01_T1w.nii.gz", "", false},
		{"no underscore", "sub-01.nii", "sub-01/sub-01.nii", "", false},
		{"no subject", "samples_list.tsv", "docs/samples_list.tsv", "", false},
		{"empty suffix", "sub-01_.nii", "sub-01/sub-01_.nii", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ModalityFromFilename(tt.file, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "ome.zarr", Extension("sub-01_SPIM.ome.zarr"))
	assert.Equal(t, "nii.gz", Extension("sub-01_T1w.nii.gz"))
	assert.Equal(t, "", Extension("README"))
}
