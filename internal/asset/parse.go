// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package asset

import "strings"

const subjectPrefix = "sub-"

// SubjectFromPath returns the subject label of the first directory named
// "sub-<label>". The final element (the file name) is never considered.
func SubjectFromPath(parts []string) (string, bool) {
	if len(parts) == 0 {
		return "", false
	}
	for _, p := range parts[:len(parts)-1] {
		if !strings.HasPrefix(p, subjectPrefix) {
			continue
		}
		label := p[len(subjectPrefix):]
		if i := strings.Index(label, subjectPrefix); i >= 0 {
			label = label[:i]
		}
		return label, true
	}
	return "", false
}

// ParseFilename extracts "key-value" entities from a file name such as
// "sub-I48_sample-02_stain-NeuN_SPIM.ome.zarr". The extension is ignored and
// parts without a hyphen (the trailing modality suffix) are skipped.
func ParseFilename(name string) Entities {
	stem, _, _ := strings.Cut(name, ".")
	var ents Entities
	for _, part := range strings.Split(stem, "_") {
		key, value, ok := strings.Cut(part, "-")
		if !ok {
			continue
		}
		ents = ents.Set(key, value)
	}
	return ents
}

// ModalityFromFilename returns the suffix after the last underscore of a
// subject-scoped file name, e.g. "SPIM" for ".../sub-I48_..._SPIM.ome.zarr".
// Files that are not nested below a subject directory have no modality.
func ModalityFromFilename(name, path string) (string, bool) {
	if !strings.Contains(name, "_") || !strings.Contains(name, subjectPrefix) {
		return "", false
	}
	_, rest, ok := strings.Cut(path, subjectPrefix)
	if !ok || !strings.Contains(rest, "/") {
		return "", false
	}
	last := name[strings.LastIndex(name, "_")+1:]
	mod, _, _ := strings.Cut(last, ".")
	return mod, mod != ""
}

// Extension returns everything after the first dot of name ("ome.zarr",
// "nii.gz"), or "" when there is none.
func Extension(name string) string {
	_, ext, _ := strings.Cut(name, ".")
	return ext
}
