// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package asset defines the dataset metadata types for dandidash: the raw
// assets listed by the archive and the records derived from their paths.
package asset

import (
	"strings"
	"time"
)

// Asset is one file (or Zarr store) in a dandiset version.
type Asset struct {
	ID       string    `json:"asset_id"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
	BlobID   string    `json:"blob,omitempty"`
	ZarrID   string    `json:"zarr,omitempty"`
}

// Entity is a key-value pair parsed from a file name, e.g. "stain-NeuN".
type Entity struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Entities is an ordered set of file name entities. Keys are unique; a later
// value for an existing key replaces it in place.
type Entities []Entity

// Get returns the value for key.
func (e Entities) Get(key string) (string, bool) {
	for _, ent := range e {
		if ent.Key == key {
			return ent.Value, true
		}
	}
	return "", false
}

// Set adds or replaces the value for key.
func (e Entities) Set(key, value string) Entities {
	for i := range e {
		if e[i].Key == key {
			e[i].Value = value
			return e
		}
	}
	return append(e, Entity{Key: key, Value: value})
}

// Keys returns entity keys in order.
func (e Entities) Keys() []string {
	keys := make([]string, len(e))
	for i, ent := range e {
		keys[i] = ent.Key
	}
	return keys
}

// Column names that are always available on a Record, independent of the
// entities found in the file name.
const (
	ColPath      = "path"
	ColSubdir    = "subdir"
	ColModality  = "modality"
	ColExtension = "extension"
	ColModified  = "modified"

	ColSub    = "sub"
	ColSample = "sample"
	ColStain  = "stain"
)

// Record is one row of dataset metadata derived from an Asset.
type Record struct {
	Index     int       `json:"index"`
	AssetID   string    `json:"asset_id"`
	Path      string    `json:"path"`
	Subdir    string    `json:"subdir,omitempty"`
	Entities  Entities  `json:"entities,omitempty"`
	Modality  string    `json:"modality,omitempty"`
	Extension string    `json:"extension"`
	Modified  time.Time `json:"modified"`
}

// Get returns the value of the named column and whether it is present.
// Derived columns shadow file name entities of the same name.
func (r Record) Get(col string) (string, bool) {
	switch col {
	case ColPath:
		return r.Path, true
	case ColExtension:
		return r.Extension, true
	case ColModified:
		if r.Modified.IsZero() {
			return "", false
		}
		return r.Modified.UTC().Format(time.RFC3339), true
	case ColSubdir:
		if r.Subdir != "" {
			return r.Subdir, true
		}
	case ColModality:
		if r.Modality != "" {
			return r.Modality, true
		}
	}
	return r.Entities.Get(col)
}

// NewRecord parses asset a, found at position index of the listing.
func NewRecord(index int, a Asset) Record {
	parts := strings.Split(a.Path, "/")
	name := parts[len(parts)-1]

	r := Record{
		Index:     index,
		AssetID:   a.ID,
		Path:      a.Path,
		Entities:  ParseFilename(name),
		Extension: Extension(name),
		Modified:  a.Modified,
	}
	if sub, ok := SubjectFromPath(parts); ok {
		r.Subdir = sub
	}
	if mod, ok := ModalityFromFilename(name, a.Path); ok {
		r.Modality = mod
	}
	return r
}

// FromAssets converts a listing into records, preserving listing order.
func FromAssets(assets []Asset) []Record {
	records := make([]Record, len(assets))
	for i, a := range assets {
		records[i] = NewRecord(i, a)
	}
	return records
}
