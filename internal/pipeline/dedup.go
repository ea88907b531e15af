// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/dandiviz/dandidash/internal/asset"
)

// ParamsHash computes a short content hash of the given parameters, used to
// keep cache keys apart when the same dandiset is built with different
// settings. It uses SHA-256 truncated to 8 hex characters (4 bytes).
func ParamsHash(params ...string) string {
	h := sha256.New()
	// Null-byte separators avoid collisions from concatenation.
	// sha256.Hash.Write never returns an error per the hash.Hash contract.
	_, _ = fmt.Fprint(h, strings.Join(params, "\x00"))
	sum := h.Sum(nil)
	return fmt.Sprintf("%x", sum[:4])
}

// DedupeAssets removes assets repeated across listing pages. The first
// occurrence of an asset ID (or, without an ID, of a path) is kept.
func DedupeAssets(assets []asset.Asset) []asset.Asset {
	if len(assets) == 0 {
		return assets
	}

	seen := make(map[string]struct{}, len(assets))
	result := make([]asset.Asset, 0, len(assets))
	for _, a := range assets {
		key := a.ID
		if key == "" {
			key = "path:" + a.Path
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, a)
	}
	return result
}
