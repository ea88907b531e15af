// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package dandi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/dandiviz/dandidash/internal/asset"
)

// FakeArchive is an in-memory stand-in for the DANDI API used by tests in
// this and other packages. It serves one dandiset.
type FakeArchive struct {
	Identifier string
	// Published is the most recent published version; empty means draft only.
	Published string
	Assets    []asset.Asset
	// ContentURLs maps asset IDs to their contentUrl metadata.
	ContentURLs map[string][]string
	// Token, when set, is required on every request.
	Token string

	mu       sync.Mutex
	requests map[string]int
}

// NewServer starts an httptest server for the archive. The caller closes it.
func (f *FakeArchive) NewServer() *httptest.Server {
	return httptest.NewServer(f)
}

// Requests returns how many requests hit the given route kind:
// "dandiset", "assets" or "asset".
func (f *FakeArchive) Requests(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[kind]
}

func (f *FakeArchive) count(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.requests == nil {
		f.requests = make(map[string]int)
	}
	f.requests[kind]++
}

// ServeHTTP implements http.Handler.
func (f *FakeArchive) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if f.Token != "" && r.Header.Get("Authorization") != "token "+f.Token {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	switch {
	case len(parts) == 2 && parts[0] == "dandisets":
		f.count("dandiset")
		f.serveDandiset(w, parts[1])
	case len(parts) == 5 && parts[0] == "dandisets" && parts[2] == "versions" && parts[4] == "assets":
		f.count("assets")
		f.serveAssets(w, r, parts[1])
	case len(parts) == 2 && parts[0] == "assets":
		f.count("asset")
		f.serveAsset(w, parts[1])
	default:
		http.NotFound(w, r)
	}
}

func (f *FakeArchive) serveDandiset(w http.ResponseWriter, id string) {
	if id != f.Identifier {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	resp := map[string]any{
		"identifier":    f.Identifier,
		"draft_version": map[string]any{"version": DraftVersion, "name": "fake", "asset_count": len(f.Assets)},
	}
	if f.Published != "" {
		resp["most_recent_published_version"] = map[string]any{"version": f.Published, "name": "fake", "asset_count": len(f.Assets)}
	}
	writeJSON(w, resp)
}

func (f *FakeArchive) serveAssets(w http.ResponseWriter, r *http.Request, id string) {
	if id != f.Identifier {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	size, err := strconv.Atoi(r.URL.Query().Get("page_size"))
	if err != nil || size <= 0 {
		size = defaultPageSize
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	start := (page - 1) * size
	if start > len(f.Assets) {
		start = len(f.Assets)
	}
	end := start + size
	if end > len(f.Assets) {
		end = len(f.Assets)
	}

	resp := map[string]any{
		"count":   len(f.Assets),
		"next":    nil,
		"results": f.Assets[start:end],
	}
	if end < len(f.Assets) {
		q := r.URL.Query()
		q.Set("page", strconv.Itoa(page+1))
		resp["next"] = fmt.Sprintf("http://%s%s?%s", r.Host, r.URL.Path, q.Encode())
	}
	writeJSON(w, resp)
}

func (f *FakeArchive) serveAsset(w http.ResponseWriter, id string) {
	urls, ok := f.ContentURLs[id]
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{"identifier": id, "contentUrl": urls})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
