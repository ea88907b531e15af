// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

package dandi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dandiviz/dandidash/internal/asset"
)

func newFake(n int) *FakeArchive {
	f := &FakeArchive{Identifier: "000026", ContentURLs: map[string][]string{}}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("asset-%03d", i)
		f.Assets = append(f.Assets, asset.Asset{
			ID:       id,
			Path:     fmt.Sprintf("sub-%02d/sub-%02d_OCT.json", i, i),
			Modified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}
	return f
}

func TestClient_Dandiset_Published(t *testing.T) {
	f := newFake(3)
	f.Published = "0.240101.1200"
	srv := f.NewServer()
	defer srv.Close()

	ds, err := NewClient(srv.URL, "").Dandiset(context.Background(), "000026")
	require.NoError(t, err)
	assert.Equal(t, "000026", ds.Identifier)
	assert.Equal(t, "0.240101.1200", ds.Version)
	assert.Equal(t, 3, ds.AssetCount)
}

func TestClient_Dandiset_DraftOnly(t *testing.T) {
	srv := newFake(1).NewServer()
	defer srv.Close()

	ds, err := NewClient(srv.URL, "").Dandiset(context.Background(), "000026")
	require.NoError(t, err)
	assert.Equal(t, DraftVersion, ds.Version)
}

func TestClient_Dandiset_NotFound(t *testing.T) {
	srv := newFake(1).NewServer()
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Dandiset(context.Background(), "999999")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned 404")
}

func TestClient_Assets_FollowsPagination(t *testing.T) {
	f := newFake(7)
	srv := f.NewServer()
	defer srv.Close()

	c := NewClient(srv.URL, "")
	c.PageSize = 3
	assets, err := c.Assets(context.Background(), "000026", "draft")
	require.NoError(t, err)
	require.Len(t, assets, 7)
	assert.Equal(t, "asset-000", assets[0].ID)
	assert.Equal(t, "asset-006", assets[6].ID)
	assert.Equal(t, 3, f.Requests("assets"))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), assets[0].Modified.UTC())
}

func TestClient_Assets_Empty(t *testing.T) {
	srv := newFake(0).NewServer()
	defer srv.Close()

	assets, err := NewClient(srv.URL, "").Assets(context.Background(), "000026", "")
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestClient_ContentURL(t *testing.T) {
	f := newFake(1)
	f.ContentURLs["asset-000"] = []string{
		"https://api.dandiarchive.org/api/assets/asset-000/download/",
		"https://dandiarchive.s3.amazonaws.com/zarr/abc/",
	}
	srv := f.NewServer()
	defer srv.Close()

	c := NewClient(srv.URL, "")
	u, err := c.ContentURL(context.Background(), "asset-000", "s3")
	require.NoError(t, err)
	assert.Equal(t, "https://dandiarchive.s3.amazonaws.com/zarr/abc/", u)

	_, err = c.ContentURL(context.Background(), "asset-000", "gcs")
	assert.ErrorIs(t, err, ErrNoContentURL)

	_, err = c.ContentURL(context.Background(), "asset-000", "(")
	assert.Error(t, err)
}

func TestClient_SendsToken(t *testing.T) {
	f := newFake(1)
	f.Token = "secret-token"
	srv := f.NewServer()
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Dandiset(context.Background(), "000026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")

	_, err = NewClient(srv.URL, "secret-token").Dandiset(context.Background(), "000026")
	assert.NoError(t, err)
}

func TestClient_ErrorBodyRedactsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials: "+r.Header.Get("Authorization"), http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "secret-token").Dandiset(context.Background(), "000026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "returned 403")
	assert.Contains(t, err.Error(), "bad credentials: token [REDACTED]")
	assert.NotContains(t, err.Error(), "secret-token")
}

func TestClient_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "").Dandiset(context.Background(), "000026")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := newFake(1).NewServer()
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, "").Assets(ctx, "000026", "draft")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", "")
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, "https://api.dandiarchive.org/api/dandisets/000026/", c.endpoint("dandisets", "000026"))

	c = NewClient("http://example.test/api/", "")
	assert.Equal(t, "http://example.test/api", c.BaseURL)
}
