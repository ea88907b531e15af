// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package dandi is a small client for the DANDI Archive REST API. It covers
// the read-only calls dandidash needs: resolving a dandiset version, listing
// its assets, and looking up an asset's content URLs.
package dandi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dandiviz/dandidash/internal/asset"
	"github.com/dandiviz/dandidash/internal/redact"
)

// DefaultBaseURL is the public DANDI Archive API.
const DefaultBaseURL = "https://api.dandiarchive.org/api"

// DraftVersion is the name of the mutable version every dandiset has.
const DraftVersion = "draft"

const (
	defaultPageSize = 100
	defaultTimeout  = 30 * time.Second
	maxErrorBody    = 512
)

// ErrNoContentURL is returned when an asset has no content URL matching the
// requested pattern.
var ErrNoContentURL = errors.New("no matching content URL")

// Client queries the DANDI Archive API.
type Client struct {
	// BaseURL is the API root, e.g. https://api.dandiarchive.org/api.
	BaseURL string

	// Token is an optional API key sent as "Authorization: token <key>".
	Token string

	// PageSize is the page size used when listing assets.
	PageSize int

	httpClient *http.Client
}

// NewClient returns a Client for baseURL. An empty baseURL selects
// DefaultBaseURL.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		PageSize:   defaultPageSize,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Dandiset describes a dandiset and the version dandidash should read.
type Dandiset struct {
	Identifier string
	Version    string
	Name       string
	AssetCount int
}

type versionInfo struct {
	Version    string `json:"version"`
	Name       string `json:"name"`
	AssetCount int    `json:"asset_count"`
}

type dandisetResponse struct {
	Identifier        string       `json:"identifier"`
	MostRecentVersion *versionInfo `json:"most_recent_published_version"`
	DraftVersion      *versionInfo `json:"draft_version"`
}

// Dandiset fetches dandiset id. The returned Version is the most recent
// published version, or the draft when nothing has been published.
func (c *Client) Dandiset(ctx context.Context, id string) (*Dandiset, error) {
	var resp dandisetResponse
	if err := c.getJSON(ctx, c.endpoint("dandisets", id), &resp); err != nil {
		return nil, err
	}

	ds := &Dandiset{Identifier: resp.Identifier, Version: DraftVersion}
	if ds.Identifier == "" {
		ds.Identifier = id
	}
	v := resp.MostRecentVersion
	if v == nil {
		v = resp.DraftVersion
	}
	if v != nil {
		if v.Version != "" {
			ds.Version = v.Version
		}
		ds.Name = v.Name
		ds.AssetCount = v.AssetCount
	}
	return ds, nil
}

type assetPage struct {
	Count   int           `json:"count"`
	Next    *string       `json:"next"`
	Results []asset.Asset `json:"results"`
}

// Assets lists every asset of dandiset id at version, following pagination
// links until the listing is exhausted.
func (c *Client) Assets(ctx context.Context, id, version string) ([]asset.Asset, error) {
	if version == "" {
		version = DraftVersion
	}
	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	next := fmt.Sprintf("%s?page_size=%d&order=path", c.endpoint("dandisets", id, "versions", version, "assets"), pageSize)

	var all []asset.Asset
	for page := 1; next != ""; page++ {
		var p assetPage
		if err := c.getJSON(ctx, next, &p); err != nil {
			return nil, fmt.Errorf("list assets page %d: %w", page, err)
		}
		if all == nil && p.Count > 0 {
			all = make([]asset.Asset, 0, p.Count)
		}
		all = append(all, p.Results...)
		slog.Debug("dandi: fetched asset page", "page", page, "assets", len(all), "total", p.Count)

		next = ""
		if p.Next != nil {
			next = *p.Next
		}
	}
	return all, nil
}

type assetMetadata struct {
	ContentURL []string `json:"contentUrl"`
}

// ContentURL returns the first content URL of assetID that matches the
// regular expression pattern (e.g. "s3" for the S3 bucket location).
func (c *Client) ContentURL(ctx context.Context, assetID, pattern string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("compile content url pattern %q: %w", pattern, err)
	}

	var md assetMetadata
	if err := c.getJSON(ctx, c.endpoint("assets", assetID), &md); err != nil {
		return "", err
	}
	for _, u := range md.ContentURL {
		if re.MatchString(u) {
			return u, nil
		}
	}
	return "", fmt.Errorf("asset %s: %w for %q", assetID, ErrNoContentURL, pattern)
}

// endpoint joins escaped path segments onto the base URL with a trailing
// slash, matching the API's canonical routes.
func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.BaseURL + "/" + strings.Join(escaped, "/") + "/"
}

func (c *Client) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}

	client := c.httpClient
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", u, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if msg := strings.TrimSpace(redact.Token(string(body), c.Token)); msg != "" {
			return fmt.Errorf("dandi api returned %d for %s: %s", resp.StatusCode, u, msg)
		}
		return fmt.Errorf("dandi api returned %d for %s", resp.StatusCode, u)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", u, err)
	}
	return nil
}
