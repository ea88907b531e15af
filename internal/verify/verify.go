// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package verify checks that a generated selector page only points at plot
// files that exist.
package verify

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/dandiviz/dandidash/internal/testable"
)

// FS is the file system used to read pages and check references. Tests may
// replace it.
var FS testable.FileSystem = testable.DefaultFS

// Ref is one local file reference found in a page.
type Ref struct {
	// Href is the reference as written in the page.
	Href string
	// Path is the file it resolves to.
	Path string
	// Exists reports whether Path is present on disk.
	Exists bool
}

// Report is the outcome of checking one page.
type Report struct {
	Page string
	// Inline is set when the page embeds its plots through srcdoc and so has
	// no file references to check.
	Inline bool
	// Embedded counts srcdoc frames.
	Embedded int
	Refs     []Ref
}

// Missing returns the references whose files do not exist.
func (r *Report) Missing() []Ref {
	var out []Ref
	for _, ref := range r.Refs {
		if !ref.Exists {
			out = append(out, ref)
		}
	}
	return out
}

// OK reports whether every reference resolved.
func (r *Report) OK() bool { return len(r.Missing()) == 0 }

// Page parses the page at path, collects plot references (option values and
// iframe src attributes), resolves them relative to the page and checks that
// each file exists. External URLs and fragments are ignored.
func Page(path string) (*Report, error) {
	data, err := FS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse page %s: %w", path, err)
	}

	report := &Report{Page: path}
	dir := filepath.Dir(path)
	for _, href := range collect(doc, report) {
		if p, ok := localPath(href); ok {
			report.Refs = append(report.Refs, Ref{Href: href, Path: filepath.Join(dir, p)})
		}
	}
	if report.Embedded > 0 && len(report.Refs) == 0 {
		report.Inline = true
		return report, nil
	}

	for i := range report.Refs {
		ref := &report.Refs[i]
		if _, err := FS.Stat(ref.Path); err == nil {
			ref.Exists = true
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("check %s: %w", ref.Path, err)
		}
	}
	return report, nil
}

// collect walks the document and returns the distinct reference candidates
// in sorted order, counting srcdoc frames on report.
func collect(doc *html.Node, report *Report) []string {
	seen := make(map[string]struct{})
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "option":
				if v, ok := attr(n, "value"); ok && v != "" {
					seen[v] = struct{}{}
				}
			case "iframe":
				if _, ok := attr(n, "srcdoc"); ok {
					report.Embedded++
				} else if v, ok := attr(n, "src"); ok && v != "" {
					seen[v] = struct{}{}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// localPath turns a relative href into a file path. It rejects absolute URLs,
// fragments and option values that are not file references.
func localPath(href string) (string, bool) {
	if strings.HasPrefix(href, "#") {
		return "", false
	}
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}
	if u.Path == "" || !strings.Contains(u.Path, ".") {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}
