// Copyright 2026 The Dandidash Authors
// SPDX-License-Identifier: MIT

// Package frame provides the small set of table operations the dashboard
// needs over metadata rows: filtering, stable multi-column sorting, distinct
// values and grouping.
package frame

import (
	"slices"
	"sort"
	"strings"
)

// Getter is a row with named string columns.
type Getter interface {
	Get(col string) (string, bool)
}

// Predicate reports whether a row should be kept.
type Predicate func(Getter) bool

// Has keeps rows where every column is present and non-empty.
func Has(cols ...string) Predicate {
	return func(g Getter) bool {
		for _, c := range cols {
			if v, ok := g.Get(c); !ok || v == "" {
				return false
			}
		}
		return true
	}
}

// In keeps rows whose column value is one of values.
func In(col string, values ...string) Predicate {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(g Getter) bool {
		v, ok := g.Get(col)
		if !ok {
			return false
		}
		_, found := set[v]
		return found
	}
}

// Equals keeps rows whose column value is exactly value.
func Equals(col, value string) Predicate {
	return func(g Getter) bool {
		v, ok := g.Get(col)
		return ok && v == value
	}
}

// Filter returns the rows satisfying every predicate, in input order.
func Filter[T Getter](rows []T, preds ...Predicate) []T {
	var out []T
	for _, r := range rows {
		keep := true
		for _, p := range preds {
			if !p(r) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

// SortBy returns a copy of rows sorted ascending by cols, in priority order.
// The sort is stable and rows missing a column sort after rows that have it.
func SortBy[T Getter](rows []T, cols ...string) []T {
	out := slices.Clone(rows)
	sort.SliceStable(out, func(i, j int) bool {
		return compareRows(out[i], out[j], cols) < 0
	})
	return out
}

func compareRows(a, b Getter, cols []string) int {
	for _, c := range cols {
		av, aok := a.Get(c)
		bv, bok := b.Get(c)
		switch {
		case aok && !bok:
			return -1
		case !aok && bok:
			return 1
		case !aok && !bok:
			continue
		}
		if cmp := strings.Compare(av, bv); cmp != 0 {
			return cmp
		}
	}
	return 0
}

// Unique returns the distinct values of col in first-appearance order.
// Rows without the column are skipped.
func Unique[T Getter](rows []T, col string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, r := range rows {
		v, ok := r.Get(col)
		if !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Group is the set of rows sharing one key tuple.
type Group[T Getter] struct {
	Keys []string
	Rows []T
}

// GroupBy partitions rows by the values of cols. Groups are ordered by key
// tuple; rows keep their input order within a group. Rows missing any key
// column are dropped.
func GroupBy[T Getter](rows []T, cols ...string) []Group[T] {
	index := make(map[string]int)
	var groups []Group[T]
	for _, r := range rows {
		keys := make([]string, len(cols))
		complete := true
		for i, c := range cols {
			v, ok := r.Get(c)
			if !ok {
				complete = false
				break
			}
			keys[i] = v
		}
		if !complete {
			continue
		}
		id := strings.Join(keys, "\x00")
		gi, ok := index[id]
		if !ok {
			gi = len(groups)
			index[id] = gi
			groups = append(groups, Group[T]{Keys: keys})
		}
		groups[gi].Rows = append(groups[gi].Rows, r)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return slices.Compare(groups[i].Keys, groups[j].Keys) < 0
	})
	return groups
}

// Column returns the value of col for each row, with "" for missing values.
func Column[T Getter](rows []T, col string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i], _ = r.Get(col)
	}
	return out
}

// Row is a projected row: column name to value. Missing columns are absent.
type Row map[string]string

// Get implements Getter.
func (r Row) Get(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// Project keeps only cols of each row, in input order.
func Project[T Getter](rows []T, cols ...string) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		p := make(Row, len(cols))
		for _, c := range cols {
			if v, ok := r.Get(c); ok {
				p[c] = v
			}
		}
		out[i] = p
	}
	return out
}
