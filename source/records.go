// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import "sort"

// Records is a Table stored as a sequence of rows, each mapping
// column names to values. A column missing from a row reads as nil.
type Records struct {
	names []string
	rows  []map[string]any
}

// NewRecords returns a table over rows. If names is nil, the columns
// are the sorted union of the rows' keys.
func NewRecords(names []string, rows []map[string]any) *Records {
	if names == nil {
		seen := make(map[string]bool)
		for _, r := range rows {
			for k := range r {
				if !seen[k] {
					seen[k] = true
					names = append(names, k)
				}
			}
		}
		sort.Strings(names)
	}
	return &Records{names: names, rows: rows}
}

func (r *Records) sealed() {}

func (r *Records) Len() int { return len(r.rows) }

func (r *Records) Columns() []string {
	return append([]string(nil), r.names...)
}

func (r *Records) Column(name string) ([]any, error) {
	if err := CheckColumns(r, name); err != nil {
		return nil, err
	}
	col := make([]any, len(r.rows))
	for i, row := range r.rows {
		col[i] = row[name]
	}
	return col, nil
}

func (r *Records) GroupBy(cols ...string) ([]Group, error) {
	keys, rows, err := groupRows(r, cols)
	if err != nil {
		return nil, err
	}
	groups := make([]Group, len(keys))
	for i := range keys {
		groups[i] = Group{keys[i], r.take(rows[i])}
	}
	return groups, nil
}

func (r *Records) Aggregate(col string, agg Agg) (float64, error) {
	xs, err := Floats(r, col)
	if err != nil {
		return 0, err
	}
	return agg.Apply(xs)
}

func (r *Records) Sort(cols ...string) (Table, error) {
	perm, err := sortPerm(r, cols)
	if err != nil {
		return nil, err
	}
	return r.take(perm), nil
}

func (r *Records) Filter(keep func(row int) bool) Table {
	return r.take(filterIndexes(len(r.rows), keep))
}

func (r *Records) take(idx []int) *Records {
	rows := make([]map[string]any, len(idx))
	for i, j := range idx {
		rows[i] = r.rows[j]
	}
	return &Records{names: r.names, rows: rows}
}
