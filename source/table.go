// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package source provides a uniform read-only view over tabular
// data.
//
// A Table is backed by one of a closed set of representations:
// in-memory columns (Columns), row records (Records), or a go-gg
// table (GG). Layout code consumes only the Table interface.
package source

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/generic/slice"
)

// A Table is a read-only view of a table of data.
//
// The slices returned by a Table are shared with the table and must
// not be modified.
type Table interface {
	// Len returns the number of rows in the table.
	Len() int

	// Columns returns the names of the table's columns in the
	// order they were defined.
	Columns() []string

	// Column returns the values of column name. If there is no
	// such column, it returns a *ColumnError.
	Column(name string) ([]any, error)

	// GroupBy partitions the table into groups whose rows have
	// equal values for all of cols. Groups are returned in the
	// order in which their keys first appear.
	GroupBy(cols ...string) ([]Group, error)

	// Aggregate reduces numeric column col to a single value.
	Aggregate(col string, agg Agg) (float64, error)

	// Sort returns the table with its rows stably sorted by the
	// values of cols, in order of precedence.
	Sort(cols ...string) (Table, error)

	// Filter returns the table containing only the rows for
	// which keep returns true. keep is passed row indexes of the
	// receiver.
	Filter(keep func(row int) bool) Table

	sealed()
}

// A Group is one partition of a table produced by GroupBy.
type Group struct {
	Key   Key
	Table Table
}

// Keys returns the key of every row of t over cols.
func Keys(t Table, cols ...string) ([]Key, error) {
	data := make([][]any, len(cols))
	for i, c := range cols {
		col, err := t.Column(c)
		if err != nil {
			return nil, err
		}
		data[i] = col
	}
	keys := make([]Key, t.Len())
	for row := range keys {
		k := make(Key, len(cols))
		for i := range cols {
			k[i] = data[i][row]
		}
		keys[row] = k
	}
	return keys, nil
}

// Floats returns numeric column col of t as float64s. Nil cells
// become NaN.
func Floats(t Table, col string) ([]float64, error) {
	if g, ok := t.(*GG); ok {
		return g.floats(col)
	}
	cells, err := t.Column(col)
	if err != nil {
		return nil, err
	}
	return cellsToFloats(col, cells)
}

func cellsToFloats(col string, cells []any) ([]float64, error) {
	xs := make([]float64, len(cells))
	for i, v := range cells {
		if v == nil {
			xs[i] = math.NaN()
			continue
		}
		x, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: %q has %T value %v", ErrNotNumeric, col, v, v)
		}
		xs[i] = x
	}
	return xs, nil
}

// groupRows partitions the rows of t by their keys over cols in
// first-appearance order.
func groupRows(t Table, cols []string) ([]Key, [][]int, error) {
	if err := CheckColumns(t, cols...); err != nil {
		return nil, nil, err
	}
	keys, err := Keys(t, cols...)
	if err != nil {
		return nil, nil, err
	}
	var order []Key
	var rows [][]int
	index := make(map[string]int)
	for row, k := range keys {
		id := k.Ident()
		i, ok := index[id]
		if !ok {
			i = len(order)
			index[id] = i
			order = append(order, k)
			rows = append(rows, nil)
		}
		rows[i] = append(rows[i], row)
	}
	return order, rows, nil
}

// sortPerm returns the stable permutation that sorts t by cols.
func sortPerm(t Table, cols []string) ([]int, error) {
	if err := CheckColumns(t, cols...); err != nil {
		return nil, err
	}
	keys, err := Keys(t, cols...)
	if err != nil {
		return nil, err
	}
	perm := make([]int, t.Len())
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool {
		a, b := keys[perm[i]], keys[perm[j]]
		for c := range a {
			if r := Compare(a[c], b[c]); r != 0 {
				return r < 0
			}
		}
		return false
	})
	return perm, nil
}

// filterIndexes returns the rows of an n-row table accepted by keep.
func filterIndexes(n int, keep func(int) bool) []int {
	idx := []int{}
	for i := 0; i < n; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	return idx
}

// toCells converts any slice to a []any.
func toCells(name string, data any) ([]any, error) {
	if cells, ok := data.([]any); ok {
		return cells, nil
	}
	rv := reflect.ValueOf(data)
	if rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("source: column %q is a %T, not a slice", name, data)
	}
	cells := make([]any, rv.Len())
	for i := range cells {
		cells[i] = rv.Index(i).Interface()
	}
	return cells, nil
}

// selectCells returns cells[idx[i]] for each i.
func selectCells(cells []any, idx []int) []any {
	return slice.Select(cells, idx).([]any)
}
