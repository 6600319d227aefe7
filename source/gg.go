// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"reflect"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
)

// GG is a Table backed by a go-gg table.
type GG struct {
	t *table.Table
}

// FromGG returns a Table view of t.
func FromGG(t *table.Table) *GG {
	if t == nil {
		t = new(table.Table)
	}
	return &GG{t}
}

// Table returns the underlying go-gg table.
func (g *GG) Table() *table.Table {
	return g.t
}

func (g *GG) sealed() {}

func (g *GG) Len() int { return g.t.Len() }

func (g *GG) Columns() []string {
	return append([]string(nil), g.t.Columns()...)
}

func (g *GG) Column(name string) ([]any, error) {
	col := g.t.Column(name)
	if col == nil {
		return nil, &ColumnError{Names: []string{name}, Valid: g.Columns()}
	}
	return toCells(name, col)
}

func (g *GG) floats(name string) ([]float64, error) {
	col := g.t.Column(name)
	if col == nil {
		return nil, &ColumnError{Names: []string{name}, Valid: g.Columns()}
	}
	if !isNumericSlice(col) {
		cells, err := toCells(name, col)
		if err != nil {
			return nil, err
		}
		return cellsToFloats(name, cells)
	}
	var xs []float64
	slice.Convert(&xs, col)
	return xs, nil
}

func isNumericSlice(col table.Slice) bool {
	switch reflect.TypeOf(col).Elem().Kind() {
	case reflect.Float32, reflect.Float64,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

// GroupBy returns groups in first-appearance order. table.GroupBy
// nests groups by the values of each column in turn, so its order
// differs from the other backends once cols has more than one
// column.
func (g *GG) GroupBy(cols ...string) ([]Group, error) {
	keys, rows, err := groupRows(g, cols)
	if err != nil {
		return nil, err
	}
	groups := make([]Group, len(keys))
	for i := range keys {
		groups[i] = Group{keys[i], g.take(rows[i])}
	}
	return groups, nil
}

func (g *GG) Aggregate(col string, agg Agg) (float64, error) {
	xs, err := g.floats(col)
	if err != nil {
		return 0, err
	}
	return agg.Apply(xs)
}

func (g *GG) Sort(cols ...string) (Table, error) {
	perm, err := sortPerm(g, cols)
	if err != nil {
		return nil, err
	}
	return g.take(perm), nil
}

func (g *GG) Filter(keep func(row int) bool) Table {
	return g.take(filterIndexes(g.t.Len(), keep))
}

func (g *GG) take(idx []int) *GG {
	b := table.NewBuilder(nil)
	for _, name := range g.t.Columns() {
		b.Add(name, slice.Select(g.t.Column(name), idx))
	}
	return &GG{b.Done()}
}
