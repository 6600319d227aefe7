// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

// Columns is a Table stored as an ordered set of in-memory columns.
type Columns struct {
	names []string
	cols  map[string][]any
	n     int
}

// A Builder constructs a Columns table column by column.
//
// The zero value is an empty builder. Errors are deferred to Done.
type Builder struct {
	names []string
	cols  map[string][]any
	n     int
	err   error
}

// Add adds column name to the table. data must be a slice of any
// element type. Adding an existing column replaces its data in
// place. All columns must have the same length.
func (b *Builder) Add(name string, data any) *Builder {
	if b.err != nil {
		return b
	}
	cells, err := toCells(name, data)
	if err != nil {
		b.err = err
		return b
	}
	if b.cols == nil {
		b.cols = make(map[string][]any)
		b.n = len(cells)
	} else if len(cells) != b.n {
		b.err = &LengthError{What: "column " + name, Got: len(cells), Want: b.n}
		return b
	}
	if _, ok := b.cols[name]; !ok {
		b.names = append(b.names, name)
	}
	b.cols[name] = cells
	return b
}

// Done returns the constructed table or the first error encountered
// by Add.
func (b *Builder) Done() (*Columns, error) {
	if b.err != nil {
		return nil, b.err
	}
	c := &Columns{names: b.names, cols: b.cols, n: b.n}
	if c.cols == nil {
		c.cols = map[string][]any{}
	}
	return c, nil
}

// NewColumns returns a table with the given column order and data.
// Each value of data must be a slice; order must name every key of
// data exactly once.
func NewColumns(order []string, data map[string]any) (*Columns, error) {
	if len(order) != len(data) {
		return nil, &LengthError{What: "column order", Got: len(order), Want: len(data)}
	}
	var b Builder
	for _, name := range order {
		col, ok := data[name]
		if !ok {
			return nil, &ColumnError{Names: []string{name}, Valid: mapKeys(data)}
		}
		b.Add(name, col)
	}
	return b.Done()
}

func mapKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func (c *Columns) sealed() {}

func (c *Columns) Len() int { return c.n }

func (c *Columns) Columns() []string {
	return append([]string(nil), c.names...)
}

func (c *Columns) Column(name string) ([]any, error) {
	col, ok := c.cols[name]
	if !ok {
		return nil, &ColumnError{Names: []string{name}, Valid: c.Columns()}
	}
	return col, nil
}

func (c *Columns) GroupBy(cols ...string) ([]Group, error) {
	keys, rows, err := groupRows(c, cols)
	if err != nil {
		return nil, err
	}
	groups := make([]Group, len(keys))
	for i := range keys {
		groups[i] = Group{keys[i], c.take(rows[i])}
	}
	return groups, nil
}

func (c *Columns) Aggregate(col string, agg Agg) (float64, error) {
	xs, err := Floats(c, col)
	if err != nil {
		return 0, err
	}
	return agg.Apply(xs)
}

func (c *Columns) Sort(cols ...string) (Table, error) {
	perm, err := sortPerm(c, cols)
	if err != nil {
		return nil, err
	}
	return c.take(perm), nil
}

func (c *Columns) Filter(keep func(row int) bool) Table {
	return c.take(filterIndexes(c.n, keep))
}

func (c *Columns) take(idx []int) *Columns {
	nc := &Columns{names: c.names, cols: make(map[string][]any, len(c.cols)), n: len(idx)}
	for name, col := range c.cols {
		nc.cols[name] = selectCells(col, idx)
	}
	return nc
}
