// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package category enumerates the categories of a table and assigns
// them positions on a categorical axis, optionally dodging
// sub-groups around each position.
package category

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aclements/go-catplot/offset"
	"github.com/aclements/go-catplot/source"
)

var (
	// ErrOverlap is returned when offset and dodge columns are not
	// disjoint.
	ErrOverlap = errors.New("category: offset and dodge columns overlap")

	// ErrNotSubset is returned when offset or dodge columns are not
	// among the columns being iterated over.
	ErrNotSubset = errors.New("category: columns not a subset of by")

	// ErrPlacement is returned when a placement is not keyed on the
	// offset columns.
	ErrPlacement = errors.New("category: placement not over offset columns")
)

// DefaultDodgeWidth is the width, in category units, across which
// dodged sub-groups are spread.
const DefaultDodgeWidth = 0.8

// A Map assigns consecutive indexes to the distinct keys of a set of
// columns in the order the keys first appear.
type Map struct {
	cols  []string
	keys  []source.Key
	index map[string]int
}

// Columns returns the columns m is keyed on.
func (m *Map) Columns() []string { return m.cols }

// Len returns the number of distinct keys.
func (m *Map) Len() int { return len(m.keys) }

// Keys returns the keys of m in index order.
func (m *Map) Keys() []source.Key { return m.keys }

// Index returns the index of key k.
func (m *Map) Index(k source.Key) (int, bool) {
	i, ok := m.index[k.Ident()]
	return i, ok
}

func newMap(t source.Table, cols []string) (*Map, error) {
	groups, err := t.GroupBy(cols...)
	if err != nil {
		return nil, err
	}
	m := &Map{cols: cols, index: make(map[string]int, len(groups))}
	for _, g := range groups {
		id := g.Key.Ident()
		if _, ok := m.index[id]; ok {
			continue
		}
		m.index[id] = len(m.keys)
		m.keys = append(m.keys, g.Key)
	}
	return m, nil
}

// An Iterator enumerates the observed categories of a table over a
// set of offset columns and an optional, disjoint set of dodge
// columns.
//
// An Iterator caches the category maps it computes and is not safe
// for concurrent use.
type Iterator struct {
	src        source.Table
	offsets    []string
	dodge      []string
	dodgeWidth float64
	placement  *offset.Mapping
	maps       map[string]*Map
}

// An Option configures an Iterator.
type Option func(*Iterator)

// WithDodgeWidth sets the width across which dodged sub-groups are
// spread. The default is DefaultDodgeWidth.
func WithDodgeWidth(w float64) Option {
	return func(it *Iterator) { it.dodgeWidth = w }
}

// WithPlacement positions offset keys as m does instead of by index.
// m must be keyed on the offset columns.
func WithPlacement(m *offset.Mapping) Option {
	return func(it *Iterator) { it.placement = m }
}

// NewIterator returns an Iterator over t's categories on the offsets
// columns, dodged by the dodge columns.
func NewIterator(t source.Table, offsets, dodge []string, opts ...Option) (*Iterator, error) {
	if both := intersect(offsets, dodge); len(both) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrOverlap, strings.Join(both, ", "))
	}
	if err := source.CheckColumns(t, append(append([]string(nil), offsets...), dodge...)...); err != nil {
		return nil, err
	}
	it := &Iterator{
		src:        t,
		offsets:    append([]string(nil), offsets...),
		dodge:      append([]string(nil), dodge...),
		dodgeWidth: DefaultDodgeWidth,
		maps:       make(map[string]*Map),
	}
	for _, o := range opts {
		o(it)
	}
	if it.placement != nil && !slices.Equal(it.placement.By(), it.offsets) {
		return nil, fmt.Errorf("%w: %s", ErrPlacement, strings.Join(it.placement.By(), ", "))
	}
	return it, nil
}

// Source returns the table it iterates over.
func (it *Iterator) Source() source.Table { return it.src }

// Offsets returns the offset columns.
func (it *Iterator) Offsets() []string { return it.offsets }

// Dodge returns the dodge columns.
func (it *Iterator) Dodge() []string { return it.dodge }

// CategoryMap returns the map of the distinct keys of cols. Maps are
// cached, so repeated calls return the same *Map.
func (it *Iterator) CategoryMap(cols []string) (*Map, error) {
	id := strings.Join(cols, "\x00")
	if m, ok := it.maps[id]; ok {
		return m, nil
	}
	m, err := newMap(it.src, append([]string(nil), cols...))
	if err != nil {
		return nil, err
	}
	it.maps[id] = m
	return m, nil
}

// An Entry is one group produced by IterArrays.
type Entry struct {
	Key    source.Key   // The group's key over the by columns.
	Offset float64      // Position on the categorical axis.
	Table  source.Table // The rows of the group.
}

// IterArrays groups the table by the by columns and returns each
// group with its position. by must contain the iterator's offset
// columns and all of dodge, which must be disjoint from the offset
// columns.
//
// A group's position is the index of its offset key, or its
// position in the iterator's placement if it has one. If dodge is
// not empty, the k'th of m dodge categories is displaced by
// ((k - (m-1)/2) / m) * width.
func (it *Iterator) IterArrays(by, dodge []string) ([]Entry, error) {
	if both := intersect(it.offsets, dodge); len(both) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrOverlap, strings.Join(both, ", "))
	}
	if missing := difference(it.offsets, by); len(missing) > 0 {
		return nil, fmt.Errorf("%w: offset columns %s not in %s", ErrNotSubset, strings.Join(missing, ", "), strings.Join(by, ", "))
	}
	if missing := difference(dodge, by); len(missing) > 0 {
		return nil, fmt.Errorf("%w: dodge columns %s not in %s", ErrNotSubset, strings.Join(missing, ", "), strings.Join(by, ", "))
	}
	offIdx, err := source.Indexes(it.offsets, by)
	if err != nil {
		return nil, err
	}
	dodgeIdx, err := source.Indexes(dodge, by)
	if err != nil {
		return nil, err
	}

	offMap, err := it.CategoryMap(it.offsets)
	if err != nil {
		return nil, err
	}
	var dodgeMap *Map
	if len(dodge) > 0 {
		if dodgeMap, err = it.CategoryMap(dodge); err != nil {
			return nil, err
		}
	}

	groups, err := it.src.GroupBy(by...)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(groups))
	for i, g := range groups {
		off := it.position(offMap, g.Key.Project(offIdx))
		if dodgeMap != nil {
			k, _ := dodgeMap.Index(g.Key.Project(dodgeIdx))
			off += dodgeOffset(k, dodgeMap.Len(), it.dodgeWidth)
		}
		entries[i] = Entry{g.Key, off, g.Table}
	}
	return entries, nil
}

// position returns the position of offset key k.
func (it *Iterator) position(offMap *Map, k source.Key) float64 {
	if it.placement != nil {
		if off, ok := it.placement.Offset(k); ok {
			return off
		}
	}
	pos, _ := offMap.Index(k)
	return float64(pos)
}

func dodgeOffset(k, m int, width float64) float64 {
	return (float64(k) - float64(m-1)/2) / float64(m) * width
}

// ZoomFactor returns the factor by which marks should be narrowed so
// that the sub-groups of dodge do not overlap: 1/m for m dodge
// categories, or 1 if dodge is empty.
func (it *Iterator) ZoomFactor(dodge []string) (float64, error) {
	if len(dodge) == 0 {
		return 1, nil
	}
	m, err := it.CategoryMap(dodge)
	if err != nil {
		return 0, err
	}
	if m.Len() == 0 {
		return 1, nil
	}
	return 1 / float64(m.Len()), nil
}

// intersect returns the elements of a that are also in b.
func intersect(a, b []string) []string {
	var out []string
	for _, x := range a {
		if slices.Contains(b, x) {
			out = append(out, x)
		}
	}
	return out
}

// difference returns the elements of a that are not in b.
func difference(a, b []string) []string {
	var out []string
	for _, x := range a {
		if !slices.Contains(b, x) {
			out = append(out, x)
		}
	}
	return out
}
