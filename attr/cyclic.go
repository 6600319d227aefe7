// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package attr maps categories and numeric columns to visual
// attributes.
//
// Discrete attributes (color, hatch, symbol, line style) are assigned
// by a Cyclic plan, which gives the i'th distinct category the i'th
// value of a list, wrapping around when there are more categories
// than values. Continuous attributes (size, width, colormapped color)
// are computed by a Range or ColormapPlan from one numeric column.
//
// All plans are immutable. Methods that change a plan return a new
// one, so a plan can be shared between layers.
package attr

import (
	"fmt"
	"slices"

	"github.com/aclements/go-catplot/source"
)

// A Cyclic plan assigns values to categories round-robin.
type Cyclic[T any] struct {
	by     []string
	values []T
	parse  func(any) (T, error)
}

type (
	ColorPlan  = Cyclic[Color]
	HatchPlan  = Cyclic[Hatch]
	SymbolPlan = Cyclic[Symbol]
	StylePlan  = Cyclic[Style]
)

// NewCyclic returns a plan keyed on by that cycles through values.
// parse normalizes values given to WithChoices.
func NewCyclic[T any](by []string, values []T, parse func(any) (T, error)) (*Cyclic[T], error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	for i, c := range by {
		if slices.Contains(by[:i], c) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, c)
		}
	}
	return &Cyclic[T]{slices.Clone(by), slices.Clone(values), parse}, nil
}

func newParsed[T any](by []string, choices []any, defaults []T, parse func(any) (T, error)) (*Cyclic[T], error) {
	if len(choices) == 0 {
		return NewCyclic(by, defaults, parse)
	}
	values, err := parseAll(choices, parse)
	if err != nil {
		return nil, err
	}
	return NewCyclic(by, values, parse)
}

func parseAll[T any](choices []any, parse func(any) (T, error)) ([]T, error) {
	values := make([]T, len(choices))
	for i, c := range choices {
		v, err := parse(c)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// NewColorPlan returns a color plan keyed on by. Choices are parsed
// with ParseColor. With no choices it uses DefaultColors.
func NewColorPlan(by []string, choices ...any) (*ColorPlan, error) {
	return newParsed(by, choices, DefaultColors(), ParseColor)
}

// NewHatchPlan returns a hatch plan keyed on by. With no choices it
// uses DefaultHatches.
func NewHatchPlan(by []string, choices ...any) (*HatchPlan, error) {
	return newParsed(by, choices, DefaultHatches(), ParseHatch)
}

// NewSymbolPlan returns a symbol plan keyed on by. With no choices it
// uses DefaultSymbols.
func NewSymbolPlan(by []string, choices ...any) (*SymbolPlan, error) {
	return newParsed(by, choices, DefaultSymbols(), ParseSymbol)
}

// NewStylePlan returns a line style plan keyed on by. With no choices
// it uses DefaultStyles.
func NewStylePlan(by []string, choices ...any) (*StylePlan, error) {
	return newParsed(by, choices, DefaultStyles(), ParseStyle)
}

// By returns the columns p is keyed on.
func (p *Cyclic[T]) By() []string { return slices.Clone(p.by) }

// Values returns the values p cycles through.
func (p *Cyclic[T]) Values() []T { return slices.Clone(p.values) }

// IsConst reports whether p has no columns to vary by.
func (p *Cyclic[T]) IsConst() bool { return len(p.by) == 0 }

// WithChoices returns p cycling through choices instead.
func (p *Cyclic[T]) WithChoices(choices ...any) (*Cyclic[T], error) {
	if len(choices) == 0 {
		return nil, ErrNoValues
	}
	values, err := parseAll(choices, p.parse)
	if err != nil {
		return nil, err
	}
	return &Cyclic[T]{p.By(), values, p.parse}, nil
}

// MoreBy returns p additionally keyed on cols.
func (p *Cyclic[T]) MoreBy(cols ...string) (*Cyclic[T], error) {
	by := p.By()
	for _, c := range cols {
		if slices.Contains(by, c) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, c)
		}
		by = append(by, c)
	}
	return &Cyclic[T]{by, p.Values(), p.parse}, nil
}

func (p *Cyclic[T]) String() string {
	return fmt.Sprintf("Cyclic(%v, %d values)", p.by, len(p.values))
}

// Generate returns the value of each of labels, which are keys over
// byAll. Labels are projected onto p's columns and the i'th distinct
// projection receives value i modulo the number of values.
func (p *Cyclic[T]) Generate(labels []source.Key, byAll []string) ([]T, error) {
	idx, err := source.Indexes(p.by, byAll)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(labels))
	index := make(map[string]int)
	for i, l := range labels {
		if len(l) != len(byAll) {
			return nil, &source.LengthError{What: fmt.Sprintf("label %d", i), Got: len(l), Want: len(byAll)}
		}
		id := l.Project(idx).Ident()
		j, ok := index[id]
		if !ok {
			j = len(index)
			index[id] = j
		}
		out[i] = p.values[j%len(p.values)]
	}
	return out, nil
}

// Map returns the value of each row of t.
//
// Every combination of the distinct values of p's columns is
// numbered, with the first column varying slowest and each column's
// values in order of first appearance, and combination i receives
// value i modulo the number of values. Combinations that do not occur
// in t still consume a value.
func (p *Cyclic[T]) Map(t source.Table) ([]T, error) {
	combos, _, err := p.combos(t)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(combos))
	for i, c := range combos {
		out[i] = p.values[c%len(p.values)]
	}
	return out, nil
}

// combos returns the combination number and key of each row of t.
func (p *Cyclic[T]) combos(t source.Table) ([]int, []source.Key, error) {
	keys, err := source.Keys(t, p.by...)
	if err != nil {
		return nil, nil, err
	}
	levels := make([]map[string]int, len(p.by))
	for l := range levels {
		levels[l] = make(map[string]int)
		for _, k := range keys {
			id := source.Key{k[l]}.Ident()
			if _, ok := levels[l][id]; !ok {
				levels[l][id] = len(levels[l])
			}
		}
	}
	combos := make([]int, len(keys))
	for i, k := range keys {
		c := 0
		for l, v := range k {
			c = c*len(levels[l]) + levels[l][source.Key{v}.Ident()]
		}
		combos[i] = c
	}
	return combos, keys, nil
}

// A LegendEntry describes the value assigned to one category.
type LegendEntry[T any] struct {
	Key   source.Key
	Label string
	Value T
}

// Legend returns one entry for each category of labels, as assigned
// by Generate, in assignment order.
func (p *Cyclic[T]) Legend(labels []source.Key, byAll []string) ([]LegendEntry[T], error) {
	vals, err := p.Generate(labels, byAll)
	if err != nil {
		return nil, err
	}
	idx, _ := source.Indexes(p.by, byAll)
	var out []LegendEntry[T]
	seen := make(map[string]bool)
	for i, l := range labels {
		k := l.Project(idx)
		if seen[k.Ident()] {
			continue
		}
		seen[k.Ident()] = true
		out = append(out, LegendEntry[T]{k, k.Label(), vals[i]})
	}
	return out, nil
}

// MapLegend returns one entry for each category of t, as assigned by
// Map, ordered by combination number.
func (p *Cyclic[T]) MapLegend(t source.Table) ([]LegendEntry[T], error) {
	combos, keys, err := p.combos(t)
	if err != nil {
		return nil, err
	}
	first := make(map[int]int)
	var order []int
	for i, c := range combos {
		if _, ok := first[c]; !ok {
			first[c] = i
			order = append(order, c)
		}
	}
	slices.Sort(order)
	out := make([]LegendEntry[T], len(order))
	for i, c := range order {
		k := keys[first[c]]
		out[i] = LegendEntry[T]{k, k.Label(), p.values[c%len(p.values)]}
	}
	return out, nil
}
