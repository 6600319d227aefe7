// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package layout builds categorical plot layers from a table.
//
// A Canvas owns a table and a theme. Canvas.Categorical fixes the
// categorical axis of one or more layers: the offset columns that
// place categories along the axis and the dodge columns that split
// each category into side-by-side sub-groups. Its Markers, Bars and
// Lines methods compute the coordinates and attributes of each layer
// for an external renderer.
package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aclements/go-catplot/category"
	"github.com/aclements/go-catplot/offset"
	"github.com/aclements/go-catplot/source"
	"github.com/aclements/go-catplot/theme"
	"go.uber.org/zap"
)

// ErrDetached is returned by a Categorical whose Canvas was closed.
var ErrDetached = errors.New("layout: canvas is closed")

// A Canvas is the owner of the layers built from one table.
type Canvas struct {
	t      source.Table
	theme  *theme.Theme
	log    *zap.Logger
	closed bool
}

// An Option configures a Canvas.
type Option func(*Canvas)

// WithTheme sets the canvas theme. The default is theme.Default().
func WithTheme(th *theme.Theme) Option {
	return func(c *Canvas) { c.theme = th }
}

// WithLogger sets the logger for plan construction. The default
// discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Canvas) { c.log = l }
}

// New returns a canvas over t.
func New(t source.Table, opts ...Option) *Canvas {
	c := &Canvas{t: t}
	for _, o := range opts {
		o(c)
	}
	if c.theme == nil {
		c.theme = theme.Default()
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// Table returns the canvas table.
func (c *Canvas) Table() source.Table { return c.t }

// Theme returns the canvas theme.
func (c *Canvas) Theme() *theme.Theme { return c.theme }

// Close detaches every Categorical created from c.
func (c *Canvas) Close() { c.closed = true }

// A Tick labels one category position on the axis.
type Tick struct {
	Key   source.Key
	Label string
	X     float64
}

// A Categorical is a categorical axis on a Canvas.
type Categorical struct {
	parent  *Canvas
	offsets []string
	dodge   []string
	plan    *offset.Plan
	mapping *offset.Mapping
	it      *category.Iterator
}

// Categorical returns a categorical axis placing the categories of
// offsets with the theme's offset plan and dodging them by dodge.
func (c *Canvas) Categorical(offsets, dodge []string) (*Categorical, error) {
	if c.closed {
		return nil, ErrDetached
	}
	plan, err := c.theme.OffsetPlan(offsets...)
	if err != nil {
		return nil, err
	}
	keys, err := source.Keys(c.t, offsets...)
	if err != nil {
		return nil, err
	}
	m, err := plan.Mapping(keys, offsets, true)
	if err != nil {
		return nil, err
	}
	it, err := category.NewIterator(c.t, offsets, dodge,
		category.WithDodgeWidth(c.theme.DodgeWidth),
		category.WithPlacement(m))
	if err != nil {
		return nil, err
	}
	c.log.Debug("categorical axis",
		zap.Stringer("plan", plan),
		zap.Strings("dodge", dodge),
		zap.Int("positions", len(m.Keys())))
	return &Categorical{
		parent:  c,
		offsets: slices.Clone(offsets),
		dodge:   slices.Clone(dodge),
		plan:    plan,
		mapping: m,
		it:      it,
	}, nil
}

// Canvas returns the canvas that created cat.
func (cat *Categorical) Canvas() (*Canvas, error) {
	if cat.parent.closed {
		return nil, ErrDetached
	}
	return cat.parent, nil
}

// Plan returns the offset plan of the axis.
func (cat *Categorical) Plan() *offset.Plan { return cat.plan }

// Ticks returns the position of every offset category, including
// combinations of offset values that do not occur.
func (cat *Categorical) Ticks() []Tick {
	keys := cat.mapping.Keys()
	ticks := make([]Tick, len(keys))
	for i, k := range keys {
		x, _ := cat.mapping.Offset(k)
		ticks[i] = Tick{k, k.Label(), x}
	}
	return ticks
}

// splitBy returns the offset and dodge columns followed by each of
// extra not already present.
func (cat *Categorical) splitBy(extra ...[]string) []string {
	by := append(slices.Clone(cat.offsets), cat.dodge...)
	for _, cols := range extra {
		for _, c := range cols {
			if !slices.Contains(by, c) {
				by = append(by, c)
			}
		}
	}
	return by
}

// groups returns the groups of the canvas table over by with their
// positions.
func (cat *Categorical) groups(by []string) ([]category.Entry, error) {
	c, err := cat.Canvas()
	if err != nil {
		return nil, err
	}
	entries, err := cat.it.IterArrays(by, cat.dodge)
	if err != nil {
		return nil, err
	}
	c.log.Debug("grouped",
		zap.Strings("by", by),
		zap.Int("groups", len(entries)))
	return entries, nil
}

func (cat *Categorical) zoom() (float64, error) {
	z, err := cat.it.ZoomFactor(cat.dodge)
	if err != nil {
		return 0, fmt.Errorf("zoom: %w", err)
	}
	return z, nil
}
