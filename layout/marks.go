// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package layout

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/aclements/go-catplot/attr"
	"github.com/aclements/go-catplot/category"
	"github.com/aclements/go-catplot/jitter"
	"github.com/aclements/go-catplot/source"
	"go.uber.org/zap"
)

// JitterKind selects how markers of one category are spread.
type JitterKind int

const (
	NoJitter JitterKind = iota
	UniformJitter
	SwarmJitter
)

var jitterNames = []string{"none", "uniform", "swarm"}

func (k JitterKind) String() string {
	if int(k) < len(jitterNames) {
		return jitterNames[k]
	}
	return fmt.Sprintf("JitterKind(%d)", int(k))
}

// ParseJitter parses "none", "uniform" or "swarm".
func ParseJitter(s string) (JitterKind, error) {
	if i := slices.Index(jitterNames, s); i >= 0 {
		return JitterKind(i), nil
	}
	return 0, fmt.Errorf("layout: unknown jitter %q", s)
}

// A MarkerSpec describes a marker layer.
type MarkerSpec struct {
	// Y is the numeric value column.
	Y string

	// Color are the columns whose categories select a color.
	Color []string

	// ColorValue, if set, is a numeric column mapped through the
	// theme colormap. It overrides Color.
	ColorValue string

	// Symbol are the columns whose categories select a symbol.
	Symbol []string

	// Size, if set, is a numeric column mapped onto the theme size
	// range.
	Size string

	Jitter JitterKind
}

// Markers holds one marker per row of the canvas table.
type Markers struct {
	X, Y   []float64
	Color  []attr.Color
	Symbol []attr.Symbol
	Size   []float64

	// Legend lists the color of each Color category.
	Legend []attr.LegendEntry[attr.Color]
}

// basePositions returns a jitter that places every row at the
// position of its group.
func basePositions(by []string, entries []category.Entry) (*jitter.Categorical, error) {
	keys := make([]source.Key, len(entries))
	offs := make([]float64, len(entries))
	for i, e := range entries {
		keys[i], offs[i] = e.Key, e.Offset
	}
	return jitter.NewCategorical(by, keys, offs)
}

// Markers computes a marker layer.
func (cat *Categorical) Markers(spec MarkerSpec) (*Markers, error) {
	c, err := cat.Canvas()
	if err != nil {
		return nil, err
	}
	th, t := c.theme, c.t

	by := cat.splitBy(spec.Color, spec.Symbol)
	entries, err := cat.groups(by)
	if err != nil {
		return nil, err
	}
	base, err := basePositions(by, entries)
	if err != nil {
		return nil, err
	}
	zoom, err := cat.zoom()
	if err != nil {
		return nil, err
	}
	var j jitter.Jitter = base
	switch spec.Jitter {
	case UniformJitter:
		u, err := jitter.NewUniform(by, th.JitterExtent*zoom, th.Seed)
		if err != nil {
			return nil, err
		}
		j = u.WithBase(base)
	case SwarmJitter:
		j = &jitter.Swarm{By: by, Value: spec.Y, Extent: th.SwarmExtent * zoom, Base: base}
	}
	c.log.Debug("markers", zap.Stringer("jitter", spec.Jitter), zap.Float64("zoom", zoom))

	m := new(Markers)
	if m.X, err = j.Map(t); err != nil {
		return nil, err
	}
	if m.Y, err = source.Floats(t, spec.Y); err != nil {
		return nil, err
	}

	if spec.ColorValue != "" {
		cp, err := th.ColormapPlan(spec.ColorValue)
		if err != nil {
			return nil, err
		}
		if m.Color, err = cp.Map(t); err != nil {
			return nil, err
		}
	} else {
		cp, err := th.ColorPlan(spec.Color...)
		if err != nil {
			return nil, err
		}
		if m.Color, err = cp.Map(t); err != nil {
			return nil, err
		}
		if len(spec.Color) > 0 {
			if m.Legend, err = cp.MapLegend(t); err != nil {
				return nil, err
			}
		}
	}

	sp, err := th.SymbolPlan(spec.Symbol...)
	if err != nil {
		return nil, err
	}
	if m.Symbol, err = sp.Map(t); err != nil {
		return nil, err
	}

	size := attr.ConstRange((th.SizeRange[0] + th.SizeRange[1]) / 2)
	if spec.Size != "" {
		if size, err = th.SizePlan(spec.Size); err != nil {
			return nil, err
		}
	}
	if m.Size, err = size.Map(t); err != nil {
		return nil, err
	}
	return m, nil
}

// A BarSpec describes a bar layer.
type BarSpec struct {
	// Value is the numeric column aggregated to each bar's height.
	Value string
	Agg   source.Agg

	Color []string
	Hatch []string
}

// A Bar is one aggregated group.
type Bar struct {
	Key    source.Key
	X      float64
	Height float64
	Width  float64
	Color  attr.Color
	Hatch  attr.Hatch
}

// Bars holds one bar per group.
type Bars struct {
	Bars   []Bar
	Legend []attr.LegendEntry[attr.Color]
}

// Bars computes a bar layer. Bars are narrowed by the zoom factor of
// the dodge columns so dodged bars do not overlap.
func (cat *Categorical) Bars(spec BarSpec) (*Bars, error) {
	c, err := cat.Canvas()
	if err != nil {
		return nil, err
	}
	th := c.theme

	by := cat.splitBy(spec.Color, spec.Hatch)
	entries, err := cat.groups(by)
	if err != nil {
		return nil, err
	}
	zoom, err := cat.zoom()
	if err != nil {
		return nil, err
	}
	keys := make([]source.Key, len(entries))
	for i, e := range entries {
		keys[i] = e.Key
	}
	cp, err := th.ColorPlan(spec.Color...)
	if err != nil {
		return nil, err
	}
	colors, err := cp.Generate(keys, by)
	if err != nil {
		return nil, err
	}
	hp, err := th.HatchPlan(spec.Hatch...)
	if err != nil {
		return nil, err
	}
	hatches, err := hp.Generate(keys, by)
	if err != nil {
		return nil, err
	}

	out := &Bars{Bars: make([]Bar, len(entries))}
	for i, e := range entries {
		h, err := e.Table.Aggregate(spec.Value, spec.Agg)
		if err != nil {
			return nil, fmt.Errorf("bar %v: %w", e.Key, err)
		}
		out.Bars[i] = Bar{e.Key, e.Offset, h, th.DodgeWidth * zoom, colors[i], hatches[i]}
	}
	if len(spec.Color) > 0 {
		if out.Legend, err = cp.Legend(keys, by); err != nil {
			return nil, err
		}
	}
	c.log.Debug("bars", zap.Int("bars", len(out.Bars)), zap.Stringer("agg", spec.Agg))
	return out, nil
}

// A LineSpec describes a line layer. Each distinct combination of the
// dodge, Color and Style columns is one line with a point at every
// offset category it occurs in.
type LineSpec struct {
	Value string
	Agg   source.Agg

	Color []string
	Style []string

	// Width, if set, is a numeric column whose per-line mean is
	// mapped onto the theme width range.
	Width string
}

// A Line is a polyline through aggregated groups, ordered by X.
type Line struct {
	Key   source.Key
	X, Y  []float64
	Color attr.Color
	Style attr.Style
	Width float64
}

// Lines holds one polyline per line group.
type Lines struct {
	Lines  []Line
	Legend []attr.LegendEntry[attr.Color]
}

type linePoint struct {
	x, y float64
	t    source.Table
}

// Lines computes a line layer.
func (cat *Categorical) Lines(spec LineSpec) (*Lines, error) {
	c, err := cat.Canvas()
	if err != nil {
		return nil, err
	}
	th := c.theme

	var lineBy []string
	for _, cols := range [][]string{cat.dodge, spec.Color, spec.Style} {
		for _, col := range cols {
			if !slices.Contains(lineBy, col) && !slices.Contains(cat.offsets, col) {
				lineBy = append(lineBy, col)
			}
		}
	}
	by := cat.splitBy(lineBy)
	entries, err := cat.groups(by)
	if err != nil {
		return nil, err
	}
	lineIdx, err := source.Indexes(lineBy, by)
	if err != nil {
		return nil, err
	}

	var keys []source.Key
	var points [][]linePoint
	index := make(map[string]int)
	for _, e := range entries {
		y, err := e.Table.Aggregate(spec.Value, spec.Agg)
		if err != nil {
			return nil, fmt.Errorf("line point %v: %w", e.Key, err)
		}
		k := e.Key.Project(lineIdx)
		i, ok := index[k.Ident()]
		if !ok {
			i = len(keys)
			index[k.Ident()] = i
			keys = append(keys, k)
			points = append(points, nil)
		}
		points[i] = append(points[i], linePoint{e.Offset, y, e.Table})
	}

	cp, err := th.ColorPlan(spec.Color...)
	if err != nil {
		return nil, err
	}
	colors, err := cp.Generate(keys, lineBy)
	if err != nil {
		return nil, err
	}
	sp, err := th.StylePlan(spec.Style...)
	if err != nil {
		return nil, err
	}
	styles, err := sp.Generate(keys, lineBy)
	if err != nil {
		return nil, err
	}
	widths, err := cat.lineWidths(spec.Width, points)
	if err != nil {
		return nil, err
	}

	out := &Lines{Lines: make([]Line, len(keys))}
	for i, pts := range points {
		slices.SortStableFunc(pts, func(a, b linePoint) int {
			return cmp.Compare(a.x, b.x)
		})
		l := Line{Key: keys[i], Color: colors[i], Style: styles[i], Width: widths[i]}
		for _, p := range pts {
			l.X = append(l.X, p.x)
			l.Y = append(l.Y, p.y)
		}
		out.Lines[i] = l
	}
	if len(spec.Color) > 0 {
		if out.Legend, err = cp.Legend(keys, lineBy); err != nil {
			return nil, err
		}
	}
	c.log.Debug("lines", zap.Int("lines", len(out.Lines)))
	return out, nil
}

// lineWidths returns the width of each line. With no width column,
// every line gets the low end of the theme width range.
func (cat *Categorical) lineWidths(col string, points [][]linePoint) ([]float64, error) {
	th := cat.parent.theme
	if col == "" {
		out := make([]float64, len(points))
		for i := range out {
			out[i] = th.WidthRange[0]
		}
		return out, nil
	}
	means := make([]float64, len(points))
	for i, pts := range points {
		var xs []float64
		for _, p := range pts {
			fs, err := source.Floats(p.t, col)
			if err != nil {
				return nil, err
			}
			xs = append(xs, fs...)
		}
		var err error
		if means[i], err = (source.Agg{Kind: source.AggMean}).Apply(xs); err != nil {
			return nil, err
		}
	}
	tab, err := new(source.Builder).Add(col, means).Done()
	if err != nil {
		return nil, err
	}
	wp, err := th.WidthPlan(col)
	if err != nil {
		return nil, err
	}
	return wp.Map(tab)
}
