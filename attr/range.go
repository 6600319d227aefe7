// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attr

import (
	"fmt"
	"math"

	"github.com/aclements/go-catplot/source"
	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
)

// An Interval is a closed interval [Min, Max].
type Interval struct {
	Min, Max float64
}

func (i Interval) check(what string) error {
	if i.Min > i.Max {
		return fmt.Errorf("%w: %s [%g, %g]", ErrRange, what, i.Min, i.Max)
	}
	return nil
}

// Mid returns the midpoint of i.
func (i Interval) Mid() float64 { return (i.Min + i.Max) / 2 }

func copyInterval(i *Interval) *Interval {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// A Range plan maps one numeric column linearly onto an interval.
type Range struct {
	column string
	rng    *Interval
	domain *Interval
	value  float64
}

type (
	SizePlan  = Range
	WidthPlan = Range
)

// FromRange returns a plan mapping column linearly from domain to
// rng. If domain is nil, it is the bounds of the finite values of the
// column. If rng is nil, values pass through clipped to the domain.
func FromRange(column string, rng, domain *Interval) (*Range, error) {
	if rng != nil {
		if err := rng.check("range"); err != nil {
			return nil, err
		}
	}
	if domain != nil {
		if err := domain.check("domain"); err != nil {
			return nil, err
		}
	}
	return &Range{column, copyInterval(rng), copyInterval(domain), 0}, nil
}

// ConstRange returns a plan that maps every row to v.
func ConstRange(v float64) *Range {
	return &Range{value: v}
}

// Column returns the column p maps, or "" for a constant plan.
func (p *Range) Column() string { return p.column }

// IsConst reports whether p maps every row to the same value.
func (p *Range) IsConst() bool { return p.column == "" }

func (p *Range) String() string {
	if p.IsConst() {
		return fmt.Sprintf("Range(%g)", p.value)
	}
	return fmt.Sprintf("Range(%s)", p.column)
}

// Map returns the value of each row of t.
//
// If the domain is degenerate, every row maps to the midpoint of the
// range, or to the single domain value if there is no range.
func (p *Range) Map(t source.Table) ([]float64, error) {
	if p.IsConst() {
		out := make([]float64, t.Len())
		for i := range out {
			out[i] = p.value
		}
		return out, nil
	}
	xs, err := source.Floats(t, p.column)
	if err != nil {
		return nil, err
	}
	u, d, ok := unit(xs, p.domain)
	to := d
	if p.rng != nil {
		to = *p.rng
	}
	out := make([]float64, len(xs))
	for i := range out {
		switch {
		case !ok && p.rng != nil:
			out[i] = p.rng.Mid()
		case !ok:
			out[i] = d.Min
		default:
			out[i] = to.Min + u[i]*(to.Max-to.Min)
		}
	}
	return out, nil
}

// unit rescales xs from domain to [0, 1], clipping to the domain and
// sending non-finite values to 0. If domain is nil it is the bounds
// of the finite values of xs. ok is false if the domain is
// degenerate. d is the domain used, which is NaN if xs has no finite
// values.
func unit(xs []float64, domain *Interval) (u []float64, d Interval, ok bool) {
	if domain != nil {
		d = *domain
	} else {
		d = finiteBounds(xs)
	}
	if !(d.Min < d.Max) {
		return nil, d, false
	}
	lin := scale.Linear{Min: d.Min, Max: d.Max}
	u = make([]float64, len(xs))
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			x = d.Min
		}
		u[i] = lin.Map(math.Max(d.Min, math.Min(d.Max, x)))
	}
	return u, d, true
}

// finiteBounds returns the bounds of the finite values of xs, or NaN
// bounds if there are none.
func finiteBounds(xs []float64) Interval {
	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return Interval{math.NaN(), math.NaN()}
	}
	lo, hi := stats.Bounds(finite)
	return Interval{lo, hi}
}

// A ColormapPlan maps one numeric column through a colormap.
type ColormapPlan struct {
	column string
	cmap   Colormap
	clim   *Interval
}

// FromColormap returns a plan mapping column from clim onto cmap. If
// clim is nil, it is the bounds of the finite values of the column.
func FromColormap(column string, cmap Colormap, clim *Interval) (*ColormapPlan, error) {
	if clim != nil {
		if err := clim.check("clim"); err != nil {
			return nil, err
		}
	}
	if cmap == nil {
		cmap = Viridis
	}
	return &ColormapPlan{column, cmap, copyInterval(clim)}, nil
}

// Column returns the column p maps.
func (p *ColormapPlan) Column() string { return p.column }

// Colormap returns p's colormap.
func (p *ColormapPlan) Colormap() Colormap { return p.cmap }

// Map returns the color of each row of t. If the color limits are
// degenerate, every row gets the middle color of the colormap.
func (p *ColormapPlan) Map(t source.Table) ([]Color, error) {
	xs, err := source.Floats(t, p.column)
	if err != nil {
		return nil, err
	}
	u, _, ok := unit(xs, p.clim)
	out := make([]Color, len(xs))
	for i := range out {
		if ok {
			out[i] = p.cmap.At(u[i])
		} else {
			out[i] = p.cmap.At(0.5)
		}
	}
	return out, nil
}
