// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attr

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-moremath/vec"
	gonum "gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
)

// A Colormap maps [0, 1] to colors. Arguments outside [0, 1] are
// clamped.
type Colormap interface {
	At(x float64) Color
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}

// Continuous adapts a go-gg continuous palette.
type Continuous struct {
	P palette.Continuous
}

func (c Continuous) At(x float64) Color { return FromColor(c.P.Map(clamp01(x))) }

// gonumMap adapts a gonum color map over [0, 1].
type gonumMap struct {
	m gonum.ColorMap
}

// FromColorMap adapts a gonum color map. It sets the map's domain to
// [0, 1].
func FromColorMap(m gonum.ColorMap) Colormap {
	m.SetMin(0)
	m.SetMax(1)
	return gonumMap{m}
}

func (g gonumMap) At(x float64) Color {
	c, err := g.m.At(clamp01(x))
	if err != nil {
		c, _ = g.m.At(0)
	}
	return FromColor(c)
}

// A Gradient interpolates linearly between evenly spaced colors.
type Gradient []Color

func (g Gradient) At(x float64) Color {
	switch len(g) {
	case 0:
		return Color{}
	case 1:
		return g[0]
	}
	n := clamp01(x) * float64(len(g)-1)
	i := int(n)
	if i >= len(g)-1 {
		return g[len(g)-1]
	}
	fr := n - float64(i)
	var out Color
	for k := range out {
		out[k] = g[i][k] + fr*(g[i+1][k]-g[i][k])
	}
	return out
}

// NewGradient parses colors with ParseColor into a Gradient.
func NewGradient(colors ...any) (Gradient, error) {
	if len(colors) == 0 {
		return nil, fmt.Errorf("%w: empty gradient", ErrBadValue)
	}
	g := make(Gradient, len(colors))
	for i, c := range colors {
		var err error
		if g[i], err = ParseColor(c); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Viridis is the default sequential colormap.
var Viridis Colormap = Continuous{palette.Viridis}

var colormaps = map[string]func() Colormap{
	"viridis":   func() Colormap { return Viridis },
	"coolwarm":  func() Colormap { return FromColorMap(moreland.SmoothBlueRed()) },
	"kindlmann": func() Colormap { return FromColorMap(moreland.Kindlmann()) },
	"blackbody": func() Colormap { return FromColorMap(moreland.BlackBody()) },
	"gray":      func() Colormap { return Gradient{{0, 0, 0, 1}, {1, 1, 1, 1}} },
}

// Colormaps returns the names LookupColormap accepts, sorted.
func Colormaps() []string {
	names := make([]string, 0, len(colormaps))
	for n := range colormaps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupColormap returns the colormap called name. Each call returns
// a fresh instance.
func LookupColormap(name string) (Colormap, error) {
	f, ok := colormaps[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown colormap %q (have %s)", ErrBadValue, name, strings.Join(Colormaps(), ", "))
	}
	return f(), nil
}

// Sample returns n colors evenly spaced along cmap, including both
// ends.
func Sample(cmap Colormap, n int) []Color {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Color{cmap.At(0.5)}
	}
	xs := vec.Linspace(0, 1, n)
	out := make([]Color, n)
	for i, x := range xs {
		out[i] = cmap.At(x)
	}
	return out
}
