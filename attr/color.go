// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attr

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/palette/brewer"
	"golang.org/x/image/colornames"
)

// A Color is a non-premultiplied RGBA color with components in
// [0, 1].
type Color [4]float64

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	ch := func(x float64) float64 {
		return math.Max(0, math.Min(1, x))
	}
	alpha := ch(c[3])
	r = uint32(ch(c[0])*alpha*0xffff + 0.5)
	g = uint32(ch(c[1])*alpha*0xffff + 0.5)
	b = uint32(ch(c[2])*alpha*0xffff + 0.5)
	a = uint32(alpha*0xffff + 0.5)
	return
}

// FromColor converts any color.Color to a Color.
func FromColor(c color.Color) Color {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Color{
		float64(n.R) / 0xffff,
		float64(n.G) / 0xffff,
		float64(n.B) / 0xffff,
		float64(n.A) / 0xffff,
	}
}

// Hex formats c as #rrggbb, or #rrggbbaa if it is not opaque.
func (c Color) Hex() string {
	b := func(x float64) int {
		return int(math.Round(math.Max(0, math.Min(1, x)) * 255))
	}
	if b(c[3]) == 255 {
		return fmt.Sprintf("#%02x%02x%02x", b(c[0]), b(c[1]), b(c[2]))
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", b(c[0]), b(c[1]), b(c[2]), b(c[3]))
}

func (c Color) String() string { return c.Hex() }

// WithAlpha returns c with alpha a.
func (c Color) WithAlpha(a float64) Color {
	c[3] = a
	return c
}

// ParseColor normalizes a color value. It accepts a Color,
// any color.Color, a float tuple ([]float64 or [3]/[4]float64 of RGB
// or RGBA in [0, 1]), or a string: a CSS/SVG color name, "tab:<name>"
// for the default palette, "none", or hex "#rgb", "#rgba", "#rrggbb",
// "#rrggbbaa".
func ParseColor(v any) (Color, error) {
	switch v := v.(type) {
	case Color:
		return v, nil
	case color.Color:
		return FromColor(v), nil
	case [4]float64:
		return checkColor(Color(v))
	case [3]float64:
		return checkColor(Color{v[0], v[1], v[2], 1})
	case []float64:
		switch len(v) {
		case 3:
			return checkColor(Color{v[0], v[1], v[2], 1})
		case 4:
			return checkColor(Color{v[0], v[1], v[2], v[3]})
		}
		return Color{}, fmt.Errorf("%w: %v has %d components", ErrBadValue, v, len(v))
	case string:
		return parseColorString(v)
	}
	return Color{}, fmt.Errorf("%w: cannot use %T as a color", ErrBadValue, v)
}

func checkColor(c Color) (Color, error) {
	for _, x := range c {
		if !(x >= 0 && x <= 1) {
			return Color{}, fmt.Errorf("%w: color %v out of [0, 1]", ErrBadValue, [4]float64(c))
		}
	}
	return c, nil
}

func parseColorString(s string) (Color, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "none" || name == "transparent" {
		return Color{}, nil
	}
	if strings.HasPrefix(name, "#") {
		return parseHex(name)
	}
	if tab, ok := strings.CutPrefix(name, "tab:"); ok {
		for i, n := range tab10Names {
			if n == tab {
				return defaultColors[i], nil
			}
		}
	}
	if c, ok := colornames.Map[strings.ReplaceAll(name, " ", "")]; ok {
		return FromColor(c), nil
	}
	return Color{}, fmt.Errorf("%w: unknown color %q", ErrBadValue, s)
}

func parseHex(s string) (Color, error) {
	hex := s[1:]
	switch len(hex) {
	case 3, 4:
		var b strings.Builder
		for _, r := range hex {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		hex = b.String()
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("%w: bad hex color %q", ErrBadValue, s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: bad hex color %q", ErrBadValue, s)
	}
	return Color{
		float64(n>>24&0xff) / 255,
		float64(n>>16&0xff) / 255,
		float64(n>>8&0xff) / 255,
		float64(n&0xff) / 255,
	}, nil
}

var tab10Names = []string{"blue", "orange", "green", "red", "purple", "brown", "pink", "gray", "olive", "cyan"}

var defaultColors = mustHexes(
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
)

func mustHexes(hexes ...string) []Color {
	cs := make([]Color, len(hexes))
	for i, h := range hexes {
		c, err := parseHex(h)
		if err != nil {
			panic(err)
		}
		cs[i] = c
	}
	return cs
}

// DefaultColors returns the default qualitative palette.
func DefaultColors() []Color {
	return append([]Color(nil), defaultColors...)
}

// BrewerPalette returns the largest variant of the ColorBrewer
// palette name, such as "Set1" or "Dark2".
func BrewerPalette(name string) ([]Color, error) {
	levels, ok := brewer.ByName[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown palette %q", ErrBadValue, name)
	}
	best := -1
	var out []Color
	for n, pal := range levels {
		if n <= best {
			continue
		}
		best = n
		out = out[:0]
		for _, c := range pal {
			out = append(out, FromColor(c))
		}
	}
	return out, nil
}

// Palette resolves a palette: the name of a
// ColorBrewer palette, or "default".
func Palette(name string) ([]Color, error) {
	if name == "" || name == "default" || name == "tab10" {
		return DefaultColors(), nil
	}
	return BrewerPalette(name)
}
