// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package theme holds the configurable defaults of categorical plots
// and builds plans from them.
//
// A theme can be loaded from a TOML file. Keys that are not set keep
// their default values:
//
//	palette = "Set1"
//	hatches = ["/", "x"]
//	dodge_width = 0.6
//	size_range = [2, 10]
package theme

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aclements/go-catplot/attr"
	"github.com/aclements/go-catplot/jitter"
	"github.com/aclements/go-catplot/offset"
)

// ErrInvalid is returned by Validate and wraps every problem found.
var ErrInvalid = errors.New("theme: invalid")

// A Theme is a set of plotting defaults.
type Theme struct {
	// Palette names a ColorBrewer palette. If set, it overrides
	// Colors.
	Palette string   `toml:"palette"`
	Colors  []string `toml:"colors"`

	Hatches []string `toml:"hatches"`
	Symbols []string `toml:"symbols"`
	Styles  []string `toml:"styles"`

	// DodgeWidth is the fraction of a category slot shared by its
	// dodged subcategories.
	DodgeWidth float64 `toml:"dodge_width"`

	// Margin is the gap between blocks of an outer category level.
	Margin float64 `toml:"margin"`

	JitterExtent float64 `toml:"jitter_extent"`
	SwarmExtent  float64 `toml:"swarm_extent"`

	SizeRange  [2]float64 `toml:"size_range"`
	WidthRange [2]float64 `toml:"width_range"`

	Colormap string `toml:"colormap"`
	Seed     int64  `toml:"seed"`
}

// Default returns a new theme with the default settings.
func Default() *Theme {
	th := &Theme{
		DodgeWidth:   0.8,
		Margin:       0.3,
		JitterExtent: 0.3,
		SwarmExtent:  0.8,
		SizeRange:    [2]float64{3, 15},
		WidthRange:   [2]float64{1, 4},
		Colormap:     "viridis",
	}
	for _, c := range attr.DefaultColors() {
		th.Colors = append(th.Colors, c.Hex())
	}
	for _, h := range attr.DefaultHatches() {
		th.Hatches = append(th.Hatches, string(h))
	}
	for _, s := range attr.DefaultSymbols() {
		th.Symbols = append(th.Symbols, string(s))
	}
	for _, s := range attr.DefaultStyles() {
		th.Styles = append(th.Styles, string(s))
	}
	return th
}

// Decode reads a TOML theme from r over the defaults and validates
// it.
func Decode(r io.Reader) (*Theme, error) {
	th := Default()
	md, err := toml.NewDecoder(r).Decode(th)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	return finish(th, md)
}

// Load reads a TOML theme file over the defaults and validates it.
func Load(path string) (*Theme, error) {
	th := Default()
	md, err := toml.DecodeFile(path, th)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}
	th, err = finish(th, md)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return th, nil
}

func finish(th *Theme, md toml.MetaData) (*Theme, error) {
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	if err := th.Validate(); err != nil {
		return nil, err
	}
	return th, nil
}

// Validate checks every setting of th.
func (th *Theme) Validate() error {
	var errs []error
	check := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	_, err := th.palette()
	check(err)
	check(parseAll("hatches", th.Hatches, attr.ParseHatch))
	check(parseAll("symbols", th.Symbols, attr.ParseSymbol))
	check(parseAll("styles", th.Styles, attr.ParseStyle))
	if !(th.DodgeWidth > 0 && th.DodgeWidth <= 1) {
		errs = append(errs, fmt.Errorf("dodge_width %g not in (0, 1]", th.DodgeWidth))
	}
	for name, v := range map[string]float64{
		"margin":        th.Margin,
		"jitter_extent": th.JitterExtent,
		"swarm_extent":  th.SwarmExtent,
	} {
		if !(v >= 0) {
			errs = append(errs, fmt.Errorf("%s %g is negative", name, v))
		}
	}
	check(checkRange("size_range", th.SizeRange))
	check(checkRange("width_range", th.WidthRange))
	_, err = attr.LookupColormap(th.Colormap)
	check(err)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

func parseAll[T any](what string, vals []string, parse func(any) (T, error)) error {
	if len(vals) == 0 {
		return fmt.Errorf("%s: empty", what)
	}
	for _, v := range vals {
		if _, err := parse(v); err != nil {
			return fmt.Errorf("%s: %w", what, err)
		}
	}
	return nil
}

func checkRange(what string, r [2]float64) error {
	if r[0] > r[1] {
		return fmt.Errorf("%s: %w", what, attr.ErrRange)
	}
	return nil
}

func (th *Theme) palette() ([]attr.Color, error) {
	if th.Palette != "" {
		return attr.Palette(th.Palette)
	}
	if len(th.Colors) == 0 {
		return nil, fmt.Errorf("colors: empty")
	}
	out := make([]attr.Color, len(th.Colors))
	for i, c := range th.Colors {
		var err error
		if out[i], err = attr.ParseColor(c); err != nil {
			return nil, fmt.Errorf("colors: %w", err)
		}
	}
	return out, nil
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// ColorPlan returns a color plan over by using th's palette.
func (th *Theme) ColorPlan(by ...string) (*attr.ColorPlan, error) {
	colors, err := th.palette()
	if err != nil {
		return nil, err
	}
	return attr.NewCyclic(by, colors, attr.ParseColor)
}

// HatchPlan returns a hatch plan over by.
func (th *Theme) HatchPlan(by ...string) (*attr.HatchPlan, error) {
	return attr.NewHatchPlan(by, toAny(th.Hatches)...)
}

// SymbolPlan returns a symbol plan over by.
func (th *Theme) SymbolPlan(by ...string) (*attr.SymbolPlan, error) {
	return attr.NewSymbolPlan(by, toAny(th.Symbols)...)
}

// StylePlan returns a line style plan over by.
func (th *Theme) StylePlan(by ...string) (*attr.StylePlan, error) {
	return attr.NewStylePlan(by, toAny(th.Styles)...)
}

// OffsetPlan returns an offset plan over by. Leaf categories are
// adjacent and blocks of each outer level are separated by th.Margin.
func (th *Theme) OffsetPlan(by ...string) (*offset.Plan, error) {
	if len(by) == 0 {
		return offset.Default(), nil
	}
	p, err := offset.New(by[:1], []offset.Policy{offset.NoMargin{}})
	if err != nil {
		return nil, err
	}
	return p.MoreBy(th.Margin, by[1:]...)
}

// SizePlan returns a plan mapping column onto th.SizeRange.
func (th *Theme) SizePlan(column string) (*attr.SizePlan, error) {
	return attr.FromRange(column, &attr.Interval{Min: th.SizeRange[0], Max: th.SizeRange[1]}, nil)
}

// WidthPlan returns a plan mapping column onto th.WidthRange.
func (th *Theme) WidthPlan(column string) (*attr.WidthPlan, error) {
	return attr.FromRange(column, &attr.Interval{Min: th.WidthRange[0], Max: th.WidthRange[1]}, nil)
}

// ColormapPlan returns a plan mapping column through th.Colormap.
func (th *Theme) ColormapPlan(column string) (*attr.ColormapPlan, error) {
	cmap, err := attr.LookupColormap(th.Colormap)
	if err != nil {
		return nil, err
	}
	return attr.FromColormap(column, cmap, nil)
}

// Uniform returns a uniform jitter over by seeded with th.Seed.
func (th *Theme) Uniform(by ...string) (*jitter.Uniform, error) {
	return jitter.NewUniform(by, th.JitterExtent, th.Seed)
}

// Swarm returns a swarm jitter over by along value.
func (th *Theme) Swarm(value string, by ...string) *jitter.Swarm {
	return &jitter.Swarm{By: by, Value: value, Extent: th.SwarmExtent}
}
