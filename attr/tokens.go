// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBadValue is returned for an attribute value that cannot be
	// normalized.
	ErrBadValue = errors.New("attr: bad attribute value")

	// ErrDuplicate is returned when a column is added to a plan
	// that is already keyed on it.
	ErrDuplicate = errors.New("attr: duplicate column")

	// ErrNoValues is returned for a cyclic plan with no values.
	ErrNoValues = errors.New("attr: no values to cycle through")

	// ErrRange is returned for an interval with Min > Max.
	ErrRange = errors.New("attr: interval min exceeds max")
)

// A Hatch is a fill pattern token. The empty Hatch is a solid fill.
type Hatch string

// A Symbol is a marker shape token.
type Symbol string

// A Style is a line dash token.
type Style string

var (
	hatches = []Hatch{"", "/", "\\", "x", "-", "|", "+", "."}
	symbols = []Symbol{"o", "s", "^", "v", "D", "<", ">", "x", "+", "*"}
	styles  = []Style{"-", "--", ":", "-."}

	hatchNames = map[string]Hatch{
		"none": "", "solid": "", "diagonal": "/", "backdiagonal": "\\",
		"cross": "x", "horizontal": "-", "vertical": "|", "grid": "+", "dots": ".",
	}
	symbolNames = map[string]Symbol{
		"circle": "o", "square": "s", "triangle": "^", "triangle-up": "^",
		"triangle-down": "v", "diamond": "D", "triangle-left": "<",
		"triangle-right": ">", "x": "x", "plus": "+", "star": "*",
	}
	styleNames = map[string]Style{
		"solid": "-", "dashed": "--", "dotted": ":", "dashdot": "-.",
	}
)

// DefaultHatches returns the default hatch cycle.
func DefaultHatches() []Hatch { return append([]Hatch(nil), hatches...) }

// DefaultSymbols returns the default symbol cycle.
func DefaultSymbols() []Symbol { return append([]Symbol(nil), symbols...) }

// DefaultStyles returns the default line style cycle.
func DefaultStyles() []Style { return append([]Style(nil), styles...) }

func parseToken[T ~string](kind string, v any, tokens []T, names map[string]T) (T, error) {
	var s string
	switch v := v.(type) {
	case T:
		s = string(v)
	case string:
		s = v
	default:
		return "", fmt.Errorf("%w: cannot use %T as a %s", ErrBadValue, v, kind)
	}
	for _, t := range tokens {
		if string(t) == s {
			return t, nil
		}
	}
	if t, ok := names[strings.ToLower(s)]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: unknown %s %q", ErrBadValue, kind, s)
}

// ParseHatch normalizes a hatch token or name such as "diagonal".
func ParseHatch(v any) (Hatch, error) {
	return parseToken("hatch", v, hatches, hatchNames)
}

// ParseSymbol normalizes a symbol token or name such as "circle".
func ParseSymbol(v any) (Symbol, error) {
	return parseToken("symbol", v, symbols, symbolNames)
}

// ParseStyle normalizes a line style token or name such as "dashed".
func ParseStyle(v any) (Style, error) {
	return parseToken("style", v, styles, styleNames)
}
