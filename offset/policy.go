// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offset

import (
	"fmt"
	"strings"
)

// A Policy converts the number of leaf categories spanned by a
// change of level into a positional increment.
type Policy interface {
	Increment(interval int) float64
}

// NoMargin advances by the interval, leaving no gap.
type NoMargin struct{}

func (NoMargin) Increment(interval int) float64 { return float64(interval) }

func (NoMargin) String() string { return "NoMargin" }

// ConstMargin advances by the interval plus a constant gap M.
type ConstMargin struct {
	M float64
}

func (p ConstMargin) Increment(interval int) float64 { return float64(interval) + p.M }

func (p ConstMargin) String() string { return fmt.Sprintf("ConstMargin(%g)", p.M) }

// Overlay never advances, so categories are drawn on top of each
// other.
type Overlay struct{}

func (Overlay) Increment(int) float64 { return 0 }

func (Overlay) String() string { return "Overlay" }

// Const always advances by C.
type Const struct {
	C float64
}

func (p Const) Increment(int) float64 { return p.C }

func (p Const) String() string { return fmt.Sprintf("Const(%g)", p.C) }

// Composite advances by the sum of its policies' increments.
type Composite []Policy

func (c Composite) Increment(interval int) float64 {
	var sum float64
	for _, p := range c {
		sum += p.Increment(interval)
	}
	return sum
}

func (c Composite) String() string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = fmt.Sprint(p)
	}
	return "Composite(" + strings.Join(parts, ", ") + ")"
}
