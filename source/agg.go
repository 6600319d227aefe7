// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// AggKind is a way of reducing a column to one value.
type AggKind int

const (
	AggMean AggKind = iota
	AggMedian
	AggSum
	AggMin
	AggMax
	AggCount
	AggStd
	AggGeoMean
	AggQuantile
)

var aggNames = map[AggKind]string{
	AggMean:     "mean",
	AggMedian:   "median",
	AggSum:      "sum",
	AggMin:      "min",
	AggMax:      "max",
	AggCount:    "count",
	AggStd:      "std",
	AggGeoMean:  "geomean",
	AggQuantile: "quantile",
}

func (k AggKind) String() string {
	if s, ok := aggNames[k]; ok {
		return s
	}
	return fmt.Sprintf("AggKind(%d)", int(k))
}

// An Agg describes an aggregation. Q is the quantile for
// AggQuantile and is ignored otherwise.
type Agg struct {
	Kind AggKind
	Q    float64
}

// Quantile returns the aggregation computing quantile q.
func Quantile(q float64) Agg {
	return Agg{AggQuantile, q}
}

func (a Agg) String() string {
	if a.Kind == AggQuantile {
		return fmt.Sprintf("quantile(%g)", a.Q)
	}
	return a.Kind.String()
}

// ParseAgg parses an aggregation name such as "mean", "median" or
// "quantile(0.9)".
func ParseAgg(s string) (Agg, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if rest, ok := strings.CutPrefix(s, "quantile("); ok && strings.HasSuffix(rest, ")") {
		q, err := strconv.ParseFloat(strings.TrimSuffix(rest, ")"), 64)
		if err != nil {
			return Agg{}, fmt.Errorf("source: bad quantile %q: %w", s, err)
		}
		a := Quantile(q)
		return a, a.validate()
	}
	for k, name := range aggNames {
		if name == s && k != AggQuantile {
			return Agg{Kind: k}, nil
		}
	}
	return Agg{}, fmt.Errorf("source: unknown aggregation %q", s)
}

func (a Agg) validate() error {
	if a.Kind == AggQuantile && !(a.Q >= 0 && a.Q <= 1) {
		return fmt.Errorf("%w: %g", ErrQuantile, a.Q)
	}
	return nil
}

// Apply reduces xs, ignoring NaNs. The reduction of no values is NaN,
// except for AggCount and AggSum, which give 0.
func (a Agg) Apply(xs []float64) (float64, error) {
	if err := a.validate(); err != nil {
		return 0, err
	}
	var vals []float64
	for _, x := range xs {
		if !math.IsNaN(x) {
			vals = append(vals, x)
		}
	}
	switch a.Kind {
	case AggCount:
		return float64(len(vals)), nil
	case AggSum:
		return vec.Sum(vals), nil
	}
	if len(vals) == 0 {
		return math.NaN(), nil
	}
	switch a.Kind {
	case AggMean:
		return stats.Mean(vals), nil
	case AggMedian:
		return stats.Sample{Xs: vals}.Quantile(0.5), nil
	case AggMin:
		lo, _ := stats.Bounds(vals)
		return lo, nil
	case AggMax:
		_, hi := stats.Bounds(vals)
		return hi, nil
	case AggStd:
		if len(vals) < 2 {
			return 0, nil
		}
		return stats.StdDev(vals), nil
	case AggGeoMean:
		return stats.GeoMean(vals), nil
	case AggQuantile:
		return stats.Sample{Xs: vals}.Quantile(a.Q), nil
	}
	return 0, fmt.Errorf("source: unknown aggregation %v", a.Kind)
}
