// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jitter computes per-row coordinates on a categorical axis.
//
// Every jitter except Identity starts from the position of each row's
// category, computed by an offset plan with no margins, and may add a
// displacement so that points in the same category do not overlap.
package jitter

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"slices"

	"github.com/aclements/go-catplot/attr"
	"github.com/aclements/go-catplot/offset"
	"github.com/aclements/go-catplot/source"
	"github.com/aclements/go-moremath/stats"
)

var (
	// ErrUnknownCategory is returned by Categorical for a row whose
	// category has no offset.
	ErrUnknownCategory = errors.New("jitter: category has no offset")

	// ErrExtent is returned for a negative extent.
	ErrExtent = errors.New("jitter: negative extent")
)

// A Jitter maps each row of a table to a coordinate.
type Jitter interface {
	Map(t source.Table) ([]float64, error)
}

// Identity returns numeric column Column unchanged.
type Identity struct {
	Column string
}

func (j Identity) Map(t source.Table) ([]float64, error) {
	return source.Floats(t, j.Column)
}

// baseOffsets returns the position of each row's category over by,
// placing observed categories one unit apart, unless base is non-nil,
// in which case base supplies the positions. It also returns the row
// keys.
func baseOffsets(t source.Table, by []string, base Jitter) ([]float64, []source.Key, error) {
	keys, err := source.Keys(t, by...)
	if err != nil {
		return nil, nil, err
	}
	if base != nil {
		offs, err := base.Map(t)
		if err != nil {
			return nil, nil, err
		}
		if len(offs) != len(keys) {
			return nil, nil, &source.LengthError{What: "base offsets", Got: len(offs), Want: len(keys)}
		}
		return slices.Clone(offs), keys, nil
	}
	policies := make([]offset.Policy, len(by))
	for i := range policies {
		policies[i] = offset.NoMargin{}
	}
	plan, err := offset.New(by, policies)
	if err != nil {
		return nil, nil, err
	}
	offs, err := plan.Generate(keys, by, false)
	if err != nil {
		return nil, nil, err
	}
	return offs, keys, nil
}

func checkExtent(extent float64) error {
	if extent < 0 || math.IsNaN(extent) {
		return fmt.Errorf("%w: %g", ErrExtent, extent)
	}
	return nil
}

// Uniform adds uniform noise in [-Extent/2, Extent/2) to each row's
// category position.
//
// Uniform owns a seeded generator that advances across calls to Map,
// so repeated calls return different noise. Use WithSeed to restart
// the sequence.
type Uniform struct {
	by     []string
	extent float64
	seed   int64
	base   Jitter
	rnd    *rand.Rand
}

// NewUniform returns a uniform jitter over the categories of by.
func NewUniform(by []string, extent float64, seed int64) (*Uniform, error) {
	if err := checkExtent(extent); err != nil {
		return nil, err
	}
	return &Uniform{slices.Clone(by), extent, seed, nil, rand.New(rand.NewSource(seed))}, nil
}

// WithSeed returns a new jitter like j whose generator starts from
// seed.
func (j *Uniform) WithSeed(seed int64) *Uniform {
	return &Uniform{j.By(), j.extent, seed, j.base, rand.New(rand.NewSource(seed))}
}

// WithBase returns a new jitter like j that adds noise to the
// positions computed by base. Its generator starts from j's seed.
func (j *Uniform) WithBase(base Jitter) *Uniform {
	return &Uniform{j.By(), j.extent, j.seed, base, rand.New(rand.NewSource(j.seed))}
}

// By returns the category columns.
func (j *Uniform) By() []string { return slices.Clone(j.by) }

// Extent returns the width of the noise.
func (j *Uniform) Extent() float64 { return j.extent }

// Seed returns the seed j's generator started from.
func (j *Uniform) Seed() int64 { return j.seed }

func (j *Uniform) Map(t source.Table) ([]float64, error) {
	offs, _, err := baseOffsets(t, j.by, j.base)
	if err != nil {
		return nil, err
	}
	for i := range offs {
		offs[i] += (j.rnd.Float64() - 0.5) * j.extent
	}
	return offs, nil
}

// SwarmBins is the number of bins Swarm divides the value range into.
const SwarmBins = 25

// Swarm displaces points of equal category and similar value
// side by side, producing a beeswarm.
//
// The value range is divided into SwarmBins bins. Within each
// category and bin, successive points take slots 0, -1, +1, -2, +2,
// and so on. Slots are scaled so the widest bin spans at most Extent.
type Swarm struct {
	// By are the category columns.
	By []string

	// Value is the numeric column binned along the value axis.
	Value string

	// Limits bounds the value axis. If nil, it is the bounds of the
	// finite values of Value.
	Limits *attr.Interval

	// Extent is the maximum width of a swarm.
	Extent float64

	// Base, if non-nil, supplies the category positions. Slots are
	// still counted per category of By.
	Base Jitter
}

func (j *Swarm) Map(t source.Table) ([]float64, error) {
	if err := checkExtent(j.Extent); err != nil {
		return nil, err
	}
	if j.Limits != nil && j.Limits.Min > j.Limits.Max {
		return nil, fmt.Errorf("%w: limits [%g, %g]", attr.ErrRange, j.Limits.Min, j.Limits.Max)
	}
	offs, keys, err := baseOffsets(t, j.By, j.Base)
	if err != nil {
		return nil, err
	}
	vals, err := source.Floats(t, j.Value)
	if err != nil {
		return nil, err
	}
	slots, binWidth := swarmSlots(keys, vals, j.Limits)

	var slotMax float64
	for _, s := range slots {
		slotMax = math.Max(slotMax, math.Abs(s))
	}
	if slotMax == 0 {
		return offs, nil
	}
	// A zero-width bin (all values equal) would collapse every slot
	// onto the base position, so points in it still spread over
	// the full extent.
	width := j.Extent / 2
	if binWidth > 0 {
		width = math.Min(width, binWidth*slotMax)
	}
	for i, s := range slots {
		offs[i] += s / slotMax * width
	}
	return offs, nil
}

// swarmSlots returns the signed slot of every row and the bin width.
// Rows with non-finite values get slot 0.
func swarmSlots(keys []source.Key, vals []float64, limits *attr.Interval) ([]float64, float64) {
	slots := make([]float64, len(vals))
	var lo, hi float64
	if limits != nil {
		lo, hi = limits.Min, limits.Max
	} else {
		finite := make([]float64, 0, len(vals))
		for _, v := range vals {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				finite = append(finite, v)
			}
		}
		if len(finite) == 0 {
			return slots, 0
		}
		lo, hi = stats.Bounds(finite)
	}
	binWidth := (hi - lo) / SwarmBins

	type cell struct {
		cat string
		bin int
	}
	count := make(map[cell]int)
	for i, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		bin := 0
		if binWidth > 0 {
			bin = int(math.Floor((v - lo) / binWidth))
			bin = max(0, min(SwarmBins-1, bin))
		}
		c := cell{keys[i].Ident(), bin}
		k := count[c]
		count[c]++
		if k%2 == 0 {
			slots[i] = float64(k / 2)
		} else {
			slots[i] = -float64((k + 1) / 2)
		}
	}
	return slots, binWidth
}

// Categorical places each row at a precomputed category position.
type Categorical struct {
	by   []string
	offs map[string]float64
}

// NewCategorical returns a jitter placing category keys[i], a key
// over by, at offsets[i].
func NewCategorical(by []string, keys []source.Key, offsets []float64) (*Categorical, error) {
	if len(keys) != len(offsets) {
		return nil, &source.LengthError{What: "offsets", Got: len(offsets), Want: len(keys)}
	}
	j := &Categorical{slices.Clone(by), make(map[string]float64, len(keys))}
	for i, k := range keys {
		if len(k) != len(by) {
			return nil, &source.LengthError{What: fmt.Sprintf("key %d", i), Got: len(k), Want: len(by)}
		}
		j.offs[k.Ident()] = offsets[i]
	}
	return j, nil
}

// FromMapping returns a jitter that reuses the positions assigned by
// an offset plan.
func FromMapping(m *offset.Mapping) *Categorical {
	j := &Categorical{m.By(), make(map[string]float64)}
	for _, k := range m.Keys() {
		off, _ := m.Offset(k)
		j.offs[k.Ident()] = off
	}
	return j
}

// By returns the category columns.
func (j *Categorical) By() []string { return slices.Clone(j.by) }

func (j *Categorical) Map(t source.Table) ([]float64, error) {
	keys, err := source.Keys(t, j.by...)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(keys))
	for i, k := range keys {
		off, ok := j.offs[k.Ident()]
		if !ok {
			return nil, fmt.Errorf("%w: %v at row %d", ErrUnknownCategory, k, i)
		}
		out[i] = off
	}
	return out, nil
}
