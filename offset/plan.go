// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package offset places hierarchical categories on one spatial axis.
//
// A Plan has one grouping column per level, level 0 being the
// outermost (slowest changing), and one spacing Policy per level.
// Policy 0 spaces adjacent leaf categories, that is, changes of the
// innermost level. Policy k, for k > 0, spaces the blocks formed when
// level k-1 changes. Hence MoreBy, which appends a level and its
// policy, separates the existing blocks by its margin once they are
// subdivided by the new column.
package offset

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aclements/go-catplot/source"
)

var (
	// ErrDuplicate is returned when a column is added to a plan
	// that is already keyed on it.
	ErrDuplicate = errors.New("offset: duplicate column")

	// ErrPolicies is returned when the number of policies does not
	// match the number of levels.
	ErrPolicies = errors.New("offset: need one policy per level")

	// ErrUnknownLevel is returned when a plan column is not among
	// the columns of the values being placed.
	ErrUnknownLevel = errors.New("offset: plan column not in values")
)

// A Plan deterministically assigns a position to every category.
//
// Plans are immutable; methods that change a plan return a new one.
type Plan struct {
	by       []string
	policies []Policy
}

// New returns a plan keyed on by with one policy per column.
func New(by []string, policies []Policy) (*Plan, error) {
	if len(by) != len(policies) {
		return nil, fmt.Errorf("%w: %d columns, %d policies", ErrPolicies, len(by), len(policies))
	}
	for i, c := range by {
		if slices.Contains(by[:i], c) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, c)
		}
	}
	return &Plan{slices.Clone(by), slices.Clone(policies)}, nil
}

// Default returns the plan with no levels, which places everything
// at 0.
func Default() *Plan {
	return &Plan{}
}

// By returns the plan's columns.
func (p *Plan) By() []string { return slices.Clone(p.by) }

// Policies returns the plan's policies.
func (p *Plan) Policies() []Policy { return slices.Clone(p.policies) }

// IsConst reports whether p places every category at 0.
func (p *Plan) IsConst() bool { return len(p.by) == 0 }

func (p *Plan) String() string {
	parts := make([]string, len(p.by))
	for i := range p.by {
		parts[i] = fmt.Sprintf("%s:%v", p.by[i], p.policies[i])
	}
	return "OffsetPlan(" + strings.Join(parts, ", ") + ")"
}

// MoreBy returns p extended with a level for each of cols, each
// spaced by ConstMargin{margin}.
func (p *Plan) MoreBy(margin float64, cols ...string) (*Plan, error) {
	by := p.By()
	policies := p.Policies()
	for _, c := range cols {
		if slices.Contains(by, c) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicate, c)
		}
		by = append(by, c)
		policies = append(policies, ConstMargin{margin})
	}
	return &Plan{by, policies}, nil
}

// With returns p with the policy of level replaced by policy.
func (p *Plan) With(level int, policy Policy) (*Plan, error) {
	if level < 0 || level >= len(p.policies) {
		return nil, fmt.Errorf("%w: level %d of %d", ErrPolicies, level, len(p.policies))
	}
	policies := p.Policies()
	policies[level] = policy
	return &Plan{p.By(), policies}, nil
}

// policyFor returns the policy applied when level changes.
func (p *Plan) policyFor(level int) Policy {
	if level == len(p.policies)-1 {
		return p.policies[0]
	}
	return p.policies[level+1]
}

// Generate returns the offset of each row of values. Each row is a
// key over the columns byAll, which must include all of the plan's
// columns.
//
// If blank is true, positions are reserved for every combination of
// the values observed at each level, even combinations that never
// occur. Otherwise only observed combinations are placed.
func (p *Plan) Generate(values []source.Key, byAll []string, blank bool) ([]float64, error) {
	m, err := p.Mapping(values, byAll, blank)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, row := range values {
		out[i], _ = m.Offset(row.Project(m.idx))
	}
	return out, nil
}

// A Mapping records the position a Plan assigned to each category.
type Mapping struct {
	by   []string
	idx  []int
	keys []source.Key
	offs map[string]float64
}

// By returns the columns the mapping's keys are over.
func (m *Mapping) By() []string { return m.by }

// Keys returns the placed keys in placement order. In blank mode this
// includes unobserved combinations.
func (m *Mapping) Keys() []source.Key { return m.keys }

// Offset returns the position of key k, which is over By().
func (m *Mapping) Offset(k source.Key) (float64, bool) {
	off, ok := m.offs[k.Ident()]
	return off, ok
}

// Mapping places the categories of values as Generate does and
// returns the position of each distinct key.
func (p *Plan) Mapping(values []source.Key, byAll []string, blank bool) (*Mapping, error) {
	idx, err := source.Indexes(p.by, byAll)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownLevel, err)
	}
	keys := make([]source.Key, len(values))
	for i, row := range values {
		if len(row) != len(byAll) {
			return nil, &source.LengthError{What: fmt.Sprintf("row %d", i), Got: len(row), Want: len(byAll)}
		}
		keys[i] = row.Project(idx)
	}

	m := &Mapping{by: p.By(), idx: idx, offs: make(map[string]float64)}
	if len(p.by) == 0 {
		if len(keys) > 0 {
			m.add(source.Key{}, 0)
		}
		return m, nil
	}
	if blank {
		p.walkMesh(m, keys)
	} else {
		p.walkObserved(m, keys)
	}
	return m, nil
}

func (m *Mapping) add(k source.Key, off float64) {
	m.keys = append(m.keys, k)
	m.offs[k.Ident()] = off
}

// walkMesh places every combination of each level's distinct values,
// ranked by first appearance, in level-major order. The interval of
// a change at level i is the number of leaf combinations under one
// level-i value.
func (p *Plan) walkMesh(m *Mapping, keys []source.Key) {
	n := len(p.by)
	levels := make([][]any, n)
	for l := range levels {
		seen := make(map[string]bool)
		for _, k := range keys {
			id := source.Key{k[l]}.Ident()
			if !seen[id] {
				seen[id] = true
				levels[l] = append(levels[l], k[l])
			}
		}
		if len(levels[l]) == 0 {
			return
		}
	}
	inner := make([]int, n)
	inner[n-1] = 1
	for l := n - 2; l >= 0; l-- {
		inner[l] = inner[l+1] * len(levels[l+1])
	}
	total := inner[0] * len(levels[0])

	counter := make([]int, n)
	starts := make([]float64, n)
	var cur float64
	for step := 0; step < total; step++ {
		if step > 0 {
			// Advance the odometer. i ends at the shallowest
			// level that changed.
			i := n - 1
			for ; i > 0; i-- {
				counter[i]++
				if counter[i] < len(levels[i]) {
					break
				}
				counter[i] = 0
			}
			if i == 0 {
				counter[0]++
			}
			cur = starts[i] + p.policyFor(i).Increment(inner[i])
			for k := i; k < n; k++ {
				starts[k] = cur
			}
		}
		key := make(source.Key, n)
		for l, c := range counter {
			key[l] = levels[l][c]
		}
		m.add(key, cur)
	}
}

// walkObserved places only the distinct keys that occur, in
// first-appearance order. The interval of a change at level i is the
// number of keys placed since level i last changed.
func (p *Plan) walkObserved(m *Mapping, keys []source.Key) {
	n := len(p.by)
	starts := make([]float64, n)
	last := make([]int, n)
	var prev []string
	var cur float64
	j := 0
	for _, k := range keys {
		if _, ok := m.Offset(k); ok {
			continue
		}
		ids := make([]string, n)
		for l := range ids {
			ids[l] = source.Key{k[l]}.Ident()
		}
		if j > 0 {
			i := 0
			for i < n-1 && ids[i] == prev[i] {
				i++
			}
			cur = starts[i] + p.policyFor(i).Increment(j-last[i])
			for l := i; l < n; l++ {
				starts[l] = cur
				last[l] = j
			}
		}
		m.add(k, cur)
		prev = ids
		j++
	}
}
