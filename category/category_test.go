// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package category

import (
	"testing"

	"github.com/aclements/go-catplot/offset"
	"github.com/aclements/go-catplot/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func penguins(t *testing.T) source.Table {
	t.Helper()
	tab, err := new(source.Builder).
		Add("species", []string{"adelie", "gentoo", "adelie", "chinstrap", "gentoo", "adelie"}).
		Add("sex", []string{"m", "f", "f", "m", "m", "m"}).
		Add("island", []string{"x", "y", "x", "x", "y", "z"}).
		Add("mass", []float64{1, 2, 3, 4, 5, 6}).
		Done()
	require.NoError(t, err)
	return tab
}

func TestCategoryMap(t *testing.T) {
	it, err := NewIterator(penguins(t), []string{"species"}, nil)
	require.NoError(t, err)

	m, err := it.CategoryMap([]string{"species"})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())
	for i, want := range []string{"adelie", "gentoo", "chinstrap"} {
		got, ok := m.Index(source.Key{want})
		require.True(t, ok)
		assert.Equal(t, i, got)
	}
	_, ok := m.Index(source.Key{"emperor"})
	assert.False(t, ok)

	m2, err := it.CategoryMap([]string{"species"})
	require.NoError(t, err)
	assert.Same(t, m, m2, "category maps should be cached")

	_, err = it.CategoryMap([]string{"beak"})
	assert.ErrorIs(t, err, source.ErrUnknownColumn)
}

func TestIterArrays(t *testing.T) {
	it, err := NewIterator(penguins(t), []string{"species"}, nil)
	require.NoError(t, err)

	entries, err := it.IterArrays([]string{"species", "island"}, nil)
	require.NoError(t, err)
	var keys []string
	var offs []float64
	for _, e := range entries {
		keys = append(keys, e.Key.String())
		offs = append(offs, e.Offset)
	}
	assert.Equal(t, []string{"(adelie, x)", "(gentoo, y)", "(chinstrap, x)", "(adelie, z)"}, keys)
	assert.Equal(t, []float64{0, 1, 2, 0}, offs)
	assert.Equal(t, 2, entries[0].Table.Len())
}

func TestIterArraysDodge(t *testing.T) {
	it, err := NewIterator(penguins(t), []string{"species"}, []string{"sex"})
	require.NoError(t, err)

	entries, err := it.IterArrays([]string{"species", "sex"}, []string{"sex"})
	require.NoError(t, err)
	got := map[string]float64{}
	for _, e := range entries {
		got[e.Key.String()] = e.Offset
	}
	// Two dodge categories spread over 0.8: -0.2 and +0.2.
	want := map[string]float64{
		"(adelie, m)":    -0.2,
		"(gentoo, f)":    1.2,
		"(adelie, f)":    0.2,
		"(chinstrap, m)": 1.8,
		"(gentoo, m)":    0.8,
	}
	require.Len(t, got, len(want))
	for k, w := range want {
		assert.InDelta(t, w, got[k], 1e-12, k)
	}

	z, err := it.ZoomFactor([]string{"sex"})
	require.NoError(t, err)
	assert.Equal(t, 0.5, z)
	z, err = it.ZoomFactor(nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, z)
}

func TestDodgeOffset(t *testing.T) {
	for _, test := range []struct {
		m    int
		want []float64
	}{
		{1, []float64{0}},
		{2, []float64{-0.2, 0.2}},
		{3, []float64{-0.8 / 3, 0, 0.8 / 3}},
		{4, []float64{-0.3, -0.1, 0.1, 0.3}},
	} {
		for k, w := range test.want {
			assert.InDelta(t, w, dodgeOffset(k, test.m, DefaultDodgeWidth), 1e-12, "k=%d m=%d", k, test.m)
		}
	}
}

func TestDodgeWidth(t *testing.T) {
	it, err := NewIterator(penguins(t), []string{"species"}, []string{"sex"}, WithDodgeWidth(1))
	require.NoError(t, err)
	entries, err := it.IterArrays([]string{"species", "sex"}, []string{"sex"})
	require.NoError(t, err)
	assert.InDelta(t, -0.25, entries[0].Offset, 1e-12)
}

func TestErrors(t *testing.T) {
	tab := penguins(t)

	_, err := NewIterator(tab, []string{"species", "sex"}, []string{"sex"})
	assert.ErrorIs(t, err, ErrOverlap)
	assert.Contains(t, err.Error(), "sex")

	_, err = NewIterator(tab, []string{"beak"}, nil)
	assert.ErrorIs(t, err, source.ErrUnknownColumn)

	it, err := NewIterator(tab, []string{"species"}, nil)
	require.NoError(t, err)
	_, err = it.IterArrays([]string{"island"}, nil)
	assert.ErrorIs(t, err, ErrNotSubset)
	_, err = it.IterArrays([]string{"species"}, []string{"sex"})
	assert.ErrorIs(t, err, ErrNotSubset)
	_, err = it.IterArrays([]string{"species"}, []string{"species"})
	assert.ErrorIs(t, err, ErrOverlap)
}

func TestPlacement(t *testing.T) {
	tab := penguins(t)
	plan, err := offset.New([]string{"species"}, []offset.Policy{offset.ConstMargin{M: 0.5}})
	require.NoError(t, err)
	keys, err := source.Keys(tab, "species")
	require.NoError(t, err)
	m, err := plan.Mapping(keys, []string{"species"}, true)
	require.NoError(t, err)

	it, err := NewIterator(tab, []string{"species"}, []string{"sex"}, WithPlacement(m))
	require.NoError(t, err)
	entries, err := it.IterArrays([]string{"species", "sex"}, []string{"sex"})
	require.NoError(t, err)
	got := map[string]float64{}
	for _, e := range entries {
		got[e.Key.String()] = e.Offset
	}
	assert.InDelta(t, 1.5+0.2, got["(gentoo, f)"], 1e-12)
	assert.InDelta(t, 3-0.2, got["(chinstrap, m)"], 1e-12)

	_, err = NewIterator(tab, []string{"sex"}, nil, WithPlacement(m))
	assert.ErrorIs(t, err, ErrPlacement)
}
