// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offset

import (
	"fmt"
	"testing"

	"github.com/aclements/go-catplot/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(rows ...[]any) []source.Key {
	ks := make([]source.Key, len(rows))
	for i, r := range rows {
		ks[i] = source.Key(r)
	}
	return ks
}

func mustPlan(t *testing.T, by []string, policies ...Policy) *Plan {
	t.Helper()
	p, err := New(by, policies)
	require.NoError(t, err)
	return p
}

func assertOffsets(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "offset %d: want %v, got %v", i, want, got)
	}
}

func TestGenerate(t *testing.T) {
	ab := []string{"a", "b"}
	for _, test := range []struct {
		name   string
		plan   *Plan
		values []source.Key
		byAll  []string
		blank  bool
		want   []float64
	}{
		{"rank order", mustPlan(t, []string{"a"}, NoMargin{}),
			keys([]any{1}, []any{3}, []any{2}), []string{"a"}, true,
			[]float64{0, 1, 2}},
		{"const margin", mustPlan(t, []string{"a"}, ConstMargin{0.3}),
			keys([]any{1}, []any{3}, []any{2}), []string{"a"}, true,
			[]float64{0, 1.3, 2.6}},
		{"repeated keys", mustPlan(t, []string{"a"}, NoMargin{}),
			keys([]any{"x"}, []any{"y"}, []any{"x"}), []string{"a"}, true,
			[]float64{0, 1, 0}},
		{"multilevel", mustPlan(t, ab, NoMargin{}, NoMargin{}),
			keys([]any{1, 1}, []any{1, 2}, []any{1, 3}, []any{2, 1}), ab, true,
			[]float64{0, 1, 2, 3}},
		{"outer margin", mustPlan(t, ab, NoMargin{}, ConstMargin{0.3}),
			keys([]any{1, 1}, []any{1, 2}, []any{2, 1}, []any{2, 2}), ab, true,
			[]float64{0, 1, 2.3, 3.3}},
		{"mesh reserves gaps", mustPlan(t, ab, NoMargin{}, NoMargin{}),
			keys([]any{1, 1}, []any{1, 2}, []any{2, 2}), ab, true,
			[]float64{0, 1, 3}},
		{"observed only", mustPlan(t, ab, NoMargin{}, NoMargin{}),
			keys([]any{1, 1}, []any{1, 2}, []any{2, 2}), ab, false,
			[]float64{0, 1, 2}},
		{"observed interval", mustPlan(t, ab, NoMargin{}, ConstMargin{0.5}),
			keys([]any{1, 1}, []any{1, 2}, []any{1, 3}, []any{2, 1}), ab, false,
			[]float64{0, 1, 2, 3.5}},
		{"subset of columns", mustPlan(t, []string{"b"}, NoMargin{}),
			keys([]any{1, "p"}, []any{2, "q"}, []any{3, "p"}), ab, true,
			[]float64{0, 1, 0}},
		{"overlay", mustPlan(t, ab, Overlay{}, NoMargin{}),
			keys([]any{1, 1}, []any{1, 2}, []any{2, 1}), ab, true,
			[]float64{0, 0, 2}},
		{"const", mustPlan(t, []string{"a"}, Const{0.25}),
			keys([]any{1}, []any{2}, []any{3}), []string{"a"}, true,
			[]float64{0, 0.25, 0.5}},
		{"composite", mustPlan(t, []string{"a"}, Composite{NoMargin{}, Const{0.5}}),
			keys([]any{1}, []any{2}), []string{"a"}, true,
			[]float64{0, 1.5}},
		{"no levels", Default(),
			keys([]any{1}, []any{2}), []string{"a"}, true,
			[]float64{0, 0}},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := test.plan.Generate(test.values, test.byAll, test.blank)
			require.NoError(t, err)
			assertOffsets(t, test.want, got)
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	p := mustPlan(t, []string{"a", "b", "c"}, NoMargin{}, ConstMargin{0.2}, ConstMargin{0.7})
	var values []source.Key
	for i := 0; i < 50; i++ {
		values = append(values, source.Key{i % 3, fmt.Sprint(i % 4), i%5 == 0})
	}
	for _, blank := range []bool{true, false} {
		first, err := p.Generate(values, p.By(), blank)
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := p.Generate(values, p.By(), blank)
			require.NoError(t, err)
			assert.Equal(t, first, again)
		}
		// Equal keys always share an offset.
		seen := map[string]float64{}
		for i, k := range values {
			if off, ok := seen[k.Ident()]; ok {
				assert.Equal(t, off, first[i])
			}
			seen[k.Ident()] = first[i]
		}
	}
}

func TestMapping(t *testing.T) {
	p := mustPlan(t, []string{"a", "b"}, NoMargin{}, NoMargin{})
	m, err := p.Mapping(keys([]any{"x", 1}, []any{"y", 2}), []string{"a", "b"}, true)
	require.NoError(t, err)
	var got []string
	for _, k := range m.Keys() {
		off, ok := m.Offset(k)
		require.True(t, ok)
		got = append(got, fmt.Sprintf("%v=%g", k, off))
	}
	assert.Equal(t, []string{"(x, 1)=0", "(x, 2)=1", "(y, 1)=2", "(y, 2)=3"}, got)
}

func TestMoreBy(t *testing.T) {
	p := mustPlan(t, []string{"a"}, NoMargin{})
	q, err := p.MoreBy(0.3, "b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, q.By())
	assert.Equal(t, []string{"a"}, p.By(), "MoreBy must not modify the receiver")

	got, err := q.Generate(keys([]any{1, 1}, []any{1, 2}, []any{2, 1}, []any{2, 2}), q.By(), true)
	require.NoError(t, err)
	assertOffsets(t, []float64{0, 1, 2.3, 3.3}, got)

	_, err = q.MoreBy(0, "c", "a")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestWith(t *testing.T) {
	p := mustPlan(t, []string{"a"}, NoMargin{})
	q, err := p.With(0, ConstMargin{1})
	require.NoError(t, err)
	assert.Equal(t, NoMargin{}, p.Policies()[0])
	assert.Equal(t, ConstMargin{1}, q.Policies()[0])
	_, err = p.With(3, Overlay{})
	assert.ErrorIs(t, err, ErrPolicies)
}

func TestPlanErrors(t *testing.T) {
	_, err := New([]string{"a", "b"}, []Policy{NoMargin{}})
	assert.ErrorIs(t, err, ErrPolicies)
	_, err = New([]string{"a", "a"}, []Policy{NoMargin{}, NoMargin{}})
	assert.ErrorIs(t, err, ErrDuplicate)

	p := mustPlan(t, []string{"z"}, NoMargin{})
	_, err = p.Generate(keys([]any{1}), []string{"a"}, true)
	assert.ErrorIs(t, err, ErrUnknownLevel)
	assert.ErrorIs(t, err, source.ErrUnknownColumn)

	p = mustPlan(t, []string{"a"}, NoMargin{})
	_, err = p.Generate(keys([]any{1, 2}), []string{"a"}, true)
	assert.ErrorIs(t, err, source.ErrLength)
}

func TestPolicyString(t *testing.T) {
	p := mustPlan(t, []string{"a", "b"}, NoMargin{}, Composite{ConstMargin{0.5}, Overlay{}})
	assert.Equal(t, "OffsetPlan(a:NoMargin, b:Composite(ConstMargin(0.5), Overlay))", p.String())
}
