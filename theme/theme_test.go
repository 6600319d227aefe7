// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aclements/go-catplot/attr"
	"github.com/aclements/go-catplot/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFresh(t *testing.T) {
	a := Default()
	a.Colors[0] = "black"
	a.DodgeWidth = 0.1
	b := Default()
	assert.Equal(t, "#1f77b4", b.Colors[0])
	assert.Equal(t, 0.8, b.DodgeWidth)
	require.NoError(t, b.Validate())
}

func TestDecode(t *testing.T) {
	th, err := Decode(strings.NewReader(`
palette = "Set1"
hatches = ["diagonal", "x"]
dodge_width = 0.6
size_range = [2, 10]
`))
	require.NoError(t, err)
	assert.Equal(t, 0.6, th.DodgeWidth)
	assert.Equal(t, [2]float64{2, 10}, th.SizeRange)
	assert.Equal(t, 0.3, th.JitterExtent, "unset keys keep defaults")

	p, err := th.HatchPlan("a")
	require.NoError(t, err)
	assert.Equal(t, []attr.Hatch{"/", "x"}, p.Values())

	set1, err := attr.Palette("Set1")
	require.NoError(t, err)
	cp, err := th.ColorPlan("a")
	require.NoError(t, err)
	assert.Equal(t, set1, cp.Values())
}

func TestDecodeErrors(t *testing.T) {
	for _, test := range []struct {
		name, in, want string
	}{
		{"syntax", `palette = `, ""},
		{"unknown key", `colour = "red"`, "colour"},
		{"bad hatch", `hatches = ["zigzag"]`, "hatches"},
		{"empty symbols", `symbols = []`, "symbols"},
		{"bad range", `width_range = [4, 1]`, "width_range"},
		{"dodge width", `dodge_width = 1.5`, "dodge_width"},
		{"colormap", `colormap = "jet"`, "jet"},
		{"palette", `palette = "Nope"`, "Nope"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(test.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), test.want)
		})
	}

	th := Default()
	th.Colors = nil
	th.Margin = -1
	err := th.Validate()
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "colors")
	assert.Contains(t, err.Error(), "margin")
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	require.NoError(t, os.WriteFile(path, []byte("seed = 42\ncolors = [\"red\", \"#00f\"]\n"), 0o666))
	th, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), th.Seed)
	cp, err := th.ColorPlan()
	require.NoError(t, err)
	assert.Equal(t, "#0000ff", cp.Values()[1].Hex())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestPlans(t *testing.T) {
	th := Default()

	p, err := th.OffsetPlan("a", "b")
	require.NoError(t, err)
	assert.Equal(t, "OffsetPlan(a:NoMargin, b:ConstMargin(0.3))", p.String())
	p, err = th.OffsetPlan()
	require.NoError(t, err)
	assert.True(t, p.IsConst())

	tab, err := new(source.Builder).Add("x", []float64{0, 10}).Done()
	require.NoError(t, err)
	sp, err := th.SizePlan("x")
	require.NoError(t, err)
	sizes, err := sp.Map(tab)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 15}, sizes)

	wp, err := th.WidthPlan("x")
	require.NoError(t, err)
	widths, err := wp.Map(tab)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, widths)

	cp, err := th.ColormapPlan("x")
	require.NoError(t, err)
	colors, err := cp.Map(tab)
	require.NoError(t, err)
	assert.Equal(t, attr.Viridis.At(0), colors[0])

	u, err := th.Uniform("x")
	require.NoError(t, err)
	assert.Equal(t, 0.3, u.Extent())
	assert.Equal(t, 0.8, th.Swarm("x").Extent)

	for _, f := range []func(...string) error{
		func(by ...string) error { _, err := th.SymbolPlan(by...); return err },
		func(by ...string) error { _, err := th.StylePlan(by...); return err },
	} {
		assert.NoError(t, f("a"))
	}
}
