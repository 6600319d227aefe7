// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const penguins = `species,sex,mass
adelie,m,1
adelie,f,2
gentoo,m,3
adelie,m,5
`

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCols(t *testing.T) {
	for _, test := range []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"species", []string{"species"}},
		{"species 'sampling site'", []string{"species", "sampling site"}},
		{`a\ b "c"`, []string{"a b", "c"}},
	} {
		got, err := parseCols(test.in)
		require.NoError(t, err)
		if len(test.want) == 0 {
			assert.Empty(t, got)
		} else {
			assert.Equal(t, test.want, got)
		}
	}
	_, err := parseCols(`"unterminated`)
	assert.Error(t, err)
}

func TestBars(t *testing.T) {
	out, err := runCmd(t, penguins, "--offsets", "species", "--dodge", "sex", "--bars", "--value", "mass", "--color", "sex")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"category", "x", "height", "width", "color", "hatch"}, strings.Fields(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "adelie, m"), lines[1])
	assert.Contains(t, lines[1], "#1f77b4")
	assert.Equal(t, "3", strings.Fields(lines[1])[3], "mean of 1 and 5")
	assert.True(t, strings.HasPrefix(lines[3], "gentoo, m"), lines[3])
}

func TestMarkers(t *testing.T) {
	out, err := runCmd(t, penguins, "--offsets", "species", "--value", "mass", "--jitter", "swarm")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"species", "x", "y", "color", "symbol", "size"}, strings.Fields(lines[0]))
	assert.Equal(t, "gentoo", strings.Fields(lines[3])[0])
	assert.Equal(t, "1", strings.Fields(lines[3])[1])
}

func TestOutputAndTheme(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(in, []byte(penguins), 0o666))
	th := filepath.Join(dir, "theme.toml")
	require.NoError(t, os.WriteFile(th, []byte(`colors = ["black"]`+"\n"), 0o666))
	outPath := filepath.Join(dir, "out.txt")

	_, err := runCmd(t, "", "--offsets", "species", "--bars", "--value", "mass", "--theme", th, "-o", outPath, in, in)
	require.NoError(t, err)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "#000000")
}

func TestErrors(t *testing.T) {
	_, err := runCmd(t, penguins, "--offsets", "island", "--value", "mass")
	assert.Error(t, err)
	_, err = runCmd(t, penguins, "--offsets", "species", "--value", "mass", "--jitter", "wobble")
	assert.Error(t, err)
	_, err = runCmd(t, penguins, "--offsets", "species", "--value", "mass", "--bars", "--agg", "quantile(2)")
	assert.Error(t, err)
	_, err = runCmd(t, penguins, "--offsets", "species")
	assert.ErrorContains(t, err, `required flag(s) "value" not set`)
	_, err = runCmd(t, penguins, "--offsets", "species", "--value", "mass", "-", "-")
	assert.ErrorContains(t, err, "no header row")
	_, err = runCmd(t, penguins, "--offsets", "'species", "--value", "mass")
	assert.Error(t, err)
}

const benchResults = `goos: linux
BenchmarkEncode-4	100	20 ns/op
BenchmarkEncode-4	100	40 ns/op
BenchmarkDecode-4	100	30 ns/op
BenchmarkEncode-8	100	10 ns/op
`

func TestBenchFormat(t *testing.T) {
	out, err := runCmd(t, benchResults, "--format", "bench", "--offsets", "name", "--dodge", "gomaxprocs", "--bars", "--value", "ns/op")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "Encode, 4"), lines[1])
	assert.Equal(t, "30", strings.Fields(lines[1])[3], "mean of 20 and 40")
	assert.True(t, strings.HasPrefix(lines[2], "Encode, 8"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "Decode, 4"), lines[3])

	_, err = runCmd(t, "PASS\n", "--format", "bench", "--offsets", "name", "--value", "ns/op")
	assert.ErrorContains(t, err, "no benchmark results")
	_, err = runCmd(t, penguins, "--format", "xml", "--offsets", "species", "--value", "mass")
	assert.ErrorContains(t, err, "unknown input format")
}

func TestRequiredFlags(t *testing.T) {
	f := newRootCmd().Flags().Lookup("value")
	require.NotNil(t, f)
	assert.Equal(t, []string{"true"}, f.Annotations[cobra.BashCompOneRequiredFlag])
}
