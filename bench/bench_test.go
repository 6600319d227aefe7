// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bench

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, test := range []struct {
		name  string
		input string
		want  []Result
	}{
		{"basic", "BenchmarkX\t1\t2 ns/op 3 MB/s",
			[]Result{{"X", 1, map[string]string{"gomaxprocs": "1"}, map[string]float64{"ns/op": 2, "MB/s": 3}}}},
		{"short name", "Benchmark\t1\t2 ns/op",
			[]Result{{"", 1, map[string]string{"gomaxprocs": "1"}, map[string]float64{"ns/op": 2}}}},
		{"procs", "BenchmarkX-4\t1\t2 ns/op",
			[]Result{{"X", 1, map[string]string{"gomaxprocs": "4"}, map[string]float64{"ns/op": 2}}}},
		{"name config", "BenchmarkX/a:20/sub/b:abc-8\t1\t2 ns/op",
			[]Result{{"X/sub", 1, map[string]string{"gomaxprocs": "8", "a": "20", "b": "abc"}, map[string]float64{"ns/op": 2}}}},
		{"negative value", "BenchmarkX/delta:-3\t1\t2 ns/op",
			[]Result{{"X", 1, map[string]string{"gomaxprocs": "1", "delta": "-3"}, map[string]float64{"ns/op": 2}}}},
		{"negative value and procs", "BenchmarkX/delta:-3-8\t1\t2 ns/op",
			[]Result{{"X", 1, map[string]string{"gomaxprocs": "8", "delta": "-3"}, map[string]float64{"ns/op": 2}}}},
		{"block config", "commit: 123456\ndate: Jan 1\n#not-config: x\nNot-config: x\nBenchmarkX/commit:abcdef\t1\t2 ns/op",
			[]Result{{"X", 1, map[string]string{"gomaxprocs": "1", "commit": "abcdef", "date": "Jan 1"}, map[string]float64{"ns/op": 2}}}},
		{"block override", "commit: 1\ncommit: 2\nBenchmarkX\t1\t2 ns/op",
			[]Result{{"X", 1, map[string]string{"gomaxprocs": "1", "commit": "2"}, map[string]float64{"ns/op": 2}}}},
	} {
		t.Run(test.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(test.input))
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}

func TestParseSkips(t *testing.T) {
	for _, input := range []string{
		"Benchmarkx\t1\t2 ns/op\nbenchmarkX\t1\t2 ns/op",
		"BenchmarkX\nBenchmarkX\t1\nBenchmarkX\t1\t2",
		"BenchmarkX\t0\t2 ns/op",
		"testing: warning: no tests to run\nPASS",
	} {
		_, err := Parse(strings.NewReader(input))
		assert.ErrorIs(t, err, ErrNoResults, "input %q", input)
	}
}

func TestStrings(t *testing.T) {
	rs, err := Parse(strings.NewReader(`goos: linux
BenchmarkEncode/size:small-4	100	20 ns/op
BenchmarkEncode/size:large-4	10	200 ns/op	16 allocs-op
BenchmarkDecode-2	100	30 ns/op
`))
	require.NoError(t, err)

	config, units := Keys(rs)
	assert.Equal(t, []string{"gomaxprocs", "goos", "size"}, config)
	assert.Equal(t, []string{"allocs-op", "ns/op"}, units)

	header, rows := Strings(rs)
	assert.Equal(t, []string{"name", "gomaxprocs", "goos", "size", "allocs op", "ns/op"}, header)
	assert.Equal(t, [][]string{
		{"Encode", "4", "linux", "small", "NaN", "20"},
		{"Encode", "4", "linux", "large", "16", "200"},
		{"Decode", "2", "linux", "", "NaN", "30"},
	}, rows)
}
