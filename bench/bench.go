// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bench reads Go benchmark results files as tables of
// categorical configuration and numeric results.
//
// The format is specified at:
// https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
//
// Each benchmark line becomes one row. The benchmark name, its
// configuration keys and its gomaxprocs are category columns, and
// each unit is a numeric column.
package bench

import (
	"bufio"
	"errors"
	"io"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrNoResults is returned by Parse when the input contains no
// benchmark lines.
var ErrNoResults = errors.New("no benchmark results")

// Result is a single benchmark line.
type Result struct {
	// Name is the benchmark name without the "Benchmark" prefix,
	// the GOMAXPROCS suffix, or key:value name components.
	Name string

	// Iters is the iteration count.
	Iters int

	// Config maps configuration keys to raw values. Keys from the
	// benchmark name override keys from configuration lines.
	Config map[string]string

	// Values maps units to measurements.
	Values map[string]float64
}

var configRe = regexp.MustCompile(`^(\p{Ll}[^\p{Lu}\s\x85\xa0\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}]*):(?:[ \t]+(.*))?$`)

// Parse reads benchmark results from r. Lines that are neither
// configuration nor benchmark lines are ignored.
func Parse(r io.Reader) ([]Result, error) {
	var rs []Result
	config := make(map[string]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := configRe.FindStringSubmatch(line); m != nil {
			config[m[1]] = m[2]
			continue
		}
		if res, ok := parseLine(line, config); ok {
			rs = append(rs, res)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rs) == 0 {
		return nil, ErrNoResults
	}
	return rs, nil
}

func parseLine(line string, config map[string]string) (Result, bool) {
	f := strings.Fields(line)
	if len(f) < 4 || !strings.HasPrefix(f[0], "Benchmark") {
		return Result{}, false
	}
	name := f[0][len("Benchmark"):]
	if next, _ := utf8.DecodeRuneInString(name); name != "" && !unicode.IsUpper(next) {
		return Result{}, false
	}
	iters, err := strconv.Atoi(f[1])
	if err != nil || iters <= 0 {
		return Result{}, false
	}

	r := Result{
		Iters:  iters,
		Config: maps.Clone(config),
		Values: make(map[string]float64),
	}
	if _, ok := r.Config["gomaxprocs"]; !ok {
		r.Config["gomaxprocs"] = "1"
	}
	// A "-N" suffix is GOMAXPROCS unless it is the whole value of
	// a "key:" name component.
	if i := strings.LastIndex(name, "-"); i >= 0 && !strings.HasSuffix(name[:i], ":") {
		if _, err := strconv.Atoi(name[i+1:]); err == nil {
			r.Config["gomaxprocs"] = name[i+1:]
			name = name[:i]
		}
	}
	parts := strings.Split(name, "/")
	r.Name = parts[0]
	for _, part := range parts[1:] {
		if k, v, ok := strings.Cut(part, ":"); ok {
			r.Config[k] = v
		} else {
			r.Name += "/" + part
		}
	}

	for i := 2; i+2 <= len(f); i += 2 {
		val, err := strconv.ParseFloat(f[i], 64)
		if err != nil {
			continue
		}
		r.Values[f[i+1]] = val
	}
	return r, true
}

// Strings returns rs as a header and string rows, ready for
// coercion into a table. The columns are "name", the sorted
// configuration keys, and then the sorted units. Dashes in keys and
// units become spaces. A result missing a unit gets "NaN" and one
// missing a configuration key gets "".
func Strings(rs []Result) (header []string, rows [][]string) {
	configKeys, unitKeys := Keys(rs)
	header = append(header, "name")
	for _, k := range configKeys {
		header = append(header, nice(k))
	}
	for _, u := range unitKeys {
		header = append(header, nice(u))
	}

	for _, r := range rs {
		row := make([]string, 0, len(header))
		row = append(row, r.Name)
		for _, k := range configKeys {
			row = append(row, r.Config[k])
		}
		for _, u := range unitKeys {
			v, ok := r.Values[u]
			if !ok {
				row = append(row, "NaN")
				continue
			}
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		rows = append(rows, row)
	}
	return header, rows
}

// Keys returns the sorted configuration keys and units used by any
// result in rs.
func Keys(rs []Result) (config, units []string) {
	seenC, seenU := make(map[string]bool), make(map[string]bool)
	for _, r := range rs {
		for k := range r.Config {
			if !seenC[k] {
				seenC[k] = true
				config = append(config, k)
			}
		}
		for u := range r.Values {
			if !seenU[u] {
				seenU[u] = true
				units = append(units, u)
			}
		}
	}
	slices.Sort(config)
	slices.Sort(units)
	return config, units
}

func nice(key string) string {
	return strings.ReplaceAll(key, "-", " ")
}
