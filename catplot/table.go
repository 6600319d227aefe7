// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/aclements/go-catplot/bench"
	"github.com/aclements/go-catplot/layout"
	"github.com/aclements/go-gg/table"
)

// readInputs reads the inputs in the given format into one table,
// coercing numeric columns. Path "-" is stdin.
func readInputs(stdin io.Reader, format string, paths []string) (*table.Table, error) {
	switch format {
	case "csv":
		return readCSVs(stdin, paths)
	case "bench":
		return readBenchmarks(stdin, paths)
	}
	return nil, fmt.Errorf("unknown input format %q", format)
}

// readCSVs reads CSV files with identical header rows.
func readCSVs(stdin io.Reader, paths []string) (*table.Table, error) {
	var header []string
	var rows [][]string
	for _, path := range paths {
		recs, err := readCSV(stdin, path)
		if err != nil {
			return nil, err
		}
		if len(recs) == 0 {
			return nil, fmt.Errorf("%s: no header row", path)
		}
		if header == nil {
			header = recs[0]
		} else if !slices.Equal(header, recs[0]) {
			return nil, fmt.Errorf("%s: header %q does not match %q", path, recs[0], header)
		}
		rows = append(rows, recs[1:]...)
	}
	return table.TableFromStrings(header, rows, true), nil
}

func readCSV(stdin io.Reader, path string) ([][]string, error) {
	var recs [][]string
	err := withInput(stdin, path, func(r io.Reader) (err error) {
		recs, err = csv.NewReader(r).ReadAll()
		return err
	})
	return recs, err
}

// readBenchmarks reads Go benchmark results files. The columns are
// the benchmark name, its configuration keys and its units.
func readBenchmarks(stdin io.Reader, paths []string) (*table.Table, error) {
	var rs []bench.Result
	for _, path := range paths {
		err := withInput(stdin, path, func(r io.Reader) error {
			more, err := bench.Parse(r)
			rs = append(rs, more...)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	header, rows := bench.Strings(rs)
	return table.TableFromStrings(header, rows, true), nil
}

func withInput(stdin io.Reader, path string, f func(io.Reader) error) error {
	r := stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		r = file
	}
	if err := f(r); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// markersTable returns the keep columns of t followed by the
// coordinates and attributes of each marker.
func markersTable(t *table.Table, keep []string, m *layout.Markers) *table.Table {
	b := new(table.Builder)
	var seen []string
	for _, col := range keep {
		if slices.Contains(seen, col) {
			continue
		}
		seen = append(seen, col)
		b.Add(col, t.MustColumn(col))
	}
	colors := make([]string, len(m.Color))
	for i, c := range m.Color {
		colors[i] = c.Hex()
	}
	symbols := make([]string, len(m.Symbol))
	for i, s := range m.Symbol {
		symbols[i] = string(s)
	}
	return b.
		Add("x", m.X).
		Add("y", m.Y).
		Add("color", colors).
		Add("symbol", symbols).
		Add("size", m.Size).
		Done()
}

// barsTable returns one row per bar.
func barsTable(bars *layout.Bars) *table.Table {
	n := len(bars.Bars)
	var (
		labels  = make([]string, n)
		xs      = make([]float64, n)
		heights = make([]float64, n)
		widths  = make([]float64, n)
		colors  = make([]string, n)
		hatches = make([]string, n)
	)
	for i, b := range bars.Bars {
		labels[i] = b.Key.Label()
		xs[i] = b.X
		heights[i] = b.Height
		widths[i] = b.Width
		colors[i] = b.Color.Hex()
		hatches[i] = string(b.Hatch)
	}
	return new(table.Builder).
		Add("category", labels).
		Add("x", xs).
		Add("height", heights).
		Add("width", widths).
		Add("color", colors).
		Add("hatch", hatches).
		Done()
}
