// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command catplot lays out a categorical plot of CSV data.
//
// catplot reads CSV inputs with a header row (stdin by default),
// places the categories of the --offsets columns along an axis,
// dodges them by the --dodge columns, and prints the resulting layer
// as a table: one row per marker, or with --bars one row per
// aggregated bar, giving its position and visual attributes.
//
// With --format bench, inputs are Go benchmark results files instead,
// with columns "name", one per configuration key (such as
// "gomaxprocs"), and one per unit (such as "ns/op").
//
// Column lists are shell-quoted, so
//
//	catplot --offsets "species 'sampling site'" --value mass data.csv
//
// groups by the two columns "species" and "sampling site".
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aclements/go-catplot/layout"
	"github.com/aclements/go-catplot/source"
	"github.com/aclements/go-catplot/theme"
	"github.com/aclements/go-gg/table"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	offsets string
	dodge   string
	color   string
	symbol  string
	hatch   string
	value   string
	format  string
	size    string
	jitter  string
	bars    bool
	agg     string
	theme   string
	seed    int64
	out     string
	verbose bool
}

func newRootCmd() *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:          "catplot [flags] [inputs...]",
		Short:        "Lay out a categorical plot of CSV data",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, &o, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.offsets, "offsets", "", "place categories of `columns` along the axis")
	f.StringVar(&o.dodge, "dodge", "", "dodge each category by `columns`")
	f.StringVar(&o.color, "color", "", "color by `columns`")
	f.StringVar(&o.symbol, "symbol", "", "vary marker symbol by `columns`")
	f.StringVar(&o.hatch, "hatch", "", "vary bar hatch by `columns`")
	f.StringVar(&o.value, "value", "", "numeric value `column`")
	f.StringVar(&o.size, "size", "", "scale markers by numeric `column`")
	f.StringVar(&o.jitter, "jitter", "none", "marker jitter: none, uniform or swarm")
	f.BoolVar(&o.bars, "bars", false, "aggregate into bars instead of markers")
	f.StringVar(&o.agg, "agg", "mean", "bar aggregation, such as mean, median or quantile(0.9)")
	f.StringVar(&o.format, "format", "csv", "input format: csv or bench")
	f.StringVar(&o.theme, "theme", "", "read theme from TOML `file`")
	f.Int64Var(&o.seed, "seed", 0, "jitter seed (default from theme)")
	f.StringVarP(&o.out, "output", "o", "", "write output to `file` (default: stdout)")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log layout construction")
	if err := cmd.MarkFlagRequired("value"); err != nil {
		panic(err)
	}
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// parseCols splits a shell-quoted column list.
func parseCols(s string) ([]string, error) {
	cols, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("column list %q: %w", s, err)
	}
	return cols, nil
}

func run(cmd *cobra.Command, o *options, paths []string) error {
	logger, err := newLogger(o.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	th := theme.Default()
	if o.theme != "" {
		if th, err = theme.Load(o.theme); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("seed") {
		th.Seed = o.seed
	}

	var cols struct{ offsets, dodge, color, symbol, hatch []string }
	for _, c := range []struct {
		flag string
		dst  *[]string
	}{
		{o.offsets, &cols.offsets},
		{o.dodge, &cols.dodge},
		{o.color, &cols.color},
		{o.symbol, &cols.symbol},
		{o.hatch, &cols.hatch},
	} {
		if *c.dst, err = parseCols(c.flag); err != nil {
			return err
		}
	}

	// Read inputs.
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	tab, err := readInputs(cmd.InOrStdin(), o.format, paths)
	if err != nil {
		return err
	}
	logger.Debug("read input", zap.Strings("paths", paths), zap.Int("rows", tab.Len()))

	c := layout.New(source.FromGG(tab), layout.WithTheme(th), layout.WithLogger(logger))
	defer c.Close()
	cat, err := c.Categorical(cols.offsets, cols.dodge)
	if err != nil {
		return err
	}

	var res *table.Table
	if o.bars {
		agg, err := source.ParseAgg(o.agg)
		if err != nil {
			return err
		}
		bars, err := cat.Bars(layout.BarSpec{Value: o.value, Agg: agg, Color: cols.color, Hatch: cols.hatch})
		if err != nil {
			return err
		}
		res = barsTable(bars)
	} else {
		kind, err := layout.ParseJitter(o.jitter)
		if err != nil {
			return err
		}
		m, err := cat.Markers(layout.MarkerSpec{
			Y:      o.value,
			Color:  cols.color,
			Symbol: cols.symbol,
			Size:   o.size,
			Jitter: kind,
		})
		if err != nil {
			return err
		}
		keep := append(append(append([]string(nil), cols.offsets...), cols.dodge...), cols.color...)
		res = markersTable(tab, keep, m)
	}

	// Prepare for output.
	var w io.Writer = cmd.OutOrStdout()
	if o.out != "" {
		f, err := os.Create(o.out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	table.Fprint(w, res)
	return nil
}
