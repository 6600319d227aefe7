// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"
)

// A Key is an ordered tuple of cell values, one per grouping column,
// that identifies one category.
//
// Two keys are equal if they have the same length and their
// elements have equal types and values. Keys are not comparable with
// ==; use Ident to index maps by key.
type Key []any

// Ident returns a string that is equal for two keys if and only if
// the keys are equal.
func (k Key) Ident() string {
	var b strings.Builder
	for i, v := range k {
		if i > 0 {
			b.WriteByte(0x1f)
		}
		fmt.Fprintf(&b, "%T=%v", v, v)
	}
	return b.String()
}

// Project returns the key made of k's elements at idx.
func (k Key) Project(idx []int) Key {
	p := make(Key, len(idx))
	for i, j := range idx {
		p[i] = k[j]
	}
	return p
}

// Label returns a human-readable label for k, suitable for legends.
func (k Key) Label() string {
	parts := make([]string, len(k))
	for i, v := range k {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func (k Key) String() string {
	return "(" + k.Label() + ")"
}

// Indexes returns the position of each of sub in all. It fails with a
// *ColumnError if some element of sub is not in all.
func Indexes(sub, all []string) ([]int, error) {
	pos := make(map[string]int, len(all))
	for i, c := range all {
		pos[c] = i
	}
	idx := make([]int, len(sub))
	var bad []string
	for i, c := range sub {
		j, ok := pos[c]
		if !ok {
			bad = append(bad, c)
			continue
		}
		idx[i] = j
	}
	if bad != nil {
		return nil, &ColumnError{Names: bad, Valid: all}
	}
	return idx, nil
}

// Compare orders two cell values. Numbers compare by value regardless
// of their Go type, and sort before booleans, which sort before
// strings, times, and everything else (compared by formatted value).
// NaN sorts before every other number.
func Compare(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return cmpInt(ra, rb)
	}
	switch ra {
	case rankNumber:
		x, _ := toFloat(a)
		y, _ := toFloat(b)
		switch {
		case math.IsNaN(x) && math.IsNaN(y):
			return 0
		case math.IsNaN(x):
			return -1
		case math.IsNaN(y):
			return 1
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case rankBool:
		x, y := a.(bool), b.(bool)
		if x == y {
			return 0
		} else if !x {
			return -1
		}
		return 1
	case rankString:
		return strings.Compare(reflect.ValueOf(a).String(), reflect.ValueOf(b).String())
	case rankTime:
		return a.(time.Time).Compare(b.(time.Time))
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

const (
	rankNil = iota
	rankNumber
	rankBool
	rankString
	rankTime
	rankOther
)

func rank(v any) int {
	if v == nil {
		return rankNil
	}
	if _, ok := toFloat(v); ok {
		return rankNumber
	}
	switch v.(type) {
	case bool:
		return rankBool
	case time.Time:
		return rankTime
	}
	if reflect.ValueOf(v).Kind() == reflect.String {
		return rankString
	}
	return rankOther
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// toFloat converts a numeric cell to float64.
func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}
