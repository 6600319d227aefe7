// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package source

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownColumn is matched by every *ColumnError.
	ErrUnknownColumn = errors.New("source: unknown column")

	// ErrLength is matched by every *LengthError.
	ErrLength = errors.New("source: length mismatch")

	// ErrQuantile is returned for a quantile outside [0, 1].
	ErrQuantile = errors.New("source: quantile out of [0, 1]")

	// ErrNotNumeric is returned when a numeric column is required.
	ErrNotNumeric = errors.New("source: column is not numeric")
)

// A ColumnError reports references to columns that do not exist.
type ColumnError struct {
	Names []string // The unknown names.
	Valid []string // The columns the table does have.
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("source: unknown column(s) %s; valid columns are %s",
		quoteAll(e.Names), quoteAll(e.Valid))
}

func (e *ColumnError) Unwrap() error { return ErrUnknownColumn }

// A LengthError reports a sequence whose length does not match the
// length it must have.
type LengthError struct {
	What      string
	Got, Want int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("source: %s has length %d, want %d", e.What, e.Got, e.Want)
}

func (e *LengthError) Unwrap() error { return ErrLength }

func quoteAll(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = fmt.Sprintf("%q", n)
	}
	return "[" + strings.Join(q, ", ") + "]"
}

// CheckColumns returns a *ColumnError naming every element of cols
// that is not a column of t, or nil if they all are.
func CheckColumns(t Table, cols ...string) error {
	have := make(map[string]bool)
	for _, c := range t.Columns() {
		have[c] = true
	}
	var bad []string
	for _, c := range cols {
		if !have[c] {
			bad = append(bad, c)
		}
	}
	if bad != nil {
		return &ColumnError{Names: bad, Valid: t.Columns()}
	}
	return nil
}
