// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the argument binder: a closed dispatch table from
// semantic value kinds to bind routines. Every query argument goes through
// it before the statement reaches the engine, and the argument list is
// validated against the query's positional placeholders up front.

package db

import "fmt"

// Kind identifies the semantic type of a query argument. The set is closed:
// each kind has exactly one entry in the binder table, and adding a kind
// means adding one entry, not touching call sites.
type Kind int

const (
	KindInt Kind = iota
	KindInt64
	KindText
	KindBool
	KindBytes
)

// Arg pairs a Kind with the value to bind into a positional placeholder.
type Arg struct {
	Kind  Kind
	Value any
}

// Int wraps an int argument.
func Int(v int) Arg { return Arg{Kind: KindInt, Value: v} }

// Int64 wraps an int64 argument.
func Int64(v int64) Arg { return Arg{Kind: KindInt64, Value: v} }

// Text wraps a string argument.
func Text(v string) Arg { return Arg{Kind: KindText, Value: v} }

// Bool wraps a bool argument; it is stored as 0/1.
func Bool(v bool) Arg { return Arg{Kind: KindBool, Value: v} }

// Bytes wraps a raw byte slice argument.
func Bytes(v []byte) Arg { return Arg{Kind: KindBytes, Value: v} }

type bindFunc func(v any) (any, error)

// binders is the dispatch table. Each routine checks the dynamic type once
// and converts to a driver-friendly value; no reflection is involved.
var binders = map[Kind]bindFunc{
	KindInt: func(v any) (any, error) {
		n, ok := v.(int)
		if !ok {
			return nil, fmt.Errorf("expected int, got %T", v)
		}
		return int64(n), nil
	},
	KindInt64: func(v any) (any, error) {
		n, ok := v.(int64)
		if !ok {
			return nil, fmt.Errorf("expected int64, got %T", v)
		}
		return n, nil
	},
	KindText: func(v any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", v)
		}
		return s, nil
	},
	KindBool: func(v any) (any, error) {
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("expected bool, got %T", v)
		}
		if b {
			return int64(1), nil
		}
		return int64(0), nil
	},
	KindBytes: func(v any) (any, error) {
		b, ok := v.([]byte)
		if !ok {
			return nil, fmt.Errorf("expected []byte, got %T", v)
		}
		return b, nil
	},
}

// countPlaceholders counts the positional '?' markers in query. Markers
// inside quoted literals do not count.
func countPlaceholders(query string) int {
	count := 0
	var quote rune
	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '\'' || r == '"':
			quote = r
		case r == '?':
			count++
		}
	}
	return count
}

// bindArgs validates args against the query's placeholder count and runs
// each argument through the binder table. A count mismatch or an unknown
// kind fails here, before anything is sent to the engine.
func bindArgs(query string, args []Arg) ([]any, error) {
	if want, got := countPlaceholders(query), len(args); want != got {
		return nil, fmt.Errorf("%w: query has %d placeholders, got %d arguments", ErrArgumentCount, want, got)
	}
	vals := make([]any, len(args))
	for i, a := range args {
		bind, ok := binders[a.Kind]
		if !ok {
			return nil, fmt.Errorf("bind argument %d: no binder registered for kind %d", i+1, a.Kind)
		}
		v, err := bind(a.Value)
		if err != nil {
			return nil, fmt.Errorf("bind argument %d: %w", i+1, err)
		}
		vals[i] = v
	}
	return vals, nil
}
