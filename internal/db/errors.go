// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains shared database errors and helpers.

package db

import (
	"errors"
	"strings"
)

// ErrNotConnected is returned for any operation on a session that is closed
// or was never opened. The session does not reconnect on its own; reopening
// is an explicit caller action.
var ErrNotConnected = errors.New("database not connected")

// ErrArgumentCount is returned when the number of bound arguments does not
// match the number of positional placeholders in a query.
var ErrArgumentCount = errors.New("argument count mismatch")

// ErrDuplicate is returned when attempting to insert a record that already exists.
var ErrDuplicate = errors.New("duplicate record")

// ErrValidation is returned when a schema CHECK constraint rejects a value,
// such as an empty username or code.
var ErrValidation = errors.New("validation failed")

// ErrNotFound is returned when an operation targets a row that no longer
// exists, including inserts whose owning row is gone.
var ErrNotFound = errors.New("record not found")

// MapDBError inspects low-level driver errors and maps common constraint
// violations to package-level sentinel errors. This is a conservative,
// string-based mapping to avoid importing SQL driver packages into this
// package file.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	switch {
	case strings.Contains(le, "unique"):
		return ErrDuplicate
	case strings.Contains(le, "check constraint"), strings.Contains(le, "check failed"):
		return ErrValidation
	case strings.Contains(le, "foreign key"):
		// The referenced owner row is gone (or never existed).
		return ErrNotFound
	}
	return err
}
