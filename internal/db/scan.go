// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the result extractors: one explicit scan function per
// entity, driven by generic one-row/all-rows helpers. An empty result is a
// valid outcome (nil pointer or empty slice), never an error.

package db

import (
	"github.com/tverren/codevault/internal/model"
)

// rowScanner is the minimal row surface shared by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanFunc reads the current row into a typed value. Adding an entity means
// adding one scan function and pairing it with the query that selects its
// columns; call sites stay untouched.
type scanFunc[T any] func(rowScanner) (T, error)

func scanInt(r rowScanner) (int, error) {
	var n int
	err := r.Scan(&n)
	return n, err
}

// scanUser expects: id, username, password_hash, salt, theme name, logged_in.
func scanUser(r rowScanner) (model.User, error) {
	var u model.User
	var theme string
	var loggedIn int64
	if err := r.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Salt, &theme, &loggedIn); err != nil {
		return model.User{}, err
	}
	u.Theme = model.Theme(theme)
	u.LoggedIn = loggedIn != 0
	return u, nil
}

// scanAccount expects: id, user_id, name, type.
func scanAccount(r rowScanner) (model.Account, error) {
	var a model.Account
	if err := r.Scan(&a.ID, &a.UserID, &a.Name, &a.Type); err != nil {
		return model.Account{}, err
	}
	return a, nil
}

// scanCode expects: id, account_id, code.
func scanCode(r rowScanner) (model.Code, error) {
	var c model.Code
	if err := r.Scan(&c.ID, &c.AccountID, &c.Value); err != nil {
		return model.Code{}, err
	}
	return c, nil
}

// scanAuditLogEntry expects: id, timestamp, action, details.
func scanAuditLogEntry(r rowScanner) (model.AuditLogEntry, error) {
	var e model.AuditLogEntry
	if err := r.Scan(&e.ID, &e.Timestamp, &e.Action, &e.Details); err != nil {
		return model.AuditLogEntry{}, err
	}
	return e, nil
}

// queryOne runs a single-row query and scans it. No current row is not an
// error; it returns (nil, nil).
func queryOne[T any](q querier, scan scanFunc[T], query string, args ...Arg) (*T, error) {
	rows, err := q.query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, rows.Err()
	}
	v, err := scan(rows)
	if err != nil {
		return nil, err
	}
	return &v, rows.Err()
}

// queryAll runs a query and scans every row. An empty result yields an
// empty slice.
func queryAll[T any](q querier, scan scanFunc[T], query string, args ...Arg) ([]T, error) {
	rows, err := q.query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
