// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db is the data access layer for Codevault. It owns the single
// SQLite connection, wraps every write in an atomic transaction, and maps
// typed application values into parameterized queries (and rows back into
// entities) through closed dispatch tables instead of reflection.
package db
