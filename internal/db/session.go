// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the storage session: the single owner of the physical
// SQLite connection and the only path through which SQL is executed.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// Session owns one physical connection to the vault database. Reads go
// through the query helpers; every mutation goes through RunInTransaction.
// The session is a singly-owned resource: callers never issue concurrent
// requests against it.
type Session struct {
	db *sql.DB
}

// Open opens the file-backed vault database at path, bootstrapping the
// schema when the backing file does not exist yet. Foreign-key enforcement
// is mandatory (cascade semantics depend on it); Open fails if the engine
// rejects the pragma. Paths are used verbatim when they already look like a
// DSN, so tests can pass "file:...?mode=memory&cache=shared".
func Open(path string) (*Session, error) {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
		dsn = "file:" + dsn
	}
	start := time.Now()
	sqlDB, err := sqlOpenFunc("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection only. The vault has exactly one logical writer, and
	// SQLite in-memory databases are per-connection, so a pool would make
	// schema changes invisible across connections in tests.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to enable foreign key enforcement: %w", err)
	}
	var fk int
	if err := sqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to verify foreign key enforcement: %w", err)
	}
	if fk != 1 {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("engine rejected foreign key enforcement: %w", ErrNotConnected)
	}

	s := &Session{db: sqlDB}
	if err := s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	dbLogf("db: opened %s in %s", path, time.Since(start))
	return s, nil
}

// Close closes the connection. It is idempotent: closing an already closed
// session logs and succeeds.
func (s *Session) Close() error {
	if s.db == nil {
		dbLogf("db: close called on already closed session")
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Tx is a handle scoped to a single transaction. Mutating statements are
// only reachable through a Tx, which makes RunInTransaction the one write
// path in the package.
type Tx struct {
	tx *sql.Tx
}

// RunInTransaction begins a transaction, invokes work with a handle scoped
// to it, commits on success and rolls back on any error or panic from work.
// A panic is re-raised after the rollback so the original fault is
// preserved.
func (s *Session) RunInTransaction(work func(tx *Tx) error) error {
	if s.db == nil {
		return ErrNotConnected
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := work(&Tx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}

// querier is the read surface shared by Session (auto-commit reads) and Tx
// (reads inside a unit of work).
type querier interface {
	query(query string, args ...Arg) (*sql.Rows, error)
}

func (s *Session) query(query string, args ...Arg) (*sql.Rows, error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}
	vals, err := bindArgs(query, args)
	if err != nil {
		return nil, err
	}
	return s.db.Query(query, vals...)
}

func (t *Tx) query(query string, args ...Arg) (*sql.Rows, error) {
	vals, err := bindArgs(query, args)
	if err != nil {
		return nil, err
	}
	return t.tx.Query(query, vals...)
}

// exec runs a mutating statement inside the transaction after binding its
// arguments through the dispatch table.
func (t *Tx) exec(query string, args ...Arg) (sql.Result, error) {
	vals, err := bindArgs(query, args)
	if err != nil {
		return nil, err
	}
	return t.tx.Exec(query, vals...)
}

// execAffecting runs a mutating statement and reports ErrNotFound when no
// row was affected. Repositories use it for updates and deletes that target
// a specific row.
func (t *Tx) execAffecting(query string, args ...Arg) error {
	res, err := t.exec(query, args...)
	if err != nil {
		return MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Maintenance performs engine maintenance on the vault file: PRAGMA
// optimize (best effort), VACUUM, a WAL checkpoint, and an integrity check.
func (s *Session) Maintenance(ctx context.Context) error {
	if s.db == nil {
		return ErrNotConnected
	}
	// PRAGMA optimize may not be supported or useful in some environments
	// (e.g., in-memory filesystems); treat optimize errors as non-fatal.
	if _, err := s.db.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		dbLogf("db: sqlite optimize failed (ignored): %v", err)
	}
	if _, err := s.db.ExecContext(ctx, "VACUUM;"); err != nil {
		return fmt.Errorf("sqlite vacuum failed: %w", err)
	}
	// WAL checkpoint; ignore errors if not supported.
	_, _ = s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);")
	var res string
	if row := s.db.QueryRowContext(ctx, "PRAGMA integrity_check;"); row != nil {
		_ = row.Scan(&res)
		if res != "ok" {
			return fmt.Errorf("sqlite integrity_check failed: %s", res)
		}
	}
	return nil
}
