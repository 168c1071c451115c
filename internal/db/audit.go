// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the audit trail. Repositories record actions
// best-effort after their own transaction committed, so audit writes never
// nest inside another unit of work.

package db

import (
	"github.com/tverren/codevault/internal/model"
)

// AuditStore is the SQLite implementation of AuditRepository.
type AuditStore struct {
	s *Session
}

// NewAuditStore returns an audit repository bound to the given session.
func NewAuditStore(s *Session) *AuditStore {
	return &AuditStore{s: s}
}

// LogAction records an audit trail event.
func (st *AuditStore) LogAction(action, details string) error {
	return logAction(st.s, action, details)
}

// Entries retrieves all audit entries, most recent first.
func (st *AuditStore) Entries() ([]model.AuditLogEntry, error) {
	return queryAll(st.s, scanAuditLogEntry,
		"SELECT id, timestamp, action, details FROM audit_log ORDER BY id DESC")
}

func logAction(s *Session, action, details string) error {
	return s.RunInTransaction(func(tx *Tx) error {
		_, err := tx.exec(
			"INSERT INTO audit_log (action, details) VALUES (?, ?)",
			Text(action), Text(details))
		return err
	})
}
