// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains backup export and restore at the storage level.
// Export reads a consistent snapshot; Import performs a full
// wipe-and-replace inside a single transaction; Integrate restores
// non-destructively, skipping rows that already exist.

package db

import (
	"fmt"

	"github.com/tverren/codevault/internal/model"
)

// backupSchemaVersion is stamped into exports and checked on restore.
const backupSchemaVersion = 1

// BackupStore exposes whole-vault export and restore.
type BackupStore struct {
	s *Session
}

// NewBackupStore returns a backup store bound to the given session.
func NewBackupStore(s *Session) *BackupStore {
	return &BackupStore{s: s}
}

// Export retrieves all data for a backup. It uses a transaction to ensure a
// consistent snapshot of the data.
func (st *BackupStore) Export() (*model.BackupData, error) {
	data := &model.BackupData{SchemaVersion: backupSchemaVersion}
	err := st.s.RunInTransaction(func(tx *Tx) error {
		users, err := queryAll(tx, scanUser,
			"SELECT "+userColumns+" ORDER BY u.id")
		if err != nil {
			return err
		}
		accounts, err := queryAll(tx, scanAccount,
			"SELECT "+accountColumns+" ORDER BY id")
		if err != nil {
			return err
		}
		codes, err := queryAll(tx, scanCode,
			"SELECT "+codeColumns+" ORDER BY id")
		if err != nil {
			return err
		}
		data.Users, data.Accounts, data.Codes = users, accounts, codes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Import restores the vault from a backup. It performs a full
// wipe-and-replace within a single transaction to ensure atomicity.
func (st *BackupStore) Import(data *model.BackupData) error {
	if data.SchemaVersion > backupSchemaVersion {
		return fmt.Errorf("backup schema version %d is newer than supported version %d",
			data.SchemaVersion, backupSchemaVersion)
	}
	err := st.s.RunInTransaction(func(tx *Tx) error {
		// Children first; the cascades would handle this, but the order
		// keeps the intent explicit.
		for _, table := range []string{"codes", "accounts", "users"} {
			if _, err := tx.exec("DELETE FROM " + table); err != nil {
				return err
			}
		}
		return insertBackupRows(tx, data, "INSERT")
	})
	if err != nil {
		return err
	}
	_ = logAction(st.s, "RESTORE_FULL", fmt.Sprintf("users: %d, accounts: %d, codes: %d",
		len(data.Users), len(data.Accounts), len(data.Codes)))
	return nil
}

// Integrate restores data from a backup in a non-destructive way, skipping
// entries whose ids already exist.
func (st *BackupStore) Integrate(data *model.BackupData) error {
	if data.SchemaVersion > backupSchemaVersion {
		return fmt.Errorf("backup schema version %d is newer than supported version %d",
			data.SchemaVersion, backupSchemaVersion)
	}
	err := st.s.RunInTransaction(func(tx *Tx) error {
		return insertBackupRows(tx, data, "INSERT OR IGNORE")
	})
	if err != nil {
		return err
	}
	_ = logAction(st.s, "RESTORE_INTEGRATE", fmt.Sprintf("users: %d, accounts: %d, codes: %d",
		len(data.Users), len(data.Accounts), len(data.Codes)))
	return nil
}

// insertBackupRows writes backup rows owner-first so foreign keys resolve.
// Identity fields are preserved from the backup.
func insertBackupRows(tx *Tx, data *model.BackupData, verb string) error {
	for _, u := range data.Users {
		_, err := tx.exec(verb+` INTO users (id, username, password_hash, salt, theme_id, logged_in)
			VALUES (?, ?, ?, ?, (SELECT id FROM themes WHERE name = ?), ?)`,
			Int(u.ID), Text(u.Username), Text(u.PasswordHash), Text(u.Salt),
			Text(string(u.Theme)), Bool(u.LoggedIn))
		if err != nil {
			return MapDBError(err)
		}
	}
	for _, a := range data.Accounts {
		_, err := tx.exec(verb+" INTO accounts (id, user_id, name, type) VALUES (?, ?, ?, ?)",
			Int(a.ID), Int(a.UserID), Text(a.Name), Text(a.Type))
		if err != nil {
			return MapDBError(err)
		}
	}
	for _, c := range data.Codes {
		_, err := tx.exec(verb+" INTO codes (id, account_id, code) VALUES (?, ?, ?)",
			Int(c.ID), Int(c.AccountID), Text(c.Value))
		if err != nil {
			return MapDBError(err)
		}
	}
	return nil
}
