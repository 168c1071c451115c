// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the SQLite-backed backup-code repository.

package db

import (
	"fmt"

	"github.com/tverren/codevault/internal/model"
)

// CodeStore is the SQLite implementation of CodeRepository.
type CodeStore struct {
	s *Session
}

// NewCodeStore returns a code repository bound to the given session.
func NewCodeStore(s *Session) *CodeStore {
	return &CodeStore{s: s}
}

const codeColumns = `id, account_id, code FROM codes`

// Create stores a new backup code under the given account. A missing owner
// surfaces as ErrNotFound; an empty code as ErrValidation.
func (st *CodeStore) Create(accountID int, value string) (*model.Code, error) {
	var code *model.Code
	err := st.s.RunInTransaction(func(tx *Tx) error {
		res, err := tx.exec(
			"INSERT INTO codes (account_id, code) VALUES (?, ?)",
			Int(accountID), Text(value))
		if err != nil {
			return MapDBError(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		code = &model.Code{ID: int(id), AccountID: accountID, Value: value}
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = logAction(st.s, "ADD_CODE", fmt.Sprintf("account_id: %d", accountID))
	return code, nil
}

// ByID retrieves a code by id. Returns (nil, nil) when it does not exist.
func (st *CodeStore) ByID(id int) (*model.Code, error) {
	return queryOne(st.s, scanCode,
		"SELECT "+codeColumns+" WHERE id = ?", Int(id))
}

// ForAccount retrieves all codes stored under the given account.
func (st *CodeStore) ForAccount(accountID int) ([]model.Code, error) {
	return queryAll(st.s, scanCode,
		"SELECT "+codeColumns+" WHERE account_id = ? ORDER BY id", Int(accountID))
}

// Update rewrites the text of a stored code.
func (st *CodeStore) Update(id int, value string) error {
	err := st.s.RunInTransaction(func(tx *Tx) error {
		return tx.execAffecting("UPDATE codes SET code = ? WHERE id = ?", Text(value), Int(id))
	})
	if err != nil {
		return err
	}
	_ = logAction(st.s, "UPDATE_CODE", fmt.Sprintf("code_id: %d", id))
	return nil
}

// Delete removes a single code.
func (st *CodeStore) Delete(id int) error {
	err := st.s.RunInTransaction(func(tx *Tx) error {
		return tx.execAffecting("DELETE FROM codes WHERE id = ?", Int(id))
	})
	if err != nil {
		return err
	}
	_ = logAction(st.s, "DELETE_CODE", fmt.Sprintf("code_id: %d", id))
	return nil
}

// ClearForAccount removes every code under an account and returns the
// removed codes. The read and the delete share one transaction, so the
// returned slice is exactly what was cleared.
func (st *CodeStore) ClearForAccount(accountID int) ([]model.Code, error) {
	var cleared []model.Code
	err := st.s.RunInTransaction(func(tx *Tx) error {
		codes, err := queryAll(tx, scanCode,
			"SELECT "+codeColumns+" WHERE account_id = ? ORDER BY id", Int(accountID))
		if err != nil {
			return err
		}
		if _, err := tx.exec("DELETE FROM codes WHERE account_id = ?", Int(accountID)); err != nil {
			return err
		}
		cleared = codes
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = logAction(st.s, "CLEAR_CODES", fmt.Sprintf("account_id: %d, cleared: %d", accountID, len(cleared)))
	return cleared, nil
}
