// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the SQLite-backed account repository.

package db

import (
	"fmt"

	"github.com/tverren/codevault/internal/model"
)

// AccountStore is the SQLite implementation of AccountRepository.
type AccountStore struct {
	s *Session
}

// NewAccountStore returns an account repository bound to the given session.
func NewAccountStore(s *Session) *AccountStore {
	return &AccountStore{s: s}
}

const accountColumns = `id, user_id, name, type FROM accounts`

// Create inserts a new account under the given user. A missing owner
// surfaces as ErrNotFound; empty name/type as ErrValidation.
func (st *AccountStore) Create(userID int, name, accType string) (*model.Account, error) {
	var account *model.Account
	err := st.s.RunInTransaction(func(tx *Tx) error {
		res, err := tx.exec(
			"INSERT INTO accounts (user_id, name, type) VALUES (?, ?, ?)",
			Int(userID), Text(name), Text(accType))
		if err != nil {
			return MapDBError(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		account = &model.Account{ID: int(id), UserID: userID, Name: name, Type: accType}
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = logAction(st.s, "ADD_ACCOUNT", fmt.Sprintf("account: %s (%s)", name, accType))
	return account, nil
}

// ByID retrieves an account by id. Returns (nil, nil) when it does not exist.
func (st *AccountStore) ByID(id int) (*model.Account, error) {
	return queryOne(st.s, scanAccount,
		"SELECT "+accountColumns+" WHERE id = ?", Int(id))
}

// Find looks an account up by its advisory (name, type) pair within one
// user's accounts. Uniqueness is not enforced; the first match wins.
func (st *AccountStore) Find(userID int, name, accType string) (*model.Account, error) {
	return queryOne(st.s, scanAccount,
		"SELECT "+accountColumns+" WHERE user_id = ? AND name = ? AND type = ? ORDER BY id",
		Int(userID), Text(name), Text(accType))
}

// ForUser retrieves all accounts owned by the given user.
func (st *AccountStore) ForUser(userID int) ([]model.Account, error) {
	return queryAll(st.s, scanAccount,
		"SELECT "+accountColumns+" WHERE user_id = ? ORDER BY id", Int(userID))
}

// Update rewrites an account's name and type.
func (st *AccountStore) Update(id int, name, accType string) error {
	err := st.s.RunInTransaction(func(tx *Tx) error {
		return tx.execAffecting(
			"UPDATE accounts SET name = ?, type = ? WHERE id = ?",
			Text(name), Text(accType), Int(id))
	})
	if err != nil {
		return err
	}
	_ = logAction(st.s, "UPDATE_ACCOUNT", fmt.Sprintf("account_id: %d, name: %s", id, name))
	return nil
}

// Delete removes an account; the engine cascades the delete to its codes.
func (st *AccountStore) Delete(id int) error {
	// Get account details before deleting for logging.
	details := fmt.Sprintf("account_id: %d", id)
	if a, err := st.ByID(id); err == nil && a != nil {
		details = fmt.Sprintf("account: %s", a.String())
	}
	err := st.s.RunInTransaction(func(tx *Tx) error {
		return tx.execAffecting("DELETE FROM accounts WHERE id = ?", Int(id))
	})
	if err != nil {
		return err
	}
	_ = logAction(st.s, "DELETE_ACCOUNT", details)
	return nil
}

// DeleteForUser removes all accounts owned by the given user. Deleting
// nothing is not an error.
func (st *AccountStore) DeleteForUser(userID int) error {
	err := st.s.RunInTransaction(func(tx *Tx) error {
		_, err := tx.exec("DELETE FROM accounts WHERE user_id = ?", Int(userID))
		return err
	})
	if err != nil {
		return err
	}
	_ = logAction(st.s, "DELETE_ACCOUNTS", fmt.Sprintf("user_id: %d", userID))
	return nil
}
