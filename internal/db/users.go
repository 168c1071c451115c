// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the SQLite-backed user repository. It owns the single
// active session invariant: at most one user has logged_in set, and every
// flip happens inside the transaction that changes login state.

package db

import (
	"fmt"

	"github.com/tverren/codevault/internal/model"
)

// UserStore is the SQLite implementation of UserRepository.
type UserStore struct {
	s *Session
}

// NewUserStore returns a user repository bound to the given session.
func NewUserStore(s *Session) *UserStore {
	return &UserStore{s: s}
}

const userColumns = `u.id, u.username, u.password_hash, u.salt, t.name, u.logged_in
	FROM users u JOIN themes t ON t.id = u.theme_id`

// Create inserts a new user and makes it the active session: the new row
// gets logged_in = 1 and every other user is forced to 0 within the same
// transaction. Duplicate usernames are rejected case-insensitively.
func (st *UserStore) Create(username, passwordHash, salt string) (*model.User, error) {
	var user *model.User
	err := st.s.RunInTransaction(func(tx *Tx) error {
		taken, err := queryOne(tx, scanInt,
			"SELECT 1 FROM users WHERE username = ? COLLATE NOCASE", Text(username))
		if err != nil {
			return err
		}
		if taken != nil {
			return ErrDuplicate
		}
		if _, err := tx.exec("UPDATE users SET logged_in = 0 WHERE logged_in = 1"); err != nil {
			return err
		}
		res, err := tx.exec(
			"INSERT INTO users (username, password_hash, salt, logged_in) VALUES (?, ?, ?, 1)",
			Text(username), Text(passwordHash), Text(salt))
		if err != nil {
			return MapDBError(err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		user = &model.User{
			ID:           int(id),
			Username:     username,
			PasswordHash: passwordHash,
			Salt:         salt,
			Theme:        model.ThemeLight,
			LoggedIn:     true,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	_ = logAction(st.s, "REGISTER_USER", fmt.Sprintf("username: %s", username))
	return user, nil
}

// ByID retrieves a user by id. Returns (nil, nil) when no such user exists.
func (st *UserStore) ByID(id int) (*model.User, error) {
	return queryOne(st.s, scanUser,
		"SELECT "+userColumns+" WHERE u.id = ?", Int(id))
}

// ByUsername retrieves a user by username, case-insensitively.
func (st *UserStore) ByUsername(username string) (*model.User, error) {
	return queryOne(st.s, scanUser,
		"SELECT "+userColumns+" WHERE u.username = ? COLLATE NOCASE", Text(username))
}

// All retrieves all users.
func (st *UserStore) All() ([]model.User, error) {
	return queryAll(st.s, scanUser,
		"SELECT "+userColumns+" ORDER BY u.id")
}

// LoggedIn retrieves the currently active user, or (nil, nil) when nobody
// is logged in.
func (st *UserStore) LoggedIn() (*model.User, error) {
	return queryOne(st.s, scanUser,
		"SELECT "+userColumns+" WHERE u.logged_in = 1")
}

// SetLoggedIn marks the given user as the active session and forces every
// other user out, all in one transaction.
func (st *UserStore) SetLoggedIn(id int) error {
	err := st.s.RunInTransaction(func(tx *Tx) error {
		if _, err := tx.exec("UPDATE users SET logged_in = 0 WHERE id <> ?", Int(id)); err != nil {
			return err
		}
		return tx.execAffecting("UPDATE users SET logged_in = 1 WHERE id = ?", Int(id))
	})
	if err != nil {
		return err
	}
	_ = logAction(st.s, "LOGIN", fmt.Sprintf("user_id: %d", id))
	return nil
}

// Logout clears the logged_in flag for the given user.
func (st *UserStore) Logout(id int) error {
	err := st.s.RunInTransaction(func(tx *Tx) error {
		return tx.execAffecting("UPDATE users SET logged_in = 0 WHERE id = ?", Int(id))
	})
	if err != nil {
		return err
	}
	_ = logAction(st.s, "LOGOUT", fmt.Sprintf("user_id: %d", id))
	return nil
}

// UpdateTheme sets the user's theme. Unknown theme names and missing users
// both report ErrNotFound.
func (st *UserStore) UpdateTheme(id int, theme model.Theme) error {
	err := st.s.RunInTransaction(func(tx *Tx) error {
		themeID, err := queryOne(tx, scanInt,
			"SELECT id FROM themes WHERE name = ?", Text(string(theme)))
		if err != nil {
			return err
		}
		if themeID == nil {
			return ErrNotFound
		}
		return tx.execAffecting("UPDATE users SET theme_id = ? WHERE id = ?", Int(*themeID), Int(id))
	})
	if err != nil {
		return err
	}
	_ = logAction(st.s, "UPDATE_THEME", fmt.Sprintf("user_id: %d, theme: %s", id, theme))
	return nil
}

// Delete removes a user. The engine cascades the delete to the user's
// accounts and their codes via foreign keys.
func (st *UserStore) Delete(id int) error {
	// Get the username before deleting for logging.
	details := fmt.Sprintf("user_id: %d", id)
	if u, err := st.ByID(id); err == nil && u != nil {
		details = fmt.Sprintf("username: %s", u.Username)
	}
	err := st.s.RunInTransaction(func(tx *Tx) error {
		return tx.execAffecting("DELETE FROM users WHERE id = ?", Int(id))
	})
	if err != nil {
		return err
	}
	_ = logAction(st.s, "DELETE_USER", details)
	return nil
}
