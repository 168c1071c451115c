// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// Package vault is the facade the UI layer talks to. Every operation
// returns a definite success/failure signal: expected outcomes (duplicate
// username, missing row, rejected value) become a false/absent result, and
// the facade never panics the caller.
package vault

import (
	"errors"

	"github.com/tverren/codevault/internal/credential"
	"github.com/tverren/codevault/internal/db"
	"github.com/tverren/codevault/internal/logging"
	"github.com/tverren/codevault/internal/model"
	"github.com/tverren/codevault/internal/security"
)

// Vault bundles the entity repositories behind the operation set consumed
// by the UI layer.
type Vault struct {
	users    db.UserRepository
	accounts db.AccountRepository
	codes    db.CodeRepository
}

// New builds a vault over SQLite-backed repositories on the given session.
func New(s *db.Session) *Vault {
	return &Vault{
		users:    db.NewUserStore(s),
		accounts: db.NewAccountStore(s),
		codes:    db.NewCodeStore(s),
	}
}

// NewWithRepositories builds a vault over caller-supplied repositories.
// Tests use it to inject fakes.
func NewWithRepositories(users db.UserRepository, accounts db.AccountRepository, codes db.CodeRepository) *Vault {
	return &Vault{users: users, accounts: accounts, codes: codes}
}

// reportErr logs an operation failure. Expected, recoverable outcomes stay
// at debug level; a broken connection is loud because every later call
// will fail too.
func reportErr(op string, err error) {
	if errors.Is(err, db.ErrNotConnected) {
		logging.Errorf("%s: %v", op, err)
		return
	}
	logging.Debugf("%s: %v", op, err)
}

// Register creates a new user with the given credentials and makes it the
// active session. It returns false when the username is taken (compared
// case-insensitively) or any value is rejected.
func (v *Vault) Register(username string, password security.Secret) bool {
	salt, err := credential.GenerateSalt()
	if err != nil {
		reportErr("register", err)
		return false
	}
	var hash string
	if err := password.Use(func(pw []byte) error {
		h, herr := credential.Hash(pw, salt)
		hash = h
		return herr
	}); err != nil {
		reportErr("register", err)
		return false
	}
	if _, err := v.users.Create(username, hash, salt); err != nil {
		reportErr("register", err)
		return false
	}
	return true
}

// Authenticate verifies the credentials and, on success, makes the user
// the active session (forcing everyone else out). A failed verification
// leaves every logged_in flag untouched.
func (v *Vault) Authenticate(username string, password security.Secret) bool {
	user, err := v.users.ByUsername(username)
	if err != nil {
		reportErr("authenticate", err)
		return false
	}
	if user == nil {
		return false
	}
	matched := false
	_ = password.Use(func(pw []byte) error {
		matched = credential.Verify(user.PasswordHash, pw, user.Salt)
		return nil
	})
	if !matched {
		return false
	}
	if err := v.users.SetLoggedIn(user.ID); err != nil {
		reportErr("authenticate", err)
		return false
	}
	return true
}

// Logout clears the session flag for the given user.
func (v *Vault) Logout(userID int) bool {
	if err := v.users.Logout(userID); err != nil {
		reportErr("logout", err)
		return false
	}
	return true
}

// UpdateTheme changes the user's stored theme.
func (v *Vault) UpdateTheme(userID int, theme model.Theme) bool {
	if err := v.users.UpdateTheme(userID, theme); err != nil {
		reportErr("update theme", err)
		return false
	}
	return true
}

// UsernameTaken reports whether a username is already registered,
// case-insensitively.
func (v *Vault) UsernameTaken(username string) bool {
	user, err := v.users.ByUsername(username)
	if err != nil {
		reportErr("check username", err)
		return false
	}
	return user != nil
}

// LoggedInUser returns the currently active user, if any.
func (v *Vault) LoggedInUser() (UserView, bool) {
	user, err := v.users.LoggedIn()
	if err != nil {
		reportErr("logged-in user", err)
		return UserView{}, false
	}
	if user == nil {
		return UserView{}, false
	}
	return userView(*user), true
}

// DeleteUser removes a user together with all accounts and codes it owns.
func (v *Vault) DeleteUser(userID int) bool {
	if err := v.users.Delete(userID); err != nil {
		reportErr("delete user", err)
		return false
	}
	return true
}

// CreateAccount adds an account under the given user.
func (v *Vault) CreateAccount(userID int, name, accType string) (AccountView, bool) {
	account, err := v.accounts.Create(userID, name, accType)
	if err != nil {
		reportErr("create account", err)
		return AccountView{}, false
	}
	return accountView(*account), true
}

// Accounts lists the accounts owned by the given user.
func (v *Vault) Accounts(userID int) []AccountView {
	accounts, err := v.accounts.ForUser(userID)
	if err != nil {
		reportErr("list accounts", err)
		return nil
	}
	return accountViews(accounts)
}

// DeleteAccount removes an account and, via cascade, its codes.
func (v *Vault) DeleteAccount(id int) bool {
	if err := v.accounts.Delete(id); err != nil {
		reportErr("delete account", err)
		return false
	}
	return true
}

// CreateCode stores a backup code under the given account.
func (v *Vault) CreateCode(accountID int, text string) (CodeView, bool) {
	code, err := v.codes.Create(accountID, text)
	if err != nil {
		reportErr("create code", err)
		return CodeView{}, false
	}
	return codeView(*code), true
}

// Codes lists the backup codes stored under the given account.
func (v *Vault) Codes(accountID int) []CodeView {
	codes, err := v.codes.ForAccount(accountID)
	if err != nil {
		reportErr("list codes", err)
		return nil
	}
	return codeViews(codes)
}

// UpdateCode rewrites the text of a stored code.
func (v *Vault) UpdateCode(id int, text string) bool {
	if err := v.codes.Update(id, text); err != nil {
		reportErr("update code", err)
		return false
	}
	return true
}

// DeleteCode removes a single code.
func (v *Vault) DeleteCode(id int) bool {
	if err := v.codes.Delete(id); err != nil {
		reportErr("delete code", err)
		return false
	}
	return true
}

// ClearCodes removes every code under an account and returns what was
// cleared.
func (v *Vault) ClearCodes(accountID int) []CodeView {
	cleared, err := v.codes.ClearForAccount(accountID)
	if err != nil {
		reportErr("clear codes", err)
		return nil
	}
	return codeViews(cleared)
}
