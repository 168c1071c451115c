// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/tverren/codevault/internal/model"
)

// UserRepository defines the user persistence operations consumed by the
// vault facade. This allows the facade to be tested against fakes.
type UserRepository interface {
	Create(username, passwordHash, salt string) (*model.User, error)
	ByID(id int) (*model.User, error)
	ByUsername(username string) (*model.User, error)
	All() ([]model.User, error)
	LoggedIn() (*model.User, error)
	SetLoggedIn(id int) error
	Logout(id int) error
	UpdateTheme(id int, theme model.Theme) error
	Delete(id int) error
}

// AccountRepository defines the account persistence operations.
type AccountRepository interface {
	Create(userID int, name, accType string) (*model.Account, error)
	ByID(id int) (*model.Account, error)
	Find(userID int, name, accType string) (*model.Account, error)
	ForUser(userID int) ([]model.Account, error)
	Update(id int, name, accType string) error
	Delete(id int) error
	DeleteForUser(userID int) error
}

// CodeRepository defines the backup-code persistence operations.
type CodeRepository interface {
	Create(accountID int, value string) (*model.Code, error)
	ByID(id int) (*model.Code, error)
	ForAccount(accountID int) ([]model.Code, error)
	Update(id int, value string) error
	Delete(id int) error
	ClearForAccount(accountID int) ([]model.Code, error)
}

// AuditRepository defines the audit trail operations.
type AuditRepository interface {
	LogAction(action, details string) error
	Entries() ([]model.AuditLogEntry, error)
}
