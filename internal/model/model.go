// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

// package model defines the core entities of Codevault: users, their
// social-media accounts, and the backup codes stored under each account.
package model

import "fmt"

// Theme is the name of a UI color theme. The set of valid themes is seeded
// into the themes lookup table at bootstrap.
type Theme string

const (
	ThemeLight        Theme = "LIGHT"
	ThemeDark         Theme = "DARK"
	ThemeHighContrast Theme = "HIGH_CONTRAST"
)

// ParseTheme validates a theme name. It accepts the exact seeded names only.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark, ThemeHighContrast:
		return Theme(s), nil
	}
	return "", fmt.Errorf("unknown theme: %q", s)
}

// User is a registered vault owner. PasswordHash and Salt are the stored
// credential material; the plaintext password never appears in a model.
// At most one user has LoggedIn set at any time.
type User struct {
	ID           int
	Username     string
	PasswordHash string
	Salt         string
	Theme        Theme
	LoggedIn     bool
}

// String returns the username.
func (u User) String() string {
	return u.Username
}

// Account is a social-media account owned by exactly one user. Type is an
// open-ended platform category (discord, github, google, ...).
type Account struct {
	ID     int
	UserID int
	Name   string
	Type   string
}

// String returns the name/type representation used in listings.
func (a Account) String() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.Type)
}

// Code is a single two-factor backup code stored under an account.
type Code struct {
	ID        int
	AccountID int
	Value     string
}

// AuditLogEntry is one recorded action in the audit trail.
type AuditLogEntry struct {
	ID        int
	Timestamp string
	Action    string
	Details   string
}
