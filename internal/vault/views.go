// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

package vault

import "github.com/tverren/codevault/internal/model"

// UserView is the externally visible projection of a user. It deliberately
// omits the password hash and salt.
type UserView struct {
	ID       int
	Username string
	Theme    model.Theme
}

// AccountView is the externally visible projection of an account.
type AccountView struct {
	ID   int
	Name string
	Type string
}

// CodeView is the externally visible projection of a backup code.
type CodeView struct {
	ID    int
	Value string
}

func userView(u model.User) UserView {
	return UserView{ID: u.ID, Username: u.Username, Theme: u.Theme}
}

func accountView(a model.Account) AccountView {
	return AccountView{ID: a.ID, Name: a.Name, Type: a.Type}
}

func codeView(c model.Code) CodeView {
	return CodeView{ID: c.ID, Value: c.Value}
}

func accountViews(accounts []model.Account) []AccountView {
	out := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountView(a))
	}
	return out
}

func codeViews(codes []model.Code) []CodeView {
	out := make([]CodeView, 0, len(codes))
	for _, c := range codes {
		out = append(out, codeView(c))
	}
	return out
}
