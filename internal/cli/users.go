// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tverren/codevault/internal/i18n"
	"github.com/tverren/codevault/internal/model"
)

// registerCmd creates a new user and signs it in.
var registerCmd = &cobra.Command{
	Use:     "register <username>",
	Short:   "Register a new user and sign in",
	Long:    `Creates a new user with a salted, hashed password and makes it the active session. Usernames are unique regardless of case.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		if vaultSvc.UsernameTaken(username) {
			fmt.Println(i18n.T("register.taken", username))
			return
		}
		password, err := readPassword(i18n.T("prompt.password"))
		if err != nil {
			log.Fatalf("could not read password: %v", err)
		}
		defer password.Zero()
		if len(password) == 0 {
			fmt.Println(i18n.T("error.password.empty"))
			return
		}
		confirm, err := readPassword(i18n.T("prompt.password.confirm"))
		if err != nil {
			log.Fatalf("could not read password: %v", err)
		}
		defer confirm.Zero()
		if string(password) != string(confirm) {
			fmt.Println(i18n.T("error.password.mismatch"))
			return
		}
		if !vaultSvc.Register(username, password) {
			fmt.Println(i18n.T("register.failed", username))
			return
		}
		fmt.Println(i18n.T("register.success", username))
	},
}

// loginCmd authenticates a user and makes it the active session.
var loginCmd = &cobra.Command{
	Use:     "login <username>",
	Short:   "Sign in as an existing user",
	Long:    `Verifies the password against the stored hash and, on success, makes the user the single active session.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		username := args[0]
		password, err := readPassword(i18n.T("prompt.password"))
		if err != nil {
			log.Fatalf("could not read password: %v", err)
		}
		defer password.Zero()
		if !vaultSvc.Authenticate(username, password) {
			fmt.Println(i18n.T("login.failed"))
			return
		}
		fmt.Println(i18n.T("login.success", username))
	},
}

// logoutCmd clears the active session.
var logoutCmd = &cobra.Command{
	Use:     "logout",
	Short:   "Sign out the active user",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		user, ok := vaultSvc.LoggedInUser()
		if !ok {
			fmt.Println(i18n.T("logout.none"))
			return
		}
		if vaultSvc.Logout(user.ID) {
			fmt.Println(i18n.T("logout.success"))
		}
	},
}

// whoamiCmd prints the active user, if any.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Short:   "Show the signed-in user",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		user, ok := vaultSvc.LoggedInUser()
		if !ok {
			fmt.Println(i18n.T("whoami.none"))
			return
		}
		fmt.Println(i18n.T("whoami.current", user.Username, string(user.Theme)))
	},
}

// themeCmd changes the signed-in user's theme.
var themeCmd = &cobra.Command{
	Use:     "theme <LIGHT|DARK|HIGH_CONTRAST>",
	Short:   "Set the UI theme for the signed-in user",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		user, ok := requireLoggedIn()
		if !ok {
			return
		}
		theme, err := model.ParseTheme(args[0])
		if err != nil {
			fmt.Println(i18n.T("theme.invalid", args[0]))
			return
		}
		if !vaultSvc.UpdateTheme(user.ID, theme) {
			fmt.Println(i18n.T("theme.failed"))
			return
		}
		fmt.Println(i18n.T("theme.success", string(theme)))
	},
}

// userRmCmd deletes the signed-in user and everything it owns.
var userRmCmd = &cobra.Command{
	Use:     "user-rm",
	Short:   "Delete the signed-in user and all owned accounts and codes",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		user, ok := requireLoggedIn()
		if !ok {
			return
		}
		if !vaultSvc.DeleteUser(user.ID) {
			fmt.Println(i18n.T("user.delete.failed"))
			return
		}
		fmt.Println(i18n.T("user.delete.success", user.Username))
	},
}
