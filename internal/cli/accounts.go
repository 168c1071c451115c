// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"
	"strconv"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tverren/codevault/internal/i18n"
)

// accountCmd groups the account subcommands.
var accountCmd = &cobra.Command{
	Use:     "account",
	Short:   "Manage the signed-in user's accounts",
	PreRunE: setupDefaultServices,
}

var accountAddCmd = &cobra.Command{
	Use:     "add <name> <type>",
	Short:   "Add an account (e.g. 'GitHub' 'TOTP')",
	Args:    cobra.ExactArgs(2),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		user, ok := requireLoggedIn()
		if !ok {
			return
		}
		account, ok := vaultSvc.CreateAccount(user.ID, args[0], args[1])
		if !ok {
			fmt.Println(i18n.T("account.add.failed"))
			return
		}
		fmt.Println(i18n.T("account.add.success", fmt.Sprintf("%s (%s)", account.Name, account.Type)))
	},
}

var accountListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List the signed-in user's accounts",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		user, ok := requireLoggedIn()
		if !ok {
			return
		}
		accounts := vaultSvc.Accounts(user.ID)
		if len(accounts) == 0 {
			fmt.Println(i18n.T("account.list.empty"))
			return
		}
		for _, a := range accounts {
			fmt.Printf("%d: %s (%s)\n", a.ID, a.Name, a.Type)
		}
	},
}

var accountRmCmd = &cobra.Command{
	Use:     "rm <account-id>",
	Short:   "Remove an account and all its codes",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		if _, ok := requireLoggedIn(); !ok {
			return
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			log.Fatalf("invalid account id %q", args[0])
		}
		if !vaultSvc.DeleteAccount(id) {
			fmt.Println(i18n.T("account.rm.failed"))
			return
		}
		fmt.Println(i18n.T("account.rm.success"))
	},
}

func init() {
	accountCmd.AddCommand(accountAddCmd, accountListCmd, accountRmCmd)
}
