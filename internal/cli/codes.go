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

// codeCmd groups the backup-code subcommands.
var codeCmd = &cobra.Command{
	Use:     "code",
	Short:   "Manage backup codes stored under an account",
	PreRunE: setupDefaultServices,
}

var codeAddCmd = &cobra.Command{
	Use:     "add <account-id> <code>",
	Short:   "Store a backup code under an account",
	Args:    cobra.ExactArgs(2),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		if _, ok := requireLoggedIn(); !ok {
			return
		}
		accountID := mustID(args[0], "account")
		if _, ok := vaultSvc.CreateCode(accountID, args[1]); !ok {
			fmt.Println(i18n.T("code.add.failed"))
			return
		}
		fmt.Println(i18n.T("code.add.success", accountID))
	},
}

var codeListCmd = &cobra.Command{
	Use:     "list <account-id>",
	Short:   "List the backup codes stored under an account",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		if _, ok := requireLoggedIn(); !ok {
			return
		}
		accountID := mustID(args[0], "account")
		codes := vaultSvc.Codes(accountID)
		if len(codes) == 0 {
			fmt.Println(i18n.T("code.list.empty"))
			return
		}
		for _, c := range codes {
			fmt.Printf("%d: %s\n", c.ID, c.Value)
		}
	},
}

var codeUpdateCmd = &cobra.Command{
	Use:     "update <code-id> <new-text>",
	Short:   "Rewrite the text of a stored code",
	Args:    cobra.ExactArgs(2),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		if _, ok := requireLoggedIn(); !ok {
			return
		}
		id := mustID(args[0], "code")
		if !vaultSvc.UpdateCode(id, args[1]) {
			fmt.Println(i18n.T("code.update.failed", id))
			return
		}
		fmt.Println(i18n.T("code.update.success", id))
	},
}

var codeRmCmd = &cobra.Command{
	Use:     "rm <code-id>",
	Short:   "Remove a single backup code",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		if _, ok := requireLoggedIn(); !ok {
			return
		}
		id := mustID(args[0], "code")
		if !vaultSvc.DeleteCode(id) {
			fmt.Println(i18n.T("code.rm.failed"))
			return
		}
		fmt.Println(i18n.T("code.rm.success", id))
	},
}

var codeClearCmd = &cobra.Command{
	Use:     "clear <account-id>",
	Short:   "Remove every backup code stored under an account",
	Args:    cobra.ExactArgs(1),
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		if _, ok := requireLoggedIn(); !ok {
			return
		}
		accountID := mustID(args[0], "account")
		cleared := vaultSvc.ClearCodes(accountID)
		if len(cleared) == 0 {
			fmt.Println(i18n.T("code.clear.empty"))
			return
		}
		fmt.Println(i18n.T("code.clear.success", len(cleared)))
	},
}

func mustID(arg, what string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		log.Fatalf("invalid %s id %q", what, arg)
	}
	return id
}

func init() {
	codeCmd.AddCommand(codeAddCmd, codeListCmd, codeUpdateCmd, codeRmCmd, codeClearCmd)
}
