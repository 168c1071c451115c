// Copyright (c) 2025 tverren
// Codevault - two-factor backup code vault
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	log "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tverren/codevault/internal/db"
	"github.com/tverren/codevault/internal/i18n"
)

// auditCmd prints the recorded data-changing actions, newest first.
var auditCmd = &cobra.Command{
	Use:     "audit",
	Short:   "Show the audit log of data-changing actions",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		entries, err := db.NewAuditStore(session).Entries()
		if err != nil {
			log.Fatalf("could not read audit log: %v", err)
		}
		if len(entries) == 0 {
			fmt.Println(i18n.T("audit.empty"))
			return
		}
		for _, e := range entries {
			fmt.Printf("%s  %-18s %s\n", e.Timestamp, e.Action, e.Details)
		}
	},
}

// dbMaintainCmd runs database maintenance tasks for the configured database.
var dbMaintainCmd = &cobra.Command{
	Use:     "db-maintain",
	Short:   "Run database maintenance (VACUUM, PRAGMA optimize, integrity check)",
	PreRunE: setupDefaultServices,
	Run: func(cmd *cobra.Command, args []string) {
		if err := session.Maintenance(cmd.Context()); err != nil {
			fmt.Println(i18n.T("maintenance.failed", err))
			return
		}
		fmt.Println(i18n.T("maintenance.success"))
	},
}
