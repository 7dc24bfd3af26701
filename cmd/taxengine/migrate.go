package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// migrateCmd is the migrations-subsystem stub spec.md §6 names as part
// of the admin boundary, not compute: a real deployment backs this with
// a schema-migration tool (e.g. golang-migrate) against the version
// store's database. No DB driver or ORM ships in this module (an
// explicit Non-goal), so only `status` is wired, and it always reports
// up to date since there is no durable schema to drift from.
func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations subsystem (admin boundary stub)",
	}
	cmd.AddCommand(migrateStatusCmd())
	return cmd
}

func migrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report whether the schema is up to date",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "up to date (no durable schema configured)")
			return nil
		},
	}
}
