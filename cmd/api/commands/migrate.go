package commands

import (
	"snippetapi/internal/infra/db"

	"github.com/spf13/cobra"
)

// migrateCmd creates or updates every table.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, gdb, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(gdb)

		if err := db.AutoMigrate(gdb); err != nil {
			return err
		}
		log.Info("migrated", "tables", len(db.Models()))
		return nil
	},
}
