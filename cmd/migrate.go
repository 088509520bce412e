package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thesrcielos/exambuddy/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Database.Driver == config.DriverMemory {
			return fmt.Errorf("nothing to migrate for STORE_DRIVER=memory")
		}

		gdb, err := openMigrated(cfg.Database)
		if err != nil {
			return err
		}
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s database\n", cfg.Database.Driver)
		return nil
	},
}
