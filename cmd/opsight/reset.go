package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bctala/OPSIGHT/internal/database"
	"github.com/bctala/OPSIGHT/internal/migrations"
	"github.com/bctala/OPSIGHT/pkg/logger"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop all tables and reinitialize the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes {
			return fmt.Errorf("reset drops every table; re-run with --yes to confirm")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Connect(&cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.CleanDatabase(db); err != nil {
			return err
		}
		if err := database.InitializeDatabase(db, cfg); err != nil {
			return err
		}

		manager := migrations.NewManager(logger.NewLoggerWithLevel(cfg.LogLevel))
		if err := manager.RunMigrations(cmd.Context(), cfg, db); err != nil {
			return err
		}

		fmt.Println("database reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "confirm the destructive reset")
}
