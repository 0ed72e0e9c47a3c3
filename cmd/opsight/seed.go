package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bctala/OPSIGHT/internal/database"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Re-run the idempotent reference data seeding",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Connect(&cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.SeedShiftDefinitions(db); err != nil {
			return err
		}

		fmt.Println("shift definitions seeded")
		return nil
	},
}
