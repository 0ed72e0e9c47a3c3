package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bctala/OPSIGHT/config"
	"github.com/bctala/OPSIGHT/internal/database"
	"github.com/bctala/OPSIGHT/internal/repository"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check database connectivity, schema and seeded reference data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		status, err := database.CheckStatus(ctx, cfg)
		if err != nil {
			switch {
			case status != nil && !status.ServerReachable:
				fmt.Printf("PostgreSQL server is not reachable at %s:%d. Is it running?\n",
					cfg.Database.Host, cfg.Database.Port)
			case status != nil && !status.DatabaseExists:
				fmt.Printf("database %q does not exist. Run 'opsight init' to create it\n",
					cfg.Database.DBName)
			case status != nil && !status.CredentialsOK:
				fmt.Printf("authentication failed for user %q. Check DATABASE_URL credentials\n",
					cfg.Database.User)
			}
			return err
		}

		if len(status.MissingTables) > 0 {
			fmt.Printf("schema incomplete, missing tables: %v. Run 'opsight init'\n", status.MissingTables)
			return fmt.Errorf("schema incomplete")
		}

		fmt.Println("database reachable, schema complete")
		fmt.Printf("  db_version:    %s\n", status.DBVersion)
		if status.ShiftsSeeded {
			fmt.Println("  shifts:        DAY and NIGHT seeded")
		} else {
			fmt.Println("  shifts:        NOT seeded. Run 'opsight seed'")
		}
		fmt.Printf("  operators:     %d\n", status.OperatorCount)
		fmt.Printf("  sessions:      %d\n", status.SessionCount)
		fmt.Printf("  events:        %d\n", status.EventCount)

		return printRecentImports(cmd, cfg)
	},
}

func printRecentImports(cmd *cobra.Command, cfg *config.Config) error {
	db, err := database.Connect(&cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	jobs, err := repository.NewImportJobRepository(db).ListRecent(cmd.Context(), 5)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		fmt.Println("  imports:       none recorded")
		return nil
	}

	fmt.Println("  recent imports:")
	for _, job := range jobs {
		fmt.Printf("    %s  %-9s  %s  (%d events)\n",
			job.CreatedAt.Format("2006-01-02 15:04"), job.Status, job.SourceFile, job.EventsInserted)
	}
	return nil
}
