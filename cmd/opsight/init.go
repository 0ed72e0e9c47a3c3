package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bctala/OPSIGHT/internal/app"
)

var initSkipEnsure bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database, initialize the schema and seed reference rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		opts := []app.AppOption{}
		if initSkipEnsure {
			opts = append(opts, app.WithSkipEnsure())
		}

		a := app.NewApp(cfg, opts...)
		if err := a.InitDB(); err != nil {
			return err
		}
		defer a.Shutdown()

		fmt.Println("database initialized")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initSkipEnsure, "skip-ensure", false, "skip the CREATE DATABASE attempt")
}
