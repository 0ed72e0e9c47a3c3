package main

import (
	"github.com/spf13/cobra"

	"github.com/bctala/OPSIGHT/config"
	"github.com/bctala/OPSIGHT/internal/app"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "opsight",
	Short: "OPSIGHT data platform administration",
	Long: `opsight provisions and operates the OPSIGHT PostgreSQL database.

Examples:

  opsight init
  opsight load --csv telemetry.csv
  opsight status
`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "environment file to load settings from")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	return config.LoadWithOptions(config.LoadOptions{EnvFile: envFile})
}

// initApp builds a fully initialized application for verbs that need the
// repositories and services, not just a raw connection
func initApp(cfg *config.Config) (*app.App, error) {
	a := app.NewApp(cfg)
	if err := a.Initialize(); err != nil {
		return nil, err
	}
	return a, nil
}
