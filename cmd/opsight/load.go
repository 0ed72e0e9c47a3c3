package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	loadCSVPath   string
	loadChunkSize int
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Import a telemetry CSV file into the events table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if loadChunkSize > 0 {
			cfg.Loader.ChunkSize = loadChunkSize
		}

		a, err := initApp(cfg)
		if err != nil {
			return err
		}
		defer a.Shutdown()

		job, err := a.GetLoaderService().LoadFile(cmd.Context(), loadCSVPath)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("import %s completed: %d rows read, %d events inserted, %d operators created, %d sessions created\n",
			job.ID, job.RowsRead, job.EventsInserted, job.OperatorsCreated, job.SessionsCreated)
		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadCSVPath, "csv", "", "path to the telemetry CSV file")
	loadCmd.Flags().IntVar(&loadChunkSize, "chunk-size", 0, "rows per insert chunk (default from LOAD_CHUNK_SIZE)")
	loadCmd.MarkFlagRequired("csv")
}
