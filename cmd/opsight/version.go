package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bctala/OPSIGHT/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the opsight version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("opsight", config.VERSION)
	},
}
