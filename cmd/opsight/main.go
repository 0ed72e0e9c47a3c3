package main

import (
	"os"

	_ "github.com/lib/pq"
)

// osExit is a variable to allow mocking os.Exit in tests
var osExit = os.Exit

func main() {
	if err := rootCmd.Execute(); err != nil {
		osExit(1)
	}
}
