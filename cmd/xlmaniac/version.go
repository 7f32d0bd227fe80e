package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set at build time via ldflags.
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("xlmaniac %s (%s)\n", version, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
