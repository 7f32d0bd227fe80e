package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "xlmaniac",
	Short: "Normalize heterogeneous credit-register exports into the canonical schema",
	Long: `xlmaniac reads a register export (xlsx, csv or json), runs the column
decoding pipeline over it and writes the normalized result.

Input shapes are detected automatically: a workbook carrying the
"Договоры"/"Телефоны"/"Адреса" sheets is treated as the multi-sheet
post layout, everything else as a single table.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
