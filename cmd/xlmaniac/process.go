package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Raumberg/XLmaniac/internal/config"
	"github.com/Raumberg/XLmaniac/internal/processor"
	"github.com/Raumberg/XLmaniac/internal/table"
	"github.com/Raumberg/XLmaniac/internal/xlio"
)

var (
	outPath string
	zaim    bool
	verbose bool
)

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Decode one register export and write the normalized table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(args[0])
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVarP(&outPath, "out", "o", "",
		"Output path (default: <input>_decoded.xlsx)")
	processCmd.Flags().BoolVar(&zaim, "zaim", false,
		"Apply the legacy single-identifier phone strategy")
	processCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
}

func runProcess(path string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tables, err := xlio.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	proc := processor.New(cfg, log)

	var decoded *table.Table

	switch {
	case xlio.IsPost(tables):
		log.Info("post layout detected", "file", path)
		decoded, err = proc.ProcessPost(
			tables[xlio.SheetContracts],
			tables[xlio.SheetAddresses],
			tables[xlio.SheetTelephones],
		)
	case zaim:
		decoded, err = proc.ProcessZaim(tables[xlio.DefaultSheet])
	default:
		decoded, err = proc.Process(tables[xlio.DefaultSheet])
	}

	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}

	out := outPath
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "_decoded.xlsx"
	}

	if err := xlio.WriteFile(out, decoded); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	log.Info("decoded", "rows", decoded.NumRows(), "columns", len(decoded.Columns()), "out", out)

	return nil
}
