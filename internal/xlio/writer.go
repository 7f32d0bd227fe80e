package xlio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Raumberg/XLmaniac/internal/table"
)

// WriteFile persists a decoded table in the format the extension names.
func WriteFile(path string, t *table.Table) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return writeWorkbook(path, t)
	case ".csv":
		return writeCSV(path, t)
	case ".json":
		return writeJSON(path, t)
	default:
		return fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}
}

func writeWorkbook(path string, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	cols := t.Columns()

	header := make([]any, len(cols))
	for i, col := range cols {
		header[i] = col
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < t.NumRows(); i++ {
		row := make([]any, len(cols))

		for j, col := range cols {
			v, _ := t.Cell(i, col)
			row[j] = v
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}

		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	return nil
}

func writeCSV(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	cols := t.Columns()

	if err := w.Write(cols); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(cols))

	for i := 0; i < t.NumRows(); i++ {
		for j, col := range cols {
			v, _ := t.Cell(i, col)
			record[j] = table.AsString(v)
		}

		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()

	return w.Error()
}

func writeJSON(path string, t *table.Table) error {
	cols := t.Columns()

	records := make([]map[string]any, 0, t.NumRows())

	for i := 0; i < t.NumRows(); i++ {
		rec := map[string]any{}

		for _, col := range cols {
			v, _ := t.Cell(i, col)
			rec[col] = v
		}

		records = append(records, rec)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}

	return nil
}
