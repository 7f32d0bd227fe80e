// Package xlio reads and writes the tabular files the pipeline exchanges
// with the outside world. The core is indifferent to the on-disk format:
// xlsx workbooks, delimited text and json records all map to the same
// in-memory table.
package xlio

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	enc "github.com/Raumberg/XLmaniac/internal/encoding"
	"github.com/Raumberg/XLmaniac/internal/table"
)

// POST workbook sheet names.
const (
	SheetContracts  = "Договоры"
	SheetTelephones = "Телефоны"
	SheetAddresses  = "Адреса"

	// DefaultSheet keys the single table of non-POST inputs.
	DefaultSheet = "default"
)

// ReadFile loads a tabular file into a sheet-name → table map. Workbooks
// carrying the POST sheets yield one table per recognized sheet; anything
// else yields a single table under DefaultSheet.
func ReadFile(path string) (map[string]*table.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return readWorkbook(path)
	case ".csv":
		t, err := readCSV(path)
		if err != nil {
			return nil, err
		}

		return map[string]*table.Table{DefaultSheet: t}, nil
	case ".json":
		t, err := readJSON(path)
		if err != nil {
			return nil, err
		}

		return map[string]*table.Table{DefaultSheet: t}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(path))
	}
}

// IsPost reports whether the read result carries the three POST entity
// sheets.
func IsPost(tables map[string]*table.Table) bool {
	_, ctr := tables[SheetContracts]
	_, tlf := tables[SheetTelephones]
	_, adr := tables[SheetAddresses]

	return ctr && tlf && adr
}

func readWorkbook(path string) (map[string]*table.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	postSheets := []string{SheetContracts, SheetTelephones, SheetAddresses}
	tables := map[string]*table.Table{}

	for _, sheet := range postSheets {
		for _, name := range sheets {
			if name != sheet {
				continue
			}

			t, err := sheetToTable(f, name)
			if err != nil {
				return nil, fmt.Errorf("read sheet %s: %w", name, err)
			}

			tables[name] = t
		}
	}

	// A workbook carrying only some of the three entity sheets cannot be
	// joined, so it is read as a plain single-table export instead.
	if len(tables) == len(postSheets) {
		return tables, nil
	}

	t, err := sheetToTable(f, sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	return map[string]*table.Table{DefaultSheet: t}, nil
}

func sheetToTable(f *excelize.File, sheet string) (*table.Table, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	return rowsToTable(rows), nil
}

// rowsToTable uses the first row with at least two filled cells as the
// header landmark; preamble rows above it are skipped. Unnamed header
// cells become synthetic positional columns the final cleanup drops.
func rowsToTable(rows [][]string) *table.Table {
	headerIdx := -1

	for i, row := range rows {
		filled := 0

		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				filled++
			}
		}

		if filled >= 2 {
			headerIdx = i
			break
		}
	}

	if headerIdx < 0 {
		return table.New()
	}

	header := make([]string, len(rows[headerIdx]))

	for i, cell := range rows[headerIdx] {
		name := strings.TrimSpace(cell)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}

		header[i] = name
	}

	t := table.New(header...)

	for _, row := range rows[headerIdx+1:] {
		r := table.Row{}

		for i, col := range header {
			if i < len(row) && strings.TrimSpace(row[i]) != "" {
				r[col] = strings.TrimSpace(row[i])
			}
		}

		t.AppendRow(r)
	}

	return t
}

func readCSV(path string) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	return ReadCSV(f)
}

// ReadCSV decodes delimited text from any encoding these exports arrive
// in. The delimiter is sniffed from the first line.
func ReadCSV(r io.Reader) (*table.Table, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.Comma = sniffDelimiter(string(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	return rowsToTable(rows), nil
}

// sniffDelimiter picks the separator that occurs most in the first line.
func sniffDelimiter(data string) rune {
	line, _, _ := strings.Cut(data, "\n")

	best, count := ',', strings.Count(line, ",")

	if n := strings.Count(line, ";"); n > count {
		best, count = ';', n
	}

	if n := strings.Count(line, "\t"); n > count {
		best = '\t'
	}

	return best
}

func readJSON(path string) (*table.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open json: %w", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}

	t := table.New()

	for _, rec := range records {
		t.AppendRow(table.Row(rec))
	}

	return t, nil
}
