package decoder

import (
	"log/slog"
	"strings"

	"github.com/Raumberg/XLmaniac/internal/table"
)

// syntheticPrefix marks positional index columns readers emit for
// unnamed spreadsheet columns.
const syntheticPrefix = "Unnamed"

// Frame is the final mechanical cleanup pass: it drops synthetic index
// columns, blanks null-sentinel strings and fills missing numeric cells
// with zero. It runs after all semantic decoders and is idempotent.
type Frame struct {
	log *slog.Logger
}

func NewFrame(log *slog.Logger) *Frame {
	return &Frame{log: log}
}

func (d *Frame) Name() string { return "frame" }

func (d *Frame) Decode(t *table.Table) *table.Table {
	d.dropSynthetic(t)
	d.replaceNulls(t)

	return t
}

func (d *Frame) dropSynthetic(t *table.Table) {
	var drop []string

	for _, col := range t.Columns() {
		if strings.HasPrefix(col, syntheticPrefix) {
			drop = append(drop, col)
		}
	}

	if len(drop) > 0 {
		d.log.Info("dropping synthetic columns", "columns", drop)
		t.DropColumns(drop...)
	}
}

// replaceNulls blanks sentinel strings in text cells and fills absent
// cells: zero in columns that otherwise hold numbers, empty string
// elsewhere.
func (d *Frame) replaceNulls(t *table.Table) {
	numeric := map[string]bool{}

	for _, col := range t.Columns() {
		numeric[col] = columnIsNumeric(t, col)
	}

	for _, col := range t.Columns() {
		for i := range t.NumRows() {
			v, _ := t.Cell(i, col)

			switch x := v.(type) {
			case nil:
				if numeric[col] {
					t.SetCell(i, col, 0.0)
				} else {
					t.SetCell(i, col, "")
				}
			case string:
				if isNullSentinel(strings.TrimSpace(x)) {
					t.SetCell(i, col, "")
				}
			}
		}
	}
}

// columnIsNumeric reports whether every present cell of the column holds
// a number.
func columnIsNumeric(t *table.Table, col string) bool {
	seen := false

	for i := range t.NumRows() {
		v, _ := t.Cell(i, col)
		if v == nil {
			continue
		}

		switch v.(type) {
		case float64, float32, int, int64:
			seen = true
		default:
			return false
		}
	}

	return seen
}
