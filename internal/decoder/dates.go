package decoder

import (
	"log/slog"
	"time"

	"github.com/Raumberg/XLmaniac/internal/table"
)

// dateLayout is the textual day.month.year form the exports use.
const dateLayout = "02.01.2006"

// dateColumns are the four date-bearing fields subject to parsing.
var dateColumns = []string{ColBirthDate, ColPassportDate, ColCreditStartDate, ColCreditEndDate}

// Dates parses the known date columns into date values, dropping any
// time-of-day component. Each column is guarded independently: a column
// with an unparseable cell is left untouched and does not block the rest.
type Dates struct {
	log *slog.Logger
}

func NewDates(log *slog.Logger) *Dates {
	return &Dates{log: log}
}

func (d *Dates) Name() string { return "dates" }

func (d *Dates) Decode(t *table.Table) *table.Table {
	for _, col := range dateColumns {
		if !t.HasColumn(col) {
			continue
		}

		d.log.Info("formatting dates", "column", col)

		if err := formatDateColumn(t, col); err != nil {
			d.log.Warn("could not format date column", "column", col, "error", err)
		}
	}

	return t
}

// formatDateColumn parses the whole column before writing anything back,
// so a bad cell leaves the column in its original state.
func formatDateColumn(t *table.Table, col string) error {
	parsed := make([]any, t.NumRows())

	for i := range t.NumRows() {
		v, _ := t.Cell(i, col)

		d, err := parseDate(v)
		if err != nil {
			return err
		}

		parsed[i] = d
	}

	for i, v := range parsed {
		t.SetCell(i, col, v)
	}

	return nil
}

func parseDate(v any) (any, error) {
	if d, ok := v.(time.Time); ok {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	s := table.AsString(v)
	if s == "" {
		return nil, nil
	}

	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}

	return d, nil
}
