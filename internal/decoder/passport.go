package decoder

import (
	"log/slog"
	"strings"
	"unicode"

	"github.com/Raumberg/XLmaniac/internal/refdata"
	"github.com/Raumberg/XLmaniac/internal/table"
)

// Foreign/domestic document labels.
const (
	DoctypeForeign  = "Паспорт ин. гос."
	DoctypeDomestic = "Паспорт РФ"
)

// Passport decomposes the passport input variants into series, number,
// date and issuing organization, classifies document nationality and
// derives the issuing region. The variants are tried in priority order:
// the concatenated "passport" string, then "passport_full", then the
// "passport_div" + "passport_series" pair. All post-processing steps are
// independently guarded.
type Passport struct {
	log *slog.Logger
}

func NewPassport(log *slog.Logger) *Passport {
	return &Passport{log: log}
}

func (d *Passport) Name() string { return "passport" }

func (d *Passport) Decode(t *table.Table) *table.Table {
	d.splitDefault(t)
	d.splitFull(t)
	d.splitDivision(t)
	d.formatSeries(t)
	d.classifyDoctype(t)
	d.mapRegion(t)
	d.cleanup(t)

	return t
}

// splitDefault handles the fully concatenated variant:
// series(4) + number(7) + organization + date(last 11 chars).
func (d *Passport) splitDefault(t *table.Table) {
	if !t.HasColumn(ColPassport) {
		return
	}

	d.log.Info("found [passport], splitting concatenated value")

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColPassport)

		s := table.AsString(v)
		if len(s) < 22 {
			d.log.Warn("passport value too short to split", "row", i)
			continue
		}

		t.SetCell(i, ColPassportSeries, s[:4])
		t.SetCell(i, ColPassportNum, s[4:11])
		t.SetCell(i, ColPassportDate, s[len(s)-11:])

		// Two separator characters sit between number and organization;
		// short values carry no organization at all.
		org := ""
		if len(s)-11 > 13 {
			org = s[13 : len(s)-11]
		}

		t.SetCell(i, ColPassportOrg, org)
	}
}

// splitFull handles series+number concatenated without organization/date.
func (d *Passport) splitFull(t *table.Table) {
	if !t.HasColumn(ColPassportFull) {
		return
	}

	d.log.Info("found [passport_full], splitting series and number")

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColPassportFull)

		series, num := splitFullValue(strings.TrimSpace(table.AsString(v)))
		t.SetCell(i, ColPassportSeries, series)
		t.SetCell(i, ColPassportNum, num)
	}
}

func splitFullValue(s string) (series, num string) {
	switch {
	case len(s) <= 6 && !isForeignDocument(s):
		// Too short to carry a series: the whole value is the number.
		return "", s
	case len(s) < 10 && !isForeignDocument(s):
		s = leftPad(s, 10)
		return s[:4], s[4:]
	default:
		if len(s) < 4 {
			return "", s
		}

		return s[:4], s[4:]
	}
}

// splitDivision handles the pair variant: a division field that may carry
// both series and number, next to a standalone series field.
func (d *Passport) splitDivision(t *table.Table) {
	if !t.HasColumn(ColPassportDiv) || !t.HasColumn(ColPassportSeries) {
		return
	}

	d.log.Info("found [passport_div], deriving series and number")

	for i := range t.NumRows() {
		div, _ := t.Cell(i, ColPassportDiv)
		series, _ := t.Cell(i, ColPassportSeries)

		divStr := table.AsString(div)
		if len(divStr) >= 11 {
			t.SetCell(i, ColPassportSeries, divStr[:5])
			t.SetCell(i, ColPassportNum, divStr[5:])
		} else {
			t.SetCell(i, ColPassportSeries, table.AsString(series))
			t.SetCell(i, ColPassportNum, divStr)
		}
	}
}

// formatSeries renders numeric series as "NN NN".
func (d *Passport) formatSeries(t *table.Table) {
	if !t.HasColumn(ColPassportSeries) {
		return
	}

	d.log.Info("formatting [passport_series]")

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColPassportSeries)
		t.SetCell(i, ColPassportSeries, formatSeriesValue(table.AsString(v)))
	}
}

// formatSeriesValue pads numeric series up to 4 digits and inserts the
// middle space. Five-digit, non-numeric and longer values pass through.
func formatSeriesValue(s string) string {
	s = truncateFloated(s)
	if s == "" {
		return s
	}

	if isDigits(s) && len(s) <= 4 {
		s = leftPad(s, 4)
		return s[:2] + " " + s[2:]
	}

	return s
}

// truncateFloated strips the ".0" spreadsheet float artifact and the
// "nan" placeholder.
func truncateFloated(s string) string {
	s = strings.TrimSuffix(s, ".0")
	if s == "nan" {
		return ""
	}

	return s
}

// classifyDoctype derives document nationality from the passport number.
// A number is foreign when its first character is alphabetic or its length
// is at least 8; domestic numbers are at most 7 digits.
func (d *Passport) classifyDoctype(t *table.Table) {
	if !t.HasColumn(ColPassportNum) {
		return
	}

	d.log.Info("classifying [doctype]")

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColPassportNum)

		if isForeignDocument(table.AsString(v)) {
			t.SetCell(i, ColDoctype, DoctypeForeign)
		} else {
			t.SetCell(i, ColDoctype, DoctypeDomestic)
		}
	}
}

func isForeignDocument(s string) bool {
	if s == "" {
		return false
	}

	runes := []rune(s)

	return unicode.IsLetter(runes[0]) || len(runes) >= 8
}

// mapRegion indexes the first two characters of the formatted series into
// the static region table.
func (d *Passport) mapRegion(t *table.Table) {
	if !t.HasColumn(ColPassportSeries) {
		return
	}

	d.log.Info("mapping [region] from series prefix")

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColPassportSeries)

		s := table.AsString(v)
		if len(s) > 2 {
			s = s[:2]
		}

		t.SetCell(i, ColRegion, refdata.Region(s))
	}
}

// cleanup pads passport numbers to 6 digits and blanks null sentinels in
// the organization column.
func (d *Passport) cleanup(t *table.Table) {
	if t.HasColumn(ColPassportNum) {
		d.log.Info("padding [passport_num] to 6 digits")

		for i := range t.NumRows() {
			v, _ := t.Cell(i, ColPassportNum)
			t.SetCell(i, ColPassportNum, leftPad(table.AsString(v), 6))
		}
	}

	if t.HasColumn(ColPassportOrg) {
		d.log.Info("blanking null sentinels in [passport_org]")

		for i := range t.NumRows() {
			v, _ := t.Cell(i, ColPassportOrg)

			if s := table.AsString(v); isNullSentinel(s) {
				t.SetCell(i, ColPassportOrg, "")
			}
		}
	}
}
