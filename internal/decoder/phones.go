package decoder

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/Raumberg/XLmaniac/internal/table"
)

// Legacy single-identifier phone column and its derived columns.
const (
	ColZaimPhone     = "phone_num_zaim"
	ColContactPerson = "contact_person"
	ColZaimCode      = "zaim_phone_code"
	ColZaimRest      = "zaim_phone_rest"
)

const maxPhoneSlots = 20

// phoneColumns is the fixed enumerated set of recognized phone-bearing
// column names: "phones"/"phones_N" hold delimiter-joined lists, "pN"
// holds one number per cell.
var phoneColumns = buildPhoneColumns()

func buildPhoneColumns() []string {
	cols := []string{"phones"}

	for i := 2; i <= maxPhoneSlots; i++ {
		cols = append(cols, "phones_"+strconv.Itoa(i))
	}

	for i := 1; i <= maxPhoneSlots; i++ {
		cols = append(cols, "p"+strconv.Itoa(i))
	}

	return cols
}

var singlePhoneRe = regexp.MustCompile(`^p\d{1,2}$`)

// phoneCandidateRe extracts phone-number-looking fragments from free text
// for the fallback match when a strict parse fails.
var phoneCandidateRe = regexp.MustCompile(`\+?\d[\d\s\-().]{5,}\d`)

// phonePlaceholders are string artifacts that stand in for "no phone".
var phonePlaceholders = map[string]struct{}{"nan": {}, "Нет": {}}

// Phones detects single- and multi-valued phone columns, splits and
// normalizes numbers into E.164 with derived code/body columns. The POST
// entry point additionally pivots a one-row-per-phone layout into wide
// columns before the standard pass.
type Phones struct {
	region string // default region for strict parsing
	log    *slog.Logger
}

func NewPhones(region string, log *slog.Logger) *Phones {
	return &Phones{region: region, log: log}
}

func (d *Phones) Name() string { return "phones" }

func (d *Phones) Decode(t *table.Table) *table.Table {
	multi, single := classifyPhoneColumns(t)
	d.log.Info("phone columns classified", "multi", multi, "single", single)

	expanded := d.expandMulti(t, multi)
	d.normalizeColumns(t, expanded)
	d.normalizeColumns(t, single)
	d.cleanPlaceholders(t, append(multi, expanded...))

	return t
}

// classifyPhoneColumns scans the table for the recognized phone columns
// and partitions them into multi-valued and single-valued sets.
func classifyPhoneColumns(t *table.Table) (multi, single []string) {
	for _, col := range phoneColumns {
		if !t.HasColumn(col) {
			continue
		}

		if strings.HasPrefix(col, "phones") {
			multi = append(multi, col)
		} else if singlePhoneRe.MatchString(col) {
			single = append(single, col)
		}
	}

	return multi, single
}

// expandMulti splits every multi-valued column into one column per ordinal
// position (`<col>|p1`, `<col>|p2`, ...) up to the longest list found.
// Returns the names of the columns created.
func (d *Phones) expandMulti(t *table.Table, multi []string) []string {
	var expanded []string

	for _, col := range multi {
		delimiter := detectDelimiter(t, col)
		d.log.Info("expanding multi-valued phones", "column", col, "delimiter", delimiter)

		split := make([][]string, t.NumRows())
		maxLen := 0

		for i := range t.NumRows() {
			v, _ := t.Cell(i, col)

			tokens := splitPhoneList(table.AsString(v), delimiter)
			split[i] = tokens

			if len(tokens) > maxLen {
				maxLen = len(tokens)
			}
		}

		for j := range maxLen {
			name := col + "|p" + strconv.Itoa(j+1)
			expanded = append(expanded, name)
			t.AddColumn(name)

			for i := range t.NumRows() {
				if j < len(split[i]) {
					t.SetCell(i, name, split[i][j])
				}
			}
		}
	}

	return expanded
}

// detectDelimiter checks the column's values for "," then ";", falling
// back to tab when neither occurs.
func detectDelimiter(t *table.Table, col string) string {
	for _, delimiter := range []string{",", ";"} {
		for i := range t.NumRows() {
			v, _ := t.Cell(i, col)
			if strings.Contains(table.AsString(v), delimiter) {
				return delimiter
			}
		}
	}

	return "\t"
}

func splitPhoneList(s, delimiter string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, delimiter)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}

	return parts
}

// normalizeColumns rewrites every cell of the named columns into E.164 and
// derives the `_code` and `_body` columns.
func (d *Phones) normalizeColumns(t *table.Table, cols []string) {
	for _, col := range cols {
		d.log.Info("normalizing phone column", "column", col)

		for i := range t.NumRows() {
			v, _ := t.Cell(i, col)

			formatted := d.normalize(table.AsString(v))
			code, body := splitFormatted(formatted)

			t.SetCell(i, col, formatted)
			t.SetCell(i, col+"_code", code)
			t.SetCell(i, col+"_body", body)
		}
	}
}

// normalize parses a raw value into E.164. A strict parse against the
// default region is attempted first; on failure the value is scanned for
// phone-looking fragments and the first parseable one wins. Malformed
// input yields an empty string, never an error.
func (d *Phones) normalize(raw string) string {
	s := strings.TrimSuffix(strings.TrimSpace(raw), ".0")
	if s == "" {
		return ""
	}

	if num, err := phonenumbers.Parse(s, d.region); err == nil {
		return phonenumbers.Format(num, phonenumbers.E164)
	}

	for _, candidate := range phoneCandidateRe.FindAllString(s, -1) {
		if num, err := phonenumbers.Parse(candidate, d.region); err == nil {
			return phonenumbers.Format(num, phonenumbers.E164)
		}
	}

	return ""
}

// splitFormatted cuts an E.164 value into the operator/area code
// (characters 2-4) and the subscriber number. Empty input yields two
// empty strings.
func splitFormatted(s string) (code, body string) {
	if s == "" {
		return "", ""
	}

	if len(s) <= 5 {
		return s[min(2, len(s)):], ""
	}

	return s[2:5], s[5:]
}

// cleanPlaceholders blanks "no phone" artifacts left in list columns.
func (d *Phones) cleanPlaceholders(t *table.Table, cols []string) {
	for _, col := range cols {
		for i := range t.NumRows() {
			v, _ := t.Cell(i, col)

			if _, ok := phonePlaceholders[table.AsString(v)]; ok {
				t.SetCell(i, col, "")
			}
		}
	}
}

// DecodePost pivots the long phone layout (one row per record id, phone
// value and phone type) into wide p<N> columns, then runs the standard
// normalization. A sheet without the phone_type column is a contract
// violation the caller cannot proceed from, so it propagates as an error.
func (d *Phones) DecodePost(t *table.Table) (*table.Table, error) {
	if !t.HasColumn(ColPhoneType) {
		return nil, fmt.Errorf("column %q not found in phones sheet", ColPhoneType)
	}

	d.log.Info("pivoting long phone layout")

	// 1-based sequence number per record id, in row order.
	seq := make([]int, t.NumRows())
	counts := make(map[string]int)
	order := make([]string, 0)

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColID)

		id := table.AsString(v)
		if counts[id] == 0 {
			order = append(order, id)
		}

		counts[id]++
		seq[i] = counts[id]
	}

	maxSeq := 0
	for _, n := range counts {
		if n > maxSeq {
			maxSeq = n
		}
	}

	wide := table.New(ColID)
	for j := 1; j <= maxSeq; j++ {
		wide.AddColumn("p" + strconv.Itoa(j))
	}

	rows := make(map[string]table.Row, len(order))

	for _, id := range order {
		row := table.Row{ColID: id}
		rows[id] = row
		wide.AppendRow(row)
	}

	for i := range t.NumRows() {
		idv, _ := t.Cell(i, ColID)
		pv, _ := t.Cell(i, "p1")

		rows[table.AsString(idv)]["p"+strconv.Itoa(seq[i])] = pv
	}

	return d.Decode(wide), nil
}

// DecodeZaim handles the legacy single-identifier layout: the column holds
// a raw value carrying both the number and a contact name at a fixed
// offset. It is mutually exclusive with the generic strategy.
func (d *Phones) DecodeZaim(t *table.Table, region string) *table.Table {
	if !t.HasColumn(ColZaimPhone) {
		return t
	}

	d.log.Info("found [phone_num_zaim] (unique), applying zaim mapping")

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColZaimPhone)

		raw := table.AsString(v)
		if raw == "" {
			continue
		}

		t.SetCell(i, ColContactPerson, contactName(raw))

		formatted := d.zaimNormalize(raw, region)
		t.SetCell(i, ColZaimPhone, formatted)

		if len(formatted) >= 4 {
			t.SetCell(i, ColZaimCode, formatted[1:4])
			t.SetCell(i, ColZaimRest, formatted[4:])
		} else {
			t.SetCell(i, ColZaimCode, "")
			t.SetCell(i, ColZaimRest, "")
		}
	}

	return t
}

// contactName slices the contact name out of the raw value: it starts at a
// fixed offset and is closed by a trailing parenthesis.
func contactName(raw string) string {
	runes := []rune(raw)
	if len(runes) <= 20 {
		return ""
	}

	return strings.TrimRight(string(runes[20:]), ")")
}

// zaimNormalize parses against the legacy region and drops the leading
// "+" of the E.164 form. The raw value carries the contact name after the
// number, so a failed strict parse falls back to scanning for the first
// phone-looking fragment.
func (d *Phones) zaimNormalize(raw, region string) string {
	s := strings.ReplaceAll(raw, " ", "")

	num, err := phonenumbers.Parse(s, region)
	if err == nil {
		return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+")
	}

	for _, candidate := range phoneCandidateRe.FindAllString(s, -1) {
		if num, err := phonenumbers.Parse(candidate, region); err == nil {
			return strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+")
		}
	}

	d.log.Info("could not parse zaim phone", "raw", raw)

	return ""
}
