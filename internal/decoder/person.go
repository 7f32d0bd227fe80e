package decoder

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/Raumberg/XLmaniac/internal/table"
)

// regAddrCols and livAddrCols are the granular address sub-fields some
// exports ship instead of a single address string.
var (
	regAddrCols = []string{"rg_reg", "np_reg", "st_reg", "hs_reg", "cp_reg", "ft_reg"}
	livAddrCols = []string{"rg_liv", "np_liv", "st_liv", "hs_liv", "cp_liv", "ft_liv"}
)

// maleSuffixes are the patronymic/surname endings that imply male sex.
var maleSuffixes = map[string]struct{}{"ич": {}, "ов": {}, "ин": {}}

// Person normalizes client identity: name splitting, sex inference,
// workplace and mail cleanup, address concatenation.
type Person struct {
	work string // default workplace label for blank positions
	log  *slog.Logger
}

func NewPerson(work string, log *slog.Logger) *Person {
	return &Person{work: work, log: log}
}

func (d *Person) Name() string { return "person" }

func (d *Person) Decode(t *table.Table) *table.Table {
	d.splitNames(t)
	d.findSex(t)
	d.workplace(t)
	d.mail(t)
	d.addresses(t)

	return t
}

// splitNames expands the full-name column variants into the canonical name
// columns. fio_full is surname-first, ifo_full is first-name-first.
func (d *Person) splitNames(t *table.Table) {
	if t.HasColumn(ColFioFull) {
		d.log.Info("found [fio_full], splitting names")

		for i := range t.NumRows() {
			v, _ := t.Cell(i, ColFioFull)

			parts, ok := splitName(table.AsString(v))
			if !ok {
				d.log.Warn("could not split fio_full", "row", i)
				continue
			}

			t.SetCell(i, ColSurname, parts[0])
			t.SetCell(i, ColFirstName, parts[1])
			t.SetCell(i, ColLastName, parts[2])

			if parts[3] != "" {
				t.SetCell(i, ColAddedName, parts[3])
			}
		}
	}

	if t.HasColumn(ColIfoFull) {
		d.log.Info("found [ifo_full], splitting names")

		for i := range t.NumRows() {
			v, _ := t.Cell(i, ColIfoFull)

			parts, ok := splitName(table.AsString(v))
			if !ok {
				d.log.Warn("could not split ifo_full", "row", i)
				continue
			}

			t.SetCell(i, ColFirstName, parts[0])
			t.SetCell(i, ColSurname, parts[1])
			t.SetCell(i, ColLastName, parts[2])

			if parts[3] != "" {
				t.SetCell(i, ColAddedName, parts[3])
			}

			if parts[4] != "" {
				t.SetCell(i, ColPostfix, parts[4])
			}
		}
	}
}

// splitName splits a full name into up to five positional tokens. Runs of
// whitespace collapse, which recovers the double-space rows that break a
// naive split. Returns false when fewer than three tokens remain.
func splitName(s string) ([5]string, bool) {
	var parts [5]string

	fields := strings.Fields(s)
	if len(fields) < 3 {
		return parts, false
	}

	copy(parts[:4], fields)

	if len(fields) > 4 {
		parts[4] = strings.Join(fields[4:], " ")
	}

	return parts, true
}

// findSex maps an explicit sex column, or infers sex from the patronymic
// suffix of the last name when no sex column exists.
func (d *Person) findSex(t *table.Table) {
	if t.HasColumn(ColSex) {
		d.log.Info("found [sex], mapping values")

		for i := range t.NumRows() {
			v, _ := t.Cell(i, ColSex)
			t.SetCell(i, ColSex, mapSex(v))
		}

		return
	}

	if !t.HasColumn(ColLastName) {
		return
	}

	d.log.Info("[sex] not found, inferring from [last_name]")

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColLastName)
		t.SetCell(i, ColSex, inferSex(table.AsString(v)))
	}
}

func mapSex(v any) string {
	if s := table.AsString(v); s == "Женский" || s == "Ж" || s == "1" {
		return "Ж"
	}

	return "М"
}

// inferSex is a pure function of the last name: the suffixes ич/ов/ин
// imply male, everything else female.
func inferSex(lastName string) string {
	runes := []rune(lastName)
	if len(runes) < 2 {
		return "Ж"
	}

	if _, ok := maleSuffixes[string(runes[len(runes)-2:])]; ok {
		return "М"
	}

	return "Ж"
}

// workplace fills the work column from position, defaulting blanks to the
// configured placeholder.
func (d *Person) workplace(t *table.Table) {
	if !t.HasColumn(ColPosition) {
		return
	}

	d.log.Info("found [position], mapping workplace")

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColPosition)

		if table.IsBlank(v) {
			t.SetCell(i, ColWork, d.work)
		} else {
			t.SetCell(i, ColWork, table.AsString(v))
		}
	}
}

// mailSentinels are checked after lowercasing.
var mailSentinels = map[string]struct{}{
	"не задано": {},
	"null":      {},
	" null":     {},
	"nan":       {},
}

func (d *Person) mail(t *table.Table) {
	if t.HasColumn(ColMail) {
		d.log.Info("found [mail] (unique), mapping mail")

		for i := range t.NumRows() {
			v, _ := t.Cell(i, ColMail)

			s := strings.ToLower(table.AsString(v))
			if _, sentinel := mailSentinels[s]; sentinel {
				s = ""
			}

			t.SetCell(i, ColMail, s)
		}
	}

	if t.HasColumn(ColMails) {
		d.log.Info("found [mails] (multiple), splitting")

		for i := range t.NumRows() {
			v, _ := t.Cell(i, ColMails)

			for j, m := range strings.Split(table.AsString(v), ",") {
				m = strings.TrimSpace(m)
				if m != "" {
					t.SetCell(i, "m"+strconv.Itoa(j+1), m)
				}
			}
		}
	}
}

// addresses concatenates the granular registration and living sub-fields
// into reg_addr/home_addr and drops the sources. A home address equal to
// the registration address is blanked.
func (d *Person) addresses(t *table.Table) {
	for _, col := range append(append([]string{}, regAddrCols...), livAddrCols...) {
		if !t.HasColumn(col) {
			return
		}
	}

	d.log.Info("found registration and living columns, concatenating")

	for i := range t.NumRows() {
		t.SetCell(i, ColRegAddr, joinCells(t, i, regAddrCols))
		t.SetCell(i, ColHomeAddr, joinCells(t, i, livAddrCols))
	}

	t.DropColumns(regAddrCols...)
	t.DropColumns(livAddrCols...)

	for i := range t.NumRows() {
		reg, _ := t.Cell(i, ColRegAddr)
		home, _ := t.Cell(i, ColHomeAddr)

		if table.AsString(reg) == table.AsString(home) {
			t.SetCell(i, ColHomeAddr, "")
		}
	}
}

func joinCells(t *table.Table, row int, cols []string) string {
	parts := make([]string, 0, len(cols))

	for _, col := range cols {
		v, _ := t.Cell(row, col)
		parts = append(parts, table.AsString(v))
	}

	return strings.Join(parts, ", ")
}
