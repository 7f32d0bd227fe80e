package decoder

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/Raumberg/XLmaniac/internal/refdata"
	"github.com/Raumberg/XLmaniac/internal/table"
)

// CurrencyError is the in-band marker for rows whose currency column holds
// something other than rubles. It flags the data for manual review instead
// of failing the batch.
const CurrencyError = "ERROR_CHECK_CURRENCY"

var firstIntRe = regexp.MustCompile(`\d+`)

// Register normalizes the registry metadata: currency, composite ids,
// product classification and lifetime stamps.
type Register struct {
	currency  string
	placement int
	regName   string
	regDate   any
	log       *slog.Logger
}

func NewRegister(currency string, placement int, regName string, regDate any, log *slog.Logger) *Register {
	return &Register{
		currency:  currency,
		placement: placement,
		regName:   regName,
		regDate:   regDate,
		log:       log,
	}
}

func (d *Register) Name() string { return "register" }

func (d *Register) Decode(t *table.Table) *table.Table {
	d.mapCurrency(t)
	d.concatenateIDs(t)
	d.classifyProducts(t)
	d.lifetimes(t)

	return t
}

// mapCurrency normalizes a ruble column to the configured code, marks
// anything else for review, and synthesizes the column when absent.
func (d *Register) mapCurrency(t *table.Table) {
	if !t.HasColumn(ColCurrency) {
		d.log.Info("adding currency column", "currency", d.currency)
		t.AddColumn(ColCurrency)

		for i := range t.NumRows() {
			t.SetCell(i, ColCurrency, d.currency)
		}

		return
	}

	d.log.Info("mapping currency")

	rub := false

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColCurrency)
		if s := table.AsString(v); s == "RUB" || s == "RUR" {
			rub = true
			break
		}
	}

	value := d.currency
	if !rub {
		value = CurrencyError
	}

	for i := range t.NumRows() {
		t.SetCell(i, ColCurrency, value)
	}
}

// concatenateIDs joins the three identifier columns pipe-delimited into
// the extend column and drops the originals.
func (d *Register) concatenateIDs(t *table.Table) {
	if !t.HasColumn(ColClientID) || !t.HasColumn(ColCreditID) || !t.HasColumn(ColOuterID) {
		return
	}

	d.log.Info("found [client_id], [credit_id] and [outer_id], concatenating")

	for i := range t.NumRows() {
		client, _ := t.Cell(i, ColClientID)
		credit, _ := t.Cell(i, ColCreditID)
		outer, _ := t.Cell(i, ColOuterID)

		t.SetCell(i, ColExtend, strings.Join([]string{
			table.AsString(client),
			table.AsString(credit),
			table.AsString(outer),
		}, "|"))
	}

	t.DropColumns(ColClientID, ColCreditID, ColOuterID)
}

// classifyProducts maps the free-text product group to the closed product
// code set and its display name. Unrecognized labels get the explicit
// unclassified marker, never an error.
func (d *Register) classifyProducts(t *table.Table) {
	if !t.HasColumn(ColProductGroup) {
		return
	}

	d.log.Info("found [product_group], mapping product")

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColProductGroup)

		code := refdata.ClassifyProduct(table.AsString(v))
		t.SetCell(i, ColProduct, code)
		t.SetCell(i, ColProductName, refdata.ProductName(code))
	}
}

// lifetimes normalizes placement to its integer value (synthesizing the
// configured default when the column is absent) and stamps the constant
// registration metadata.
func (d *Register) lifetimes(t *table.Table) {
	d.log.Info("setting lifetime attributes")

	if t.HasColumn(ColPlacement) {
		for i := range t.NumRows() {
			v, _ := t.Cell(i, ColPlacement)
			t.SetCell(i, ColPlacement, extractInt(v))
		}
	} else {
		t.AddColumn(ColPlacement)

		for i := range t.NumRows() {
			t.SetCell(i, ColPlacement, d.placement)
		}
	}

	t.AddColumn(ColRegName)
	t.AddColumn(ColRegDate)

	for i := range t.NumRows() {
		t.SetCell(i, ColRegName, d.regName)
		t.SetCell(i, ColRegDate, d.regDate)
	}
}

// extractInt pulls the first integer substring out of a cell;
// non-numeric or absent values yield 0.
func extractInt(v any) int {
	if v == nil {
		return 0
	}

	match := firstIntRe.FindString(table.AsString(v))
	if match == "" {
		return 0
	}

	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}

	return n
}

// DecodeAddresses reshapes the POST address sheet: one row per (id,
// address, address type) becomes id plus fact/reg address columns. A
// sheet without the address_type column cannot be joined downstream, so
// it propagates as an error.
func (d *Register) DecodeAddresses(t *table.Table) (*table.Table, error) {
	if !t.HasColumn(ColAddressType) {
		return nil, fmt.Errorf("column %q not found in addresses sheet", ColAddressType)
	}

	d.log.Info("reshaping post addresses")

	out := table.New(ColID, "fact", "reg")

	for i := range t.NumRows() {
		id, _ := t.Cell(i, ColID)
		addr, _ := t.Cell(i, ColAddress)
		kind, _ := t.Cell(i, ColAddressType)

		row := table.Row{ColID: id}

		switch table.AsString(kind) {
		case "Фактический":
			row["fact"] = addr
		case "Регистрация":
			row["reg"] = addr
		}

		out.AppendRow(row)
	}

	return out, nil
}
