package decoder

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Raumberg/XLmaniac/internal/table"
)

// Scheme labels derived from comparing the declared total against the
// computed one. They are in-band classification results, never errors.
const (
	SchemeFullCollect    = "FULL_COLLECT"
	SchemeBackToSchedule = "BACK_TO_SCHEDULE"
	SchemeUnset          = "UNABLE TO SET FIELDS"
)

// Debt computes the total outstanding sum under three mutually exclusive
// input shapes and classifies the collection scheme per row.
type Debt struct {
	log *slog.Logger
}

func NewDebt(log *slog.Logger) *Debt {
	return &Debt{log: log}
}

func (d *Debt) Name() string { return "debt" }

func (d *Debt) Decode(t *table.Table) *table.Table {
	d.cleanTotalDebt(t)

	switch {
	case t.HasColumn(ColFinalCurrent) && t.HasColumn(ColFinalCurrentPct):
		d.log.Info("found [fcd] and [fcp], computing total sum")
		d.sumWithFinalCurrent(t)
	case !t.HasColumn(ColCurrentDebt) || !t.HasColumn(ColCurrentPercent):
		d.log.Info("no current debt columns, applying full-collect sum")
		d.sumOverdueOnly(t)
	default:
		d.log.Info("found [current_debt] and [current_percent], computing calc columns")
		d.sumWithCurrent(t)
	}

	d.setScheme(t)

	return t
}

// cleanTotalDebt coerces null sentinels in total_debt to zero before any
// branch runs.
func (d *Debt) cleanTotalDebt(t *table.Table) {
	if !t.HasColumn(ColTotalDebt) {
		return
	}

	for i := range t.NumRows() {
		v, _ := t.Cell(i, ColTotalDebt)

		if v == nil {
			t.SetCell(i, ColTotalDebt, 0.0)
			continue
		}

		if s, ok := v.(string); ok && (s == "" || isNullSentinel(s)) {
			t.SetCell(i, ColTotalDebt, 0.0)
		}
	}
}

// term reads a cell as a decimal, defaulting to zero when the column is
// absent or the value does not parse.
func term(t *table.Table, row int, col string) decimal.Decimal {
	v, ok := t.Cell(row, col)
	if !ok {
		return decimal.Zero
	}

	f, ok := table.AsFloat(v)
	if !ok {
		return decimal.Zero
	}

	return decimal.NewFromFloat(f)
}

func (d *Debt) sumWithFinalCurrent(t *table.Table) {
	for i := range t.NumRows() {
		sum := term(t, i, ColFinalCurrent).
			Add(term(t, i, ColFinalCurrentPct)).
			Add(term(t, i, ColOverdueDebt)).
			Add(term(t, i, ColOverduePercent)).
			Add(term(t, i, ColFines)).
			Add(term(t, i, ColComission)).
			Add(term(t, i, ColStateDuty))

		t.SetCell(i, ColTotalSum, sum.InexactFloat64())
	}
}

func (d *Debt) sumOverdueOnly(t *table.Table) {
	for i := range t.NumRows() {
		sum := term(t, i, ColOverdueDebt).
			Add(term(t, i, ColOverduePercent)).
			Add(term(t, i, ColComission)).
			Add(term(t, i, ColFines))

		t.SetCell(i, ColTotalSum, sum.InexactFloat64())
	}
}

// sumWithCurrent derives the calc columns by subtracting the overdue parts
// from the current ones, then totals everything back up.
func (d *Debt) sumWithCurrent(t *table.Table) {
	for i := range t.NumRows() {
		debtCalc := term(t, i, ColCurrentDebt).Sub(term(t, i, ColOverdueDebt))
		pctCalc := term(t, i, ColCurrentPercent).Sub(term(t, i, ColOverduePercent))

		t.SetCell(i, ColCurrentDebtCalc, debtCalc.InexactFloat64())
		t.SetCell(i, ColCurrentPercentCalc, pctCalc.InexactFloat64())

		sum := debtCalc.
			Add(term(t, i, ColOverdueDebt)).
			Add(pctCalc).
			Add(term(t, i, ColOverduePercent)).
			Add(term(t, i, ColComission)).
			Add(term(t, i, ColFines))

		t.SetCell(i, ColTotalSum, sum.InexactFloat64())
	}
}

// setScheme classifies each row by comparing total_debt and total_sum
// on whole units. Rows where either column is absent get no
// assignment; rows where a present value does not parse are explicitly
// marked instead of dropped.
func (d *Debt) setScheme(t *table.Table) {
	if !t.HasColumn(ColTotalDebt) || !t.HasColumn(ColTotalSum) {
		return
	}

	for i := range t.NumRows() {
		t.SetCell(i, ColScheme, schemeFor(t, i))
	}
}

func schemeFor(t *table.Table, row int) string {
	tdv, _ := t.Cell(row, ColTotalDebt)
	tsv, _ := t.Cell(row, ColTotalSum)

	td, ok1 := table.AsFloat(tdv)
	ts, ok2 := table.AsFloat(tsv)

	if !ok1 || !ok2 {
		return SchemeUnset
	}

	// Fractional parts are dropped for the comparison: totals that agree
	// on whole units count as collected in full.
	if decimal.NewFromFloat(td).Truncate(0).Equal(decimal.NewFromFloat(ts).Truncate(0)) {
		return SchemeFullCollect
	}

	return SchemeBackToSchedule
}
