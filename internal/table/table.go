// Package table holds the in-memory record table every decoder operates on.
// Columns are not fixed ahead of time: their presence drives decoder behavior,
// so all cell access is presence-checked and never panics.
package table

import "slices"

// Row maps a column name to a dynamically typed cell value.
// A missing key and a nil value both mean "absent".
type Row map[string]any

// Table is an ordered sequence of rows with an ordered column list.
type Table struct {
	columns []string
	rows    []Row
}

func New(columns ...string) *Table {
	return &Table{columns: slices.Clone(columns)}
}

// FromRows builds a table from pre-assembled rows. Row keys not listed in
// columns are appended to the column list in first-seen order.
func FromRows(columns []string, rows []Row) *Table {
	t := New(columns...)
	for _, r := range rows {
		t.AppendRow(r)
	}

	return t
}

func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.columns, name)
}

// AddColumn registers a column without touching existing rows.
// Adding an already known column is a no-op.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
}

func (t *Table) NumRows() int {
	return len(t.rows)
}

// AppendRow adds a row, registering any unseen keys as new columns.
func (t *Table) AppendRow(r Row) {
	if r == nil {
		r = Row{}
	}

	for _, col := range t.columns {
		if _, ok := r[col]; !ok {
			r[col] = nil
		}
	}

	for key := range r {
		t.AddColumn(key)
	}

	t.rows = append(t.rows, r)
}

// Cell returns the value at (row, column). The second return is false when
// the row index is out of range or the column does not exist.
func (t *Table) Cell(i int, col string) (any, bool) {
	if i < 0 || i >= len(t.rows) || !t.HasColumn(col) {
		return nil, false
	}

	return t.rows[i][col], true
}

// SetCell writes a value, registering the column if it is new.
func (t *Table) SetCell(i int, col string, v any) {
	if i < 0 || i >= len(t.rows) {
		return
	}

	t.AddColumn(col)
	t.rows[i][col] = v
}

func (t *Table) DropColumns(names ...string) {
	for _, name := range names {
		idx := slices.Index(t.columns, name)
		if idx < 0 {
			continue
		}

		t.columns = slices.Delete(t.columns, idx, idx+1)

		for _, r := range t.rows {
			delete(r, name)
		}
	}
}

func (t *Table) RenameColumn(from, to string) {
	idx := slices.Index(t.columns, from)
	if idx < 0 || from == to {
		return
	}

	t.columns[idx] = to

	for _, r := range t.rows {
		r[to] = r[from]
		delete(r, from)
	}
}

// Join performs an inner join with other on the key column. Left row order
// is preserved; every matching right row produces one output row, with the
// right table's columns (minus the key) appended.
func Join(left, right *Table, key string) *Table {
	out := New(left.columns...)

	for _, col := range right.columns {
		if col != key {
			out.AddColumn(col)
		}
	}

	byKey := make(map[string][]Row)

	for _, r := range right.rows {
		k := AsString(r[key])
		byKey[k] = append(byKey[k], r)
	}

	for _, lr := range left.rows {
		for _, rr := range byKey[AsString(lr[key])] {
			row := Row{}
			for k, v := range lr {
				row[k] = v
			}

			for k, v := range rr {
				if k != key {
					row[k] = v
				}
			}

			out.rows = append(out.rows, row)
		}
	}

	return out
}
