package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raumberg/XLmaniac/internal/table"
)

func TestFrameDropsSyntheticColumns(t *testing.T) {
	tbl := table.New("Unnamed: 0", "surname", "Unnamed: 7")
	tbl.AppendRow(table.Row{"Unnamed: 0": "0", "surname": "Иванов", "Unnamed: 7": "x"})

	out := NewFrame(testLogger()).Decode(tbl)
	require.NotNil(t, out)

	assert.Equal(t, []string{"surname"}, out.Columns())
}

func TestFrameReplacesNullSentinels(t *testing.T) {
	tbl := table.New("surname", "comment")
	tbl.AppendRow(table.Row{"surname": "null", "comment": " null "})
	tbl.AppendRow(table.Row{"surname": "Иванов", "comment": "nan"})

	out := NewFrame(testLogger()).Decode(tbl)

	assert.Equal(t, "", cellString(t, out, 0, "surname"))
	assert.Equal(t, "", cellString(t, out, 0, "comment"))
	assert.Equal(t, "Иванов", cellString(t, out, 1, "surname"))
	assert.Equal(t, "", cellString(t, out, 1, "comment"))
}

func TestFrameFillsMissingCells(t *testing.T) {
	tbl := table.New("total_sum", "surname")
	tbl.AppendRow(table.Row{"total_sum": 100.5, "surname": "Иванов"})
	tbl.AppendRow(table.Row{"total_sum": nil, "surname": nil})

	out := NewFrame(testLogger()).Decode(tbl)

	v, _ := out.Cell(1, "total_sum")
	assert.Equal(t, 0.0, v)

	v, _ = out.Cell(1, "surname")
	assert.Equal(t, "", v)
}

func TestFrameAllNilColumnFillsEmptyString(t *testing.T) {
	tbl := table.New("x")
	tbl.AppendRow(table.Row{"x": nil})

	out := NewFrame(testLogger()).Decode(tbl)

	v, _ := out.Cell(0, "x")
	assert.Equal(t, "", v)
}

func TestFrameIdempotent(t *testing.T) {
	tbl := table.New("Unnamed: 0", "total_sum", "surname")
	tbl.AppendRow(table.Row{"Unnamed: 0": "0", "total_sum": nil, "surname": "null"})

	frame := NewFrame(testLogger())
	once := frame.Decode(tbl)

	cols := once.Columns()
	v0, _ := once.Cell(0, "total_sum")
	v1, _ := once.Cell(0, "surname")

	twice := frame.Decode(once)

	assert.Equal(t, cols, twice.Columns())

	w0, _ := twice.Cell(0, "total_sum")
	w1, _ := twice.Cell(0, "surname")
	assert.Equal(t, v0, w0)
	assert.Equal(t, v1, w1)
}
