package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raumberg/XLmaniac/internal/refdata"
	"github.com/Raumberg/XLmaniac/internal/table"
)

func TestPassportSplitsConcatenated(t *testing.T) {
	tbl := table.New(ColPassport)
	tbl.AppendRow(table.Row{ColPassport: "1234567890112345678901"})

	out := NewPassport(testLogger()).Decode(tbl)
	require.NotNil(t, out)

	assert.Equal(t, "12 34", cellString(t, out, 0, ColPassportSeries))
	assert.Equal(t, "5678901", cellString(t, out, 0, ColPassportNum))
	assert.Equal(t, "12345678901", cellString(t, out, 0, ColPassportDate))
	assert.Equal(t, "", cellString(t, out, 0, ColPassportOrg))
	assert.Equal(t, DoctypeDomestic, cellString(t, out, 0, ColDoctype))
	assert.Equal(t, "Астраханская", cellString(t, out, 0, ColRegion))
}

func TestPassportSplitsConcatenatedWithOrg(t *testing.T) {
	tbl := table.New(ColPassport)
	tbl.AppendRow(table.Row{ColPassport: "45101234567, ОВД Москвы 01.02.2010"})

	out := NewPassport(testLogger()).Decode(tbl)

	assert.Equal(t, "45 10", cellString(t, out, 0, ColPassportSeries))
	assert.Equal(t, "1234567", cellString(t, out, 0, ColPassportNum))
	assert.Equal(t, "ОВД Москвы", cellString(t, out, 0, ColPassportOrg))
	assert.Equal(t, " 01.02.2010", cellString(t, out, 0, ColPassportDate))
}

func TestPassportTooShortToSplit(t *testing.T) {
	tbl := table.New(ColPassport)
	tbl.AppendRow(table.Row{ColPassport: "1234567"})

	out := NewPassport(testLogger()).Decode(tbl)
	require.NotNil(t, out)
	assert.False(t, out.HasColumn(ColPassportSeries))
}

func TestSplitFullValue(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		series string
		num    string
	}{
		{"number only", "123456", "", "123456"},
		{"seven digits padded to ten", "1234567", "0001", "234567"},
		{"full ten digits", "4510123456", "4510", "123456"},
		{"foreign short", "AB123", "AB12", "3"},
		{"too short foreign", "AB1", "", "AB1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, num := splitFullValue(tt.in)
			assert.Equal(t, tt.series, series)
			assert.Equal(t, tt.num, num)
		})
	}
}

func TestPassportSplitDivision(t *testing.T) {
	tbl := table.New(ColPassportDiv, ColPassportSeries)
	tbl.AppendRow(table.Row{ColPassportDiv: "45 10123456", ColPassportSeries: "ignored"})
	tbl.AppendRow(table.Row{ColPassportDiv: "123456", ColPassportSeries: "4510"})

	out := NewPassport(testLogger()).Decode(tbl)

	assert.Equal(t, "45 10", cellString(t, out, 0, ColPassportSeries))
	assert.Equal(t, "123456", cellString(t, out, 0, ColPassportNum))

	assert.Equal(t, "45 10", cellString(t, out, 1, ColPassportSeries))
	assert.Equal(t, "123456", cellString(t, out, 1, ColPassportNum))
}

func TestFormatSeriesValue(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"4510", "45 10"},
		{"45", "00 45"},
		{"4510.0", "45 10"},
		{"nan", ""},
		{"45104", "45104"},
		{"IX-МЮ", "IX-МЮ"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatSeriesValue(tt.in), "input %q", tt.in)
	}
}

func TestIsForeignDocument(t *testing.T) {
	assert.False(t, isForeignDocument(""))
	assert.False(t, isForeignDocument("1234567"))
	assert.True(t, isForeignDocument("12345678"))
	assert.True(t, isForeignDocument("A123"))
}

func TestPassportDoctypeAndRegion(t *testing.T) {
	tbl := table.New(ColPassportSeries, ColPassportNum)
	tbl.AppendRow(table.Row{ColPassportSeries: "4510", ColPassportNum: "123456"})
	tbl.AppendRow(table.Row{ColPassportSeries: "9901", ColPassportNum: "AB345678"})

	out := NewPassport(testLogger()).Decode(tbl)

	assert.Equal(t, DoctypeDomestic, cellString(t, out, 0, ColDoctype))
	assert.Equal(t, "Москва", cellString(t, out, 0, ColRegion))

	assert.Equal(t, DoctypeForeign, cellString(t, out, 1, ColDoctype))
	assert.Equal(t, refdata.RegionUnknown, cellString(t, out, 1, ColRegion))
}

func TestPassportCleanup(t *testing.T) {
	tbl := table.New(ColPassportNum, ColPassportOrg)
	tbl.AppendRow(table.Row{ColPassportNum: "1234", ColPassportOrg: "null"})
	tbl.AppendRow(table.Row{ColPassportNum: "123456", ColPassportOrg: "ОВД"})

	out := NewPassport(testLogger()).Decode(tbl)

	assert.Equal(t, "001234", cellString(t, out, 0, ColPassportNum))
	assert.Equal(t, "", cellString(t, out, 0, ColPassportOrg))
	assert.Equal(t, "123456", cellString(t, out, 1, ColPassportNum))
	assert.Equal(t, "ОВД", cellString(t, out, 1, ColPassportOrg))
}
