package processor

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raumberg/XLmaniac/internal/config"
	"github.com/Raumberg/XLmaniac/internal/decoder"
	"github.com/Raumberg/XLmaniac/internal/table"
)

func testProcessor(t *testing.T) *Processor {
	t.Helper()

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Register.Name = "Реестр 1"
	cfg.Register.Date = "01.02.2024"

	return New(cfg, slog.New(slog.DiscardHandler))
}

func str(t *testing.T, tbl *table.Table, row int, col string) string {
	t.Helper()

	v, ok := tbl.Cell(row, col)
	require.True(t, ok, "column %s", col)

	return table.AsString(v)
}

func TestProcessFullPipeline(t *testing.T) {
	tbl := table.New("fio_full", "birth_date", "phones", "passport_full",
		"total_debt", "overdue_debt", "product_group", "Unnamed: 0")
	tbl.AppendRow(table.Row{
		"fio_full":      "Иванов Иван Иванович",
		"birth_date":    "15.03.1990",
		"phones":        "+79161234567,89031234567",
		"passport_full": "4510123456",
		"total_debt":    1000.4,
		"overdue_debt":  1000.6,
		"product_group": "Автокредит",
		"Unnamed: 0":    "0",
	})

	out, err := testProcessor(t).Process(tbl)
	require.NoError(t, err)
	require.Equal(t, 1, out.NumRows())

	assert.Equal(t, "Иванов", str(t, out, 0, "surname"))
	assert.Equal(t, "М", str(t, out, 0, "sex"))

	v, _ := out.Cell(0, "birth_date")
	assert.Equal(t, time.Date(1990, time.March, 15, 0, 0, 0, 0, time.UTC), v)

	assert.Equal(t, "+79161234567", str(t, out, 0, "phones|p1"))
	assert.Equal(t, "+79031234567", str(t, out, 0, "phones|p2"))

	assert.Equal(t, "45 10", str(t, out, 0, "passport_series"))
	assert.Equal(t, "123456", str(t, out, 0, "passport_num"))
	assert.Equal(t, "Москва", str(t, out, 0, "region"))

	assert.Equal(t, decoder.SchemeFullCollect, str(t, out, 0, "scheme"))
	assert.Equal(t, "CAR", str(t, out, 0, "product"))
	assert.Equal(t, "RUR", str(t, out, 0, "currency"))
	assert.Equal(t, "Реестр 1", str(t, out, 0, "reg_name"))

	assert.False(t, out.HasColumn("Unnamed: 0"))
}

func TestProcessPostJoinsEntities(t *testing.T) {
	contracts := table.New("id", "fio_full", "total_debt", "overdue_debt")
	contracts.AppendRow(table.Row{
		"id": "A", "fio_full": "Иванов Иван Иванович",
		"total_debt": 100.0, "overdue_debt": 100.0,
	})
	contracts.AppendRow(table.Row{
		"id": "B", "fio_full": "Петрова Анна Сергеевна",
		"total_debt": 200.0, "overdue_debt": 50.0,
	})

	addresses := table.New("id", "address", "address_type")
	addresses.AppendRow(table.Row{"id": "A", "address": "Москва", "address_type": "Регистрация"})
	addresses.AppendRow(table.Row{"id": "B", "address": "Казань", "address_type": "Фактический"})

	phones := table.New("id", "p1", "phone_type")
	phones.AppendRow(table.Row{"id": "A", "p1": "89031234567", "phone_type": "Мобильный"})
	phones.AppendRow(table.Row{"id": "B", "p1": "89161112233", "phone_type": "Мобильный"})

	out, err := testProcessor(t).ProcessPost(contracts, addresses, phones)
	require.NoError(t, err)
	require.Equal(t, 2, out.NumRows())

	assert.Equal(t, "Иванов", str(t, out, 0, "surname"))
	assert.Equal(t, "+79031234567", str(t, out, 0, "p1"))
	assert.Equal(t, "Москва", str(t, out, 0, "reg"))
	assert.Equal(t, decoder.SchemeFullCollect, str(t, out, 0, "scheme"))

	assert.Equal(t, "Петрова", str(t, out, 1, "surname"))
	assert.Equal(t, "Казань", str(t, out, 1, "fact"))
	assert.Equal(t, decoder.SchemeBackToSchedule, str(t, out, 1, "scheme"))
}

func TestProcessPostMissingPhoneType(t *testing.T) {
	contracts := table.New("id")
	contracts.AppendRow(table.Row{"id": "A"})

	addresses := table.New("id", "address", "address_type")
	addresses.AppendRow(table.Row{"id": "A", "address": "Москва", "address_type": "Регистрация"})

	phones := table.New("id", "p1")
	phones.AppendRow(table.Row{"id": "A", "p1": "89031234567"})

	_, err := testProcessor(t).ProcessPost(contracts, addresses, phones)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phones:")
}

func TestProcessPostMissingAddressType(t *testing.T) {
	contracts := table.New("id")
	contracts.AppendRow(table.Row{"id": "A"})

	addresses := table.New("id", "address")
	addresses.AppendRow(table.Row{"id": "A", "address": "Москва"})

	phones := table.New("id", "p1", "phone_type")
	phones.AppendRow(table.Row{"id": "A", "p1": "89031234567", "phone_type": "Мобильный"})

	_, err := testProcessor(t).ProcessPost(contracts, addresses, phones)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "addresses:")
}

func TestProcessZaim(t *testing.T) {
	tbl := table.New("phone_num_zaim", "fio_full")
	tbl.AppendRow(table.Row{
		"phone_num_zaim": "+41 79 123 45 67   (Hans Meier)",
		"fio_full":       "Иванов Иван Иванович",
	})

	out, err := testProcessor(t).ProcessZaim(tbl)
	require.NoError(t, err)

	assert.Equal(t, "41791234567", str(t, out, 0, "phone_num_zaim"))
	assert.Equal(t, "179", str(t, out, 0, "zaim_phone_code"))
	assert.Equal(t, "1234567", str(t, out, 0, "zaim_phone_rest"))
	assert.Equal(t, "Hans Meier", str(t, out, 0, "contact_person"))
	assert.Equal(t, "Иванов", str(t, out, 0, "surname"))
}

type nilDecoder struct{}

func (nilDecoder) Name() string                     { return "broken" }
func (nilDecoder) Decode(*table.Table) *table.Table { return nil }

func TestProcessNilTable(t *testing.T) {
	proc := testProcessor(t)

	_, err := proc.Process(nil)
	require.Error(t, err)

	_, err = proc.ProcessZaim(nil)
	require.Error(t, err)
}

func TestProcessPostNilTable(t *testing.T) {
	contracts := table.New("id")
	contracts.AppendRow(table.Row{"id": "A"})

	_, err := testProcessor(t).ProcessPost(contracts, nil, nil)
	require.Error(t, err)
}

func TestRunAbortsOnNilTable(t *testing.T) {
	tbl := table.New("x")
	tbl.AppendRow(table.Row{"x": "1"})

	_, err := run(tbl, slog.New(slog.DiscardHandler), []decoder.Decoder{nilDecoder{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
