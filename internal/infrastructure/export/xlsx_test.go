package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	finished := time.Date(2024, 1, 15, 18, 30, 0, 0, time.UTC)
	var notFinished *time.Time

	table := Table{
		Sheet: "Services",
		Title: "Service orders",
		Columns: []Column{
			{Header: "Number", Kind: KindText},
			{Header: "Finished at", Kind: KindDateTime},
			{Header: "Total", Kind: KindMoney},
		},
		Rows: [][]any{
			{"OS202401-0001", &finished, decimal.RequireFromString("215.50")},
			{"OS202401-0002", notFinished, decimal.Zero},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, table))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Services"}, f.GetSheetList())

	title, err := f.GetCellValue("Services", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Service orders", title)

	header, err := f.GetCellValue("Services", "C3")
	require.NoError(t, err)
	assert.Equal(t, "Total", header)

	number, err := f.GetCellValue("Services", "A4")
	require.NoError(t, err)
	assert.Equal(t, "OS202401-0001", number)

	// 18:30 UTC is 15:30 in São Paulo.
	finishedCell, err := f.GetCellValue("Services", "B4")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15 15:30", finishedCell)

	total, err := f.GetCellValue("Services", "C4", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "215.5", total)

	empty, err := f.GetCellValue("Services", "B5")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWriteXLSX_RowWidthMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf, Table{
		Columns: []Column{{Header: "A"}, {Header: "B"}},
		Rows:    [][]any{{"only one"}},
	})
	assert.Error(t, err)
}
