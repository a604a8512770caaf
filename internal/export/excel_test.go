package export

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairybook/internal/domain/models"
)

func sampleReport() *models.MonthlyReport {
	return &models.MonthlyReport{
		Month: "2026-05",
		Summaries: []models.CustomerSummary{
			{
				Number:     "2",
				Name:       "Early",
				CowTotal:   decimal.NewFromInt(10),
				GrandTotal: decimal.NewFromInt(10),
				Amount:     decimal.NewFromInt(500),
			},
			{
				Number:       "12",
				Name:         "Late",
				BuffaloTotal: decimal.NewFromInt(4),
				GrandTotal:   decimal.NewFromInt(4),
				Amount:       decimal.NewFromInt(240),
			},
		},
		Ledger: models.LedgerTotals{CashIn: "1000", CashOut: "250.5", Expenses: "320"},
	}
}

func TestMonthlyWorkbook(t *testing.T) {
	f, err := MonthlyWorkbook(sampleReport())
	require.NoError(t, err)
	defer f.Close()

	sheet := "Report 2026-05"

	name, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Early", name)

	amount, err := f.GetCellValue(sheet, "J3")
	require.NoError(t, err)
	assert.Equal(t, "240", amount)

	totalLiters, err := f.GetCellValue(sheet, "I4")
	require.NoError(t, err)
	assert.Equal(t, "14", totalLiters)

	totalAmount, err := f.GetCellValue(sheet, "J4")
	require.NoError(t, err)
	assert.Equal(t, "740", totalAmount)
}

func TestSheetRows(t *testing.T) {
	rows := SheetRows(sampleReport())

	require.Len(t, rows, 3, "one row per customer plus the ledger row")
	assert.Equal(t, "2026-05", rows[0][0])
	assert.Equal(t, "2", rows[0][1])
	assert.Equal(t, "500", rows[0][6])
	assert.Equal(t, "ledger", rows[2][2])
	assert.Equal(t, "1000", rows[2][3])
}
