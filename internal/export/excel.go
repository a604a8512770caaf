// Package export renders monthly reports into spreadsheet form.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/domain/numeric"
)

var reportHeader = []interface{}{
	"No.", "Customer", "Cow AM", "Cow PM", "Buffalo AM", "Buffalo PM",
	"Cow Total", "Buffalo Total", "Grand Total (L)", "Amount",
}

// MonthlyWorkbook builds an xlsx workbook for a monthly report: one row per
// customer summary, a totals row, and the ledger figures underneath.
func MonthlyWorkbook(report *models.MonthlyReport) (*excelize.File, error) {
	f := excelize.NewFile()

	sheet := "Report " + report.Month
	f.SetSheetName("Sheet1", sheet)

	if err := f.SetSheetRow(sheet, "A1", &reportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	totalLiters := numeric.Parse("0")
	totalAmount := numeric.Parse("0")

	row := 2
	for _, s := range report.Summaries {
		values := []interface{}{
			s.Number, s.Name,
			s.CowMorning.String(), s.CowEvening.String(),
			s.BuffaloMorning.String(), s.BuffaloEvening.String(),
			s.CowTotal.String(), s.BuffaloTotal.String(),
			s.GrandTotal.String(), s.Amount.String(),
		}
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}

		totalLiters = totalLiters.Add(s.GrandTotal)
		totalAmount = totalAmount.Add(s.Amount)
		row++
	}

	totals := []interface{}{
		"", "Total", "", "", "", "", "", "",
		totalLiters.String(), totalAmount.String(),
	}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &totals); err != nil {
		return nil, fmt.Errorf("write totals row: %w", err)
	}
	row += 2

	ledger := [][]interface{}{
		{"Cash in", report.Ledger.CashIn},
		{"Cash out", report.Ledger.CashOut},
		{"Expenses", report.Ledger.Expenses},
	}
	for _, values := range ledger {
		v := values
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &v); err != nil {
			return nil, fmt.Errorf("write ledger row: %w", err)
		}
		row++
	}

	return f, nil
}

// SheetRows flattens a report into appendable spreadsheet rows, one per
// customer plus a trailing ledger row, for the Google Sheets export target.
func SheetRows(report *models.MonthlyReport) [][]interface{} {
	rows := make([][]interface{}, 0, len(report.Summaries)+1)
	for _, s := range report.Summaries {
		rows = append(rows, []interface{}{
			report.Month, s.Number, s.Name,
			s.CowTotal.String(), s.BuffaloTotal.String(),
			s.GrandTotal.String(), s.Amount.String(),
		})
	}
	rows = append(rows, []interface{}{
		report.Month, "", "ledger",
		report.Ledger.CashIn, report.Ledger.CashOut, report.Ledger.Expenses, "",
	})
	return rows
}
