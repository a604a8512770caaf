package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/domain/numeric"
)

func record(date string, cowM, cowE, bufM, bufE models.ShiftTally) models.DailyShiftRecord {
	return models.DailyShiftRecord{
		Date:           date,
		CowMorning:     cowM,
		CowEvening:     cowE,
		BuffaloMorning: bufM,
		BuffaloEvening: bufE,
	}
}

func findSummary(t *testing.T, summaries []models.CustomerSummary, number string) models.CustomerSummary {
	t.Helper()
	for _, s := range summaries {
		if s.Number == number {
			return s
		}
	}
	t.Fatalf("no summary for customer %s", number)
	return models.CustomerSummary{}
}

func TestAggregateConcreteScenario(t *testing.T) {
	customers := []models.Customer{
		{Number: "1", Name: "Ramu", CowRate: "50", BuffaloRate: "60", DebitAmount: "100"},
	}
	records := []models.DailyShiftRecord{
		record("2026-05-01",
			models.ShiftTally{"1": "8"},
			models.ShiftTally{"1": "7"},
			models.ShiftTally{"1": "4"},
			models.ShiftTally{"1": "2"}),
		record("2026-05-02",
			models.ShiftTally{"1": "5"},
			models.ShiftTally{},
			models.ShiftTally{"1": "4"},
			models.ShiftTally{}),
	}

	summaries := Aggregate(records, customers)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.True(t, s.CowTotal.Equal(decimal.NewFromInt(20)), "cow total = %s", s.CowTotal)
	assert.True(t, s.BuffaloTotal.Equal(decimal.NewFromInt(10)), "buffalo total = %s", s.BuffaloTotal)
	assert.True(t, s.GrandTotal.Equal(decimal.NewFromInt(30)))
	assert.True(t, s.Amount.Equal(decimal.NewFromInt(1600)), "amount = %s", s.Amount)

	final := Settle(s, numeric.Parse(customers[0].DebitAmount))
	assert.True(t, final.Equal(decimal.NewFromInt(1500)), "final = %s", final)
}

func TestSettleOverDebitGoesNegative(t *testing.T) {
	summary := models.CustomerSummary{Amount: decimal.NewFromInt(1600)}

	final := Settle(summary, decimal.NewFromInt(2000))
	assert.True(t, final.Equal(decimal.NewFromInt(-400)), "over-debit must not be clamped, got %s", final)
}

func TestSettleAffineInDebit(t *testing.T) {
	summary := models.CustomerSummary{Amount: decimal.NewFromFloat(123.45)}
	d1 := decimal.NewFromFloat(10.5)
	d2 := decimal.NewFromInt(500)

	diff := Settle(summary, d1).Sub(Settle(summary, d2))
	assert.True(t, diff.Equal(d2.Sub(d1)))
}

func TestAggregateConservation(t *testing.T) {
	customers := []models.Customer{
		{Number: "1", Name: "A"},
		{Number: "2", Name: "B"},
		{Number: "7", Name: "C"},
	}
	records := []models.DailyShiftRecord{
		record("2026-05-01",
			models.ShiftTally{"1": "3.5", "2": "2"},
			models.ShiftTally{"7": "1.25"},
			models.ShiftTally{"1": "0.75"},
			models.ShiftTally{"2": "4"}),
		record("2026-05-02",
			models.ShiftTally{"2": "6"},
			models.ShiftTally{"1": "3", "7": "2.5"},
			models.ShiftTally{},
			models.ShiftTally{"7": "1"}),
	}

	poured := decimal.Zero
	for _, r := range records {
		for _, field := range []string{"cow_morning", "cow_evening", "buffalo_morning", "buffalo_evening"} {
			for _, qty := range r.Tally(field) {
				poured = poured.Add(numeric.Parse(qty))
			}
		}
	}

	aggregated := decimal.Zero
	summaries := Aggregate(records, customers)
	for _, s := range summaries {
		aggregated = aggregated.Add(s.GrandTotal)
		assert.True(t, s.GrandTotal.Equal(s.CowTotal.Add(s.BuffaloTotal)))
		perShift := s.CowMorning.Add(s.CowEvening).Add(s.BuffaloMorning).Add(s.BuffaloEvening)
		assert.True(t, s.GrandTotal.Equal(perShift))
	}

	assert.True(t, aggregated.Equal(poured), "aggregated %s != poured %s", aggregated, poured)
}

func TestAggregateZeroRateNeutrality(t *testing.T) {
	customers := []models.Customer{{Number: "3", Name: "No Rates"}}
	records := []models.DailyShiftRecord{
		record("2026-05-01",
			models.ShiftTally{"3": "100"},
			models.ShiftTally{"3": "250"},
			models.ShiftTally{"3": "99"},
			models.ShiftTally{}),
	}

	summaries := Aggregate(records, customers)
	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].Amount.IsZero(), "missing rates must price to zero")
	assert.True(t, summaries[0].GrandTotal.Equal(decimal.NewFromInt(449)))
}

func TestAggregateDropsUnknownCustomers(t *testing.T) {
	customers := []models.Customer{{Number: "1", Name: "Known"}}
	records := []models.DailyShiftRecord{
		record("2026-05-01",
			models.ShiftTally{"1": "2", "999": "50"},
			models.ShiftTally{"999": "10"},
			models.ShiftTally{},
			models.ShiftTally{}),
	}

	summaries := Aggregate(records, customers)
	require.Len(t, summaries, 1, "deleted customers never produce summaries")
	assert.True(t, summaries[0].GrandTotal.Equal(decimal.NewFromInt(2)))
}

func TestAggregateMalformedQuantitiesDegradeToZero(t *testing.T) {
	customers := []models.Customer{{Number: "1", Name: "A", CowRate: "40"}}
	records := []models.DailyShiftRecord{
		record("2026-05-01",
			models.ShiftTally{"1": "abc"},
			models.ShiftTally{"1": ""},
			models.ShiftTally{"1": "-4"},
			models.ShiftTally{"1": "3"}),
	}

	summaries := Aggregate(records, customers)
	require.Len(t, summaries, 1)
	assert.True(t, summaries[0].GrandTotal.Equal(decimal.NewFromInt(3)))
}

func TestAggregateKeepsZeroActivityCustomers(t *testing.T) {
	customers := []models.Customer{
		{Number: "1", Name: "Active"},
		{Number: "2", Name: "Idle"},
	}
	records := []models.DailyShiftRecord{
		record("2026-05-01", models.ShiftTally{"1": "5"}, nil, nil, nil),
	}

	summaries := Aggregate(records, customers)
	require.Len(t, summaries, 2, "aggregator never drops idle customers")

	active := WithActivity(summaries)
	require.Len(t, active, 1, "display filter is the caller's policy")
	assert.Equal(t, "1", active[0].Number)
}

func TestSortByNumberIsNumericAscending(t *testing.T) {
	summaries := []models.CustomerSummary{
		{Number: "12"}, {Number: "2"}, {Number: "101"}, {Number: "9"},
	}

	SortByNumber(summaries)

	got := make([]string, 0, len(summaries))
	for _, s := range summaries {
		got = append(got, s.Number)
	}
	assert.Equal(t, []string{"2", "9", "12", "101"}, got)
}

func TestStatement(t *testing.T) {
	customer := models.Customer{Number: "4", Name: "D", CowRate: "55", DebitAmount: "75.50"}
	summary := models.CustomerSummary{Number: "4", Amount: decimal.NewFromInt(110)}

	st := Statement(summary, customer)
	assert.True(t, st.DebitAmount.Equal(decimal.NewFromFloat(75.5)))
	assert.True(t, st.FinalAmount.Equal(decimal.NewFromFloat(34.5)))
}
