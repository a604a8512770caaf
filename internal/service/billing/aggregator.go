// Package billing reduces raw daily shift records into per-customer billing
// summaries. Everything here is a pure computation over a point-in-time
// snapshot of store data; persistence and fetching belong to the caller.
package billing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/domain/numeric"
)

// Aggregate folds the given shift records into one summary per known
// customer. Records are expected to already be limited to the caller's date
// range. Quantity entries referencing an account number with no matching
// customer are dropped: historical records may point at a since-deleted
// customer. Customers with zero activity are kept; filtering them out is the
// caller's display policy.
func Aggregate(records []models.DailyShiftRecord, customers []models.Customer) []models.CustomerSummary {
	summaries := make(map[string]*models.CustomerSummary, len(customers))
	order := make([]string, 0, len(customers))

	for _, c := range customers {
		if _, ok := summaries[c.Number]; ok {
			continue
		}
		summaries[c.Number] = &models.CustomerSummary{Number: c.Number, Name: c.Name}
		order = append(order, c.Number)
	}

	for i := range records {
		record := &records[i]
		foldTally(summaries, record.CowMorning, func(s *models.CustomerSummary, qty decimal.Decimal) {
			s.CowMorning = s.CowMorning.Add(qty)
		})
		foldTally(summaries, record.CowEvening, func(s *models.CustomerSummary, qty decimal.Decimal) {
			s.CowEvening = s.CowEvening.Add(qty)
		})
		foldTally(summaries, record.BuffaloMorning, func(s *models.CustomerSummary, qty decimal.Decimal) {
			s.BuffaloMorning = s.BuffaloMorning.Add(qty)
		})
		foldTally(summaries, record.BuffaloEvening, func(s *models.CustomerSummary, qty decimal.Decimal) {
			s.BuffaloEvening = s.BuffaloEvening.Add(qty)
		})
	}

	rates := make(map[string]models.Customer, len(customers))
	for _, c := range customers {
		rates[c.Number] = c
	}

	result := make([]models.CustomerSummary, 0, len(order))
	for _, number := range order {
		s := summaries[number]
		s.CowTotal = s.CowMorning.Add(s.CowEvening)
		s.BuffaloTotal = s.BuffaloMorning.Add(s.BuffaloEvening)
		s.GrandTotal = s.CowTotal.Add(s.BuffaloTotal)

		c := rates[number]
		// An absent rate contributes zero for that species regardless of
		// liters supplied.
		s.Amount = s.CowTotal.Mul(numeric.Parse(c.CowRate)).
			Add(s.BuffaloTotal.Mul(numeric.Parse(c.BuffaloRate)))

		result = append(result, *s)
	}

	return result
}

func foldTally(summaries map[string]*models.CustomerSummary, tally models.ShiftTally, add func(*models.CustomerSummary, decimal.Decimal)) {
	for number, qty := range tally {
		s, ok := summaries[number]
		if !ok {
			continue
		}
		add(s, numeric.Parse(qty))
	}
}

// Settle computes the final payable amount for a summary after the standing
// debit. A debit larger than the amount yields a negative result, meaning the
// farm owes the customer; the sign is preserved, never clamped.
func Settle(summary models.CustomerSummary, debit decimal.Decimal) decimal.Decimal {
	return summary.Amount.Sub(debit)
}

// Statement pairs a summary with its customer's settlement figures.
func Statement(summary models.CustomerSummary, customer models.Customer) models.CustomerStatement {
	debit := numeric.Parse(customer.DebitAmount)
	return models.CustomerStatement{
		CustomerSummary: summary,
		DebitAmount:     debit,
		FinalAmount:     Settle(summary, debit),
	}
}

// SortByNumber orders summaries by numeric account number ascending, the
// display order used by every report screen. Account numbers are unpadded
// digit strings, so shorter-then-lexicographic comparison is numeric order.
func SortByNumber(summaries []models.CustomerSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].Number, summaries[j].Number
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
}

// WithActivity returns only summaries with a positive grand total, the
// filter report screens apply before rendering.
func WithActivity(summaries []models.CustomerSummary) []models.CustomerSummary {
	filtered := make([]models.CustomerSummary, 0, len(summaries))
	for _, s := range summaries {
		if s.GrandTotal.IsPositive() {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
