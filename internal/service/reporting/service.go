// Package reporting assembles the monthly and per-customer billing views
// from store snapshots via the billing aggregator.
package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/cache"
	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/domain/numeric"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
	"github.com/mamadbah2/dairybook/internal/service/billing"
)

// Service exposes report assembly for handlers, exporters, and the
// scheduler.
type Service struct {
	milk      mongodb.MilkRepository
	customers mongodb.CustomerRepository
	ledger    mongodb.LedgerRepository
	snapshots mongodb.SnapshotRepository
	reports   cache.ReportCache
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(
	milk mongodb.MilkRepository,
	customers mongodb.CustomerRepository,
	ledger mongodb.LedgerRepository,
	snapshots mongodb.SnapshotRepository,
	reports cache.ReportCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		milk:      milk,
		customers: customers,
		ledger:    ledger,
		snapshots: snapshots,
		reports:   reports,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// MonthlyReport builds the report for one calendar month: per-customer
// summaries sorted by account number, filtered to customers with activity,
// plus ledger totals for the same period.
func (s *Service) MonthlyReport(ctx context.Context, farmID, month string) (*models.MonthlyReport, error) {
	start, end, err := monthRange(month)
	if err != nil {
		return nil, err
	}

	if cached, ok, cacheErr := s.reports.Get(ctx, farmID, month); cacheErr == nil && ok {
		return cached, nil
	} else if cacheErr != nil {
		s.logger.Warn("report cache lookup failed", zap.Error(cacheErr))
	}

	summaries, err := s.rangeSummaries(ctx, farmID, start, end)
	if err != nil {
		return nil, err
	}
	billing.SortByNumber(summaries)

	ledger, err := s.ledgerTotals(ctx, farmID, start, end)
	if err != nil {
		return nil, err
	}

	report := &models.MonthlyReport{
		Month:     month,
		Summaries: billing.WithActivity(summaries),
		Ledger:    ledger,
	}

	if err := s.reports.Set(ctx, farmID, month, report, s.cacheTTL); err != nil {
		s.logger.Warn("report cache store failed", zap.Error(err))
	}

	return report, nil
}

// CustomerStatement builds the detail view for one customer over an
// inclusive date range. Zero activity still yields a statement; the debit is
// applied regardless.
func (s *Service) CustomerStatement(ctx context.Context, farmID, number, start, end string) (*models.CustomerStatement, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}

	customer, err := s.customers.GetCustomerByNumber(ctx, farmID, number)
	if err != nil {
		return nil, err
	}

	records, err := s.milk.ListRange(ctx, farmID, start, end)
	if err != nil {
		return nil, err
	}

	summaries := billing.Aggregate(records, []models.Customer{*customer})
	statement := billing.Statement(summaries[0], *customer)
	return &statement, nil
}

// SnapshotMonth computes a month's report and persists it as a snapshot so
// the figures survive later rate or customer edits.
func (s *Service) SnapshotMonth(ctx context.Context, farmID, month string) (*models.MonthlySnapshot, error) {
	start, end, err := monthRange(month)
	if err != nil {
		return nil, err
	}

	summaries, err := s.rangeSummaries(ctx, farmID, start, end)
	if err != nil {
		return nil, err
	}
	billing.SortByNumber(summaries)
	summaries = billing.WithActivity(summaries)

	ledger, err := s.ledgerTotals(ctx, farmID, start, end)
	if err != nil {
		return nil, err
	}

	snapshot := models.MonthlySnapshot{
		FarmID:     farmID,
		Month:      month,
		Rows:       snapshotRows(summaries),
		CashIn:     ledger.CashIn,
		CashOut:    ledger.CashOut,
		Expenses:   ledger.Expenses,
		ComputedAt: time.Now(),
	}

	totalLiters := numeric.Parse("0")
	totalAmount := numeric.Parse("0")
	for _, summary := range summaries {
		totalLiters = totalLiters.Add(summary.GrandTotal)
		totalAmount = totalAmount.Add(summary.Amount)
	}
	snapshot.TotalLiters = totalLiters.String()
	snapshot.TotalAmount = totalAmount.String()

	if err := s.snapshots.UpsertSnapshot(ctx, snapshot); err != nil {
		return nil, err
	}

	s.logger.Info("monthly snapshot stored",
		zap.String("farm_id", farmID),
		zap.String("month", month),
		zap.Int("rows", len(snapshot.Rows)))

	return &snapshot, nil
}

// Snapshot returns the frozen report for a past month, if the snapshot job
// has run for it.
func (s *Service) Snapshot(ctx context.Context, farmID, month string) (*models.MonthlySnapshot, error) {
	if _, err := time.Parse(models.MonthLayout, month); err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}
	return s.snapshots.GetSnapshot(ctx, farmID, month)
}

// InvalidateForDate drops the cached report covering the given record date.
// Milk and ledger writes call this so the affected month rebuilds.
func (s *Service) InvalidateForDate(ctx context.Context, farmID, date string) {
	parsed, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return
	}

	month := parsed.Format(models.MonthLayout)
	if err := s.reports.Invalidate(ctx, farmID, month); err != nil {
		s.logger.Warn("report cache invalidation failed",
			zap.String("month", month), zap.Error(err))
	}
}

func (s *Service) rangeSummaries(ctx context.Context, farmID, start, end string) ([]models.CustomerSummary, error) {
	records, err := s.milk.ListRange(ctx, farmID, start, end)
	if err != nil {
		return nil, fmt.Errorf("load shift records: %w", err)
	}

	customers, err := s.customers.ListCustomers(ctx, farmID)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}

	return billing.Aggregate(records, customers), nil
}

func (s *Service) ledgerTotals(ctx context.Context, farmID, start, end string) (models.LedgerTotals, error) {
	cashEntries, err := s.ledger.ListCashEntries(ctx, farmID, start, end)
	if err != nil {
		return models.LedgerTotals{}, fmt.Errorf("load cash entries: %w", err)
	}

	expenseEntries, err := s.ledger.ListExpenseEntries(ctx, farmID, start, end)
	if err != nil {
		return models.LedgerTotals{}, fmt.Errorf("load expense entries: %w", err)
	}

	var in, out, expenses []string
	for _, entry := range cashEntries {
		if entry.Kind == models.CashOut {
			out = append(out, entry.Amount)
		} else {
			in = append(in, entry.Amount)
		}
	}
	for _, entry := range expenseEntries {
		expenses = append(expenses, entry.Amount)
	}

	return models.LedgerTotals{
		CashIn:   numeric.Sum(in).String(),
		CashOut:  numeric.Sum(out).String(),
		Expenses: numeric.Sum(expenses).String(),
	}, nil
}

func snapshotRows(summaries []models.CustomerSummary) []models.SnapshotRow {
	rows := make([]models.SnapshotRow, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, models.SnapshotRow{
			Number:       s.Number,
			Name:         s.Name,
			CowTotal:     s.CowTotal.String(),
			BuffaloTotal: s.BuffaloTotal.String(),
			GrandTotal:   s.GrandTotal.String(),
			Amount:       s.Amount.String(),
		})
	}
	return rows
}

// monthRange expands a "2006-01" month key into its inclusive first and last
// dates.
func monthRange(month string) (string, string, error) {
	parsed, err := time.Parse(models.MonthLayout, month)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q: %w", month, err)
	}

	start := parsed
	end := parsed.AddDate(0, 1, -1)
	return start.Format(models.DateLayout), end.Format(models.DateLayout), nil
}

func validateRange(start, end string) error {
	if _, err := time.Parse(models.DateLayout, start); err != nil {
		return fmt.Errorf("invalid start date %q: %w", start, err)
	}
	if _, err := time.Parse(models.DateLayout, end); err != nil {
		return fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if start > end {
		return fmt.Errorf("start date %s after end date %s", start, end)
	}
	return nil
}
