package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairybook/internal/cache"
	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
)

type fakeStore struct {
	records   []models.DailyShiftRecord
	customers []models.Customer
	cash      []models.CashEntry
	expenses  []models.ExpenseEntry
	snapshots map[string]models.MonthlySnapshot
}

func (f *fakeStore) ReplaceShift(context.Context, string, string, string, models.ShiftTally) error {
	return nil
}

func (f *fakeStore) GetDay(context.Context, string, string) (*models.DailyShiftRecord, error) {
	return nil, mongodb.ErrNotFound
}

func (f *fakeStore) ListRange(_ context.Context, _ string, start, end string) ([]models.DailyShiftRecord, error) {
	var out []models.DailyShiftRecord
	for _, r := range f.records {
		if r.Date >= start && r.Date <= end {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateCustomer(_ context.Context, c models.Customer) (*models.Customer, error) {
	f.customers = append(f.customers, c)
	return &c, nil
}

func (f *fakeStore) UpdateCustomer(context.Context, models.Customer) error { return nil }

func (f *fakeStore) DeleteCustomer(context.Context, string, string) error { return nil }

func (f *fakeStore) GetCustomer(context.Context, string, string) (*models.Customer, error) {
	return nil, mongodb.ErrNotFound
}

func (f *fakeStore) GetCustomerByNumber(_ context.Context, _ string, number string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Number == number {
			customer := c
			return &customer, nil
		}
	}
	return nil, mongodb.ErrNotFound
}

func (f *fakeStore) ListCustomers(context.Context, string) ([]models.Customer, error) {
	return f.customers, nil
}

func (f *fakeStore) CreateCashEntry(_ context.Context, e models.CashEntry) (*models.CashEntry, error) {
	f.cash = append(f.cash, e)
	return &e, nil
}

func (f *fakeStore) DeleteCashEntry(context.Context, string, string) error { return nil }

func (f *fakeStore) ListCashEntries(context.Context, string, string, string) ([]models.CashEntry, error) {
	return f.cash, nil
}

func (f *fakeStore) CreateExpenseEntry(_ context.Context, e models.ExpenseEntry) (*models.ExpenseEntry, error) {
	f.expenses = append(f.expenses, e)
	return &e, nil
}

func (f *fakeStore) DeleteExpenseEntry(context.Context, string, string) error { return nil }

func (f *fakeStore) ListExpenseEntries(context.Context, string, string, string) ([]models.ExpenseEntry, error) {
	return f.expenses, nil
}

func (f *fakeStore) UpsertSnapshot(_ context.Context, s models.MonthlySnapshot) error {
	if f.snapshots == nil {
		f.snapshots = map[string]models.MonthlySnapshot{}
	}
	f.snapshots[s.Month] = s
	return nil
}

func (f *fakeStore) GetSnapshot(_ context.Context, _ string, month string) (*models.MonthlySnapshot, error) {
	s, ok := f.snapshots[month]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	return &s, nil
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, store, store, store, cache.NoopReportCache{}, time.Minute, nil)
}

func seededStore() *fakeStore {
	return &fakeStore{
		customers: []models.Customer{
			{Number: "12", Name: "Late", CowRate: "50"},
			{Number: "2", Name: "Early", BuffaloRate: "60"},
			{Number: "5", Name: "Idle", CowRate: "45"},
		},
		records: []models.DailyShiftRecord{
			{
				Date:           "2026-05-03",
				CowMorning:     models.ShiftTally{"12": "10"},
				BuffaloEvening: models.ShiftTally{"2": "4"},
			},
			{
				Date:       "2026-05-20",
				CowEvening: models.ShiftTally{"12": "10"},
			},
			{
				// Outside May; must not leak into the report.
				Date:       "2026-06-01",
				CowMorning: models.ShiftTally{"5": "99"},
			},
		},
		cash: []models.CashEntry{
			{Date: "2026-05-04", Kind: models.CashIn, Amount: "1000"},
			{Date: "2026-05-10", Kind: models.CashOut, Amount: "250.50"},
		},
		expenses: []models.ExpenseEntry{
			{Date: "2026-05-11", Category: "feed", Amount: "320"},
		},
	}
}

func TestMonthlyReport(t *testing.T) {
	svc := newTestService(seededStore())

	report, err := svc.MonthlyReport(context.Background(), "farm-1", "2026-05")
	require.NoError(t, err)

	require.Len(t, report.Summaries, 2, "idle customer filtered from the report")
	assert.Equal(t, "2", report.Summaries[0].Number, "sorted numerically ascending")
	assert.Equal(t, "12", report.Summaries[1].Number)
	assert.Equal(t, "20", report.Summaries[1].GrandTotal.String())
	assert.Equal(t, "1000", report.Summaries[1].Amount.String())
	assert.Equal(t, "240", report.Summaries[0].Amount.String())

	assert.Equal(t, "1000", report.Ledger.CashIn)
	assert.Equal(t, "250.5", report.Ledger.CashOut)
	assert.Equal(t, "320", report.Ledger.Expenses)
}

func TestMonthlyReportRejectsBadMonth(t *testing.T) {
	svc := newTestService(seededStore())

	_, err := svc.MonthlyReport(context.Background(), "farm-1", "May 2026")
	assert.Error(t, err)
}

func TestCustomerStatement(t *testing.T) {
	store := seededStore()
	store.customers[0].DebitAmount = "1100"
	svc := newTestService(store)

	statement, err := svc.CustomerStatement(context.Background(), "farm-1", "12", "2026-05-01", "2026-05-31")
	require.NoError(t, err)

	assert.Equal(t, "1000", statement.Amount.String())
	assert.Equal(t, "-100", statement.FinalAmount.String(), "over-debit stays negative")
}

func TestCustomerStatementZeroActivity(t *testing.T) {
	svc := newTestService(seededStore())

	statement, err := svc.CustomerStatement(context.Background(), "farm-1", "5", "2026-05-01", "2026-05-31")
	require.NoError(t, err)
	assert.True(t, statement.GrandTotal.IsZero())
}

func TestCustomerStatementValidatesRange(t *testing.T) {
	svc := newTestService(seededStore())

	_, err := svc.CustomerStatement(context.Background(), "farm-1", "12", "2026-05-31", "2026-05-01")
	assert.Error(t, err)

	_, err = svc.CustomerStatement(context.Background(), "farm-1", "12", "31-05-2026", "2026-06-01")
	assert.Error(t, err)
}

func TestSnapshotMonth(t *testing.T) {
	store := seededStore()
	svc := newTestService(store)

	snapshot, err := svc.SnapshotMonth(context.Background(), "farm-1", "2026-05")
	require.NoError(t, err)

	require.Len(t, snapshot.Rows, 2)
	assert.Equal(t, "24", snapshot.TotalLiters)
	assert.Equal(t, "1240", snapshot.TotalAmount)
	assert.Equal(t, "320", snapshot.Expenses)

	stored, err := store.GetSnapshot(context.Background(), "farm-1", "2026-05")
	require.NoError(t, err)
	assert.Equal(t, snapshot.Rows, stored.Rows)
}

func TestMonthRange(t *testing.T) {
	start, end, err := monthRange("2026-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", start)
	assert.Equal(t, "2026-02-28", end)

	start, end, err = monthRange("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", start)
	assert.Equal(t, "2024-02-29", end)
}
