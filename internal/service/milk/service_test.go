package milk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairybook/internal/cache"
	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
	"github.com/mamadbah2/dairybook/internal/service/reporting"
)

type fakeMilkRepo struct {
	days map[string]models.DailyShiftRecord

	lastField string
	lastTally models.ShiftTally
}

func newFakeMilkRepo() *fakeMilkRepo {
	return &fakeMilkRepo{days: map[string]models.DailyShiftRecord{}}
}

func (f *fakeMilkRepo) ReplaceShift(_ context.Context, farmID, date, field string, tally models.ShiftTally) error {
	f.lastField = field
	f.lastTally = tally
	record := f.days[date]
	record.FarmID = farmID
	record.Date = date
	record.SetTally(field, tally)
	f.days[date] = record
	return nil
}

func (f *fakeMilkRepo) GetDay(_ context.Context, _, date string) (*models.DailyShiftRecord, error) {
	record, ok := f.days[date]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	return &record, nil
}

func (f *fakeMilkRepo) ListRange(_ context.Context, _, start, end string) ([]models.DailyShiftRecord, error) {
	var records []models.DailyShiftRecord
	for date, record := range f.days {
		if date >= start && date <= end {
			records = append(records, record)
		}
	}
	return records, nil
}

func newTestService(repo *fakeMilkRepo) *Service {
	reports := reporting.NewService(repo, nil, nil, nil, cache.NoopReportCache{}, 0, nil)
	return NewService(repo, reports, nil)
}

func TestSaveShiftReplacesWholeMapping(t *testing.T) {
	repo := newFakeMilkRepo()
	svc := newTestService(repo)

	first := models.ShiftTally{"1": "4.5", "2": "3"}
	err := svc.SaveShift(context.Background(), "farm1", "2026-07-15", models.SpeciesCow, models.ShiftMorning, first)
	require.NoError(t, err)
	require.Equal(t, "cow_morning", repo.lastField)

	// A later save of the same shift replaces the mapping wholesale; entries
	// absent from the new payload are gone.
	second := models.ShiftTally{"2": "5"}
	err = svc.SaveShift(context.Background(), "farm1", "2026-07-15", models.SpeciesCow, models.ShiftMorning, second)
	require.NoError(t, err)

	day, err := svc.Day(context.Background(), "farm1", "2026-07-15")
	require.NoError(t, err)
	require.Equal(t, second, day.CowMorning)
	require.NotContains(t, day.CowMorning, "1")
}

func TestSaveShiftRejectsBadInput(t *testing.T) {
	svc := newTestService(newFakeMilkRepo())

	err := svc.SaveShift(context.Background(), "farm1", "July 15", models.SpeciesCow, models.ShiftMorning, nil)
	require.Error(t, err)

	err = svc.SaveShift(context.Background(), "farm1", "2026-07-15", models.Species("goat"), models.ShiftMorning, nil)
	require.Error(t, err)
}

func TestDayAbsentMeansEmpty(t *testing.T) {
	svc := newTestService(newFakeMilkRepo())

	day, err := svc.Day(context.Background(), "farm1", "2026-07-16")
	require.NoError(t, err)
	require.Empty(t, day.CowMorning)
	require.Empty(t, day.BuffaloEvening)
	require.Equal(t, "2026-07-16", day.Date)
}

func TestRangeValidation(t *testing.T) {
	svc := newTestService(newFakeMilkRepo())

	_, err := svc.Range(context.Background(), "farm1", "2026-07-31", "2026-07-01")
	require.Error(t, err)

	_, err = svc.Range(context.Background(), "farm1", "not-a-date", "2026-07-31")
	require.Error(t, err)

	records, err := svc.Range(context.Background(), "farm1", "2026-07-01", "2026-07-31")
	require.NoError(t, err)
	require.Empty(t, records)
}
