// Package milk manages the daily shift entry screens' persistence.
package milk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
	"github.com/mamadbah2/dairybook/internal/service/reporting"
)

// Service persists shift entries and keeps the report cache honest.
type Service struct {
	repo    mongodb.MilkRepository
	reports *reporting.Service
	logger  *zap.Logger
}

// NewService wires a new milk service instance.
func NewService(repo mongodb.MilkRepository, reports *reporting.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, reports: reports, logger: logger}
}

// SaveShift replaces one (species, shift) mapping for a date. The whole
// mapping is written as entered; quantities are not validated here because
// reports must keep rendering even over malformed input.
func (s *Service) SaveShift(ctx context.Context, farmID, date string, species models.Species, shift models.Shift, tally models.ShiftTally) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	field, ok := models.ShiftField(species, shift)
	if !ok {
		return fmt.Errorf("unknown shift %s/%s", species, shift)
	}

	if err := s.repo.ReplaceShift(ctx, farmID, date, field, tally); err != nil {
		return err
	}

	s.reports.InvalidateForDate(ctx, farmID, date)

	s.logger.Debug("shift saved",
		zap.String("date", date),
		zap.String("field", field),
		zap.Int("entries", len(tally)))

	return nil
}

// Day returns the record for one date. A date nobody has saved yet yields an
// empty record rather than an error; absence means zero throughout this
// domain.
func (s *Service) Day(ctx context.Context, farmID, date string) (*models.DailyShiftRecord, error) {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	record, err := s.repo.GetDay(ctx, farmID, date)
	if errors.Is(err, mongodb.ErrNotFound) {
		return &models.DailyShiftRecord{
			FarmID:         farmID,
			Date:           date,
			CowMorning:     models.ShiftTally{},
			CowEvening:     models.ShiftTally{},
			BuffaloMorning: models.ShiftTally{},
			BuffaloEvening: models.ShiftTally{},
		}, nil
	}
	if err != nil {
		return nil, err
	}

	return record, nil
}

// Range returns all records with dates in [start, end].
func (s *Service) Range(ctx context.Context, farmID, start, end string) ([]models.DailyShiftRecord, error) {
	for _, date := range []string{start, end} {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", date, err)
		}
	}
	if start > end {
		return nil, fmt.Errorf("start date %s after end date %s", start, end)
	}

	return s.repo.ListRange(ctx, farmID, start, end)
}
