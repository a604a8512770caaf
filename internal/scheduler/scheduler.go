package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/config"
	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/export"
	"github.com/mamadbah2/dairybook/internal/repository/sheets"
	"github.com/mamadbah2/dairybook/internal/service/reporting"
)

// FarmLister enumerates the registered farm accounts.
type FarmLister interface {
	ListUsers(ctx context.Context) ([]models.User, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	farms        FarmLister
	exporter     sheets.Exporter
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. exporter may be nil when no
// Google Sheet is configured.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, farms FarmLister, exporter sheets.Exporter, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(loc)),
		reportingSvc: reportingSvc,
		farms:        farms,
		exporter:     exporter,
		cfg:          cfg,
		logger:       logger,
	}, nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler",
		zap.String("schedule", s.cfg.Reporting.CronSchedule))

	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.snapshotPreviousMonth)
	if err != nil {
		s.logger.Error("failed to schedule monthly snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

// snapshotPreviousMonth freezes last month's report for every farm and, when a
// sheet is configured, appends the rows to it.
func (s *Scheduler) snapshotPreviousMonth() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	month := time.Now().AddDate(0, -1, 0).Format(models.MonthLayout)
	s.logger.Info("running monthly snapshot", zap.String("month", month))

	users, err := s.farms.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list farms", zap.Error(err))
		return
	}

	for _, user := range users {
		farmID := user.ID.Hex()

		if _, err := s.reportingSvc.SnapshotMonth(ctx, farmID, month); err != nil {
			s.logger.Error("failed to snapshot month",
				zap.String("farm_id", farmID), zap.Error(err))
			continue
		}

		if s.exporter == nil {
			continue
		}

		report, err := s.reportingSvc.MonthlyReport(ctx, farmID, month)
		if err != nil {
			s.logger.Error("failed to build report for export",
				zap.String("farm_id", farmID), zap.Error(err))
			continue
		}
		if err := s.exporter.AppendReportRows(ctx, export.SheetRows(report)); err != nil {
			s.logger.Error("failed to append report rows",
				zap.String("farm_id", farmID), zap.Error(err))
		}
	}

	s.logger.Info("monthly snapshot finished", zap.Int("farms", len(users)))
}
