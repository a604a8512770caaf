// Package cache holds computed monthly reports between requests. Reports are
// rebuilt from the document store on a miss, so losing the cache is never a
// correctness problem.
package cache

import (
	"context"
	"time"

	"github.com/mamadbah2/dairybook/internal/domain/models"
)

// ReportCache stores assembled monthly reports keyed per (farm, month).
type ReportCache interface {
	Get(ctx context.Context, farmID, month string) (*models.MonthlyReport, bool, error)
	Set(ctx context.Context, farmID, month string, report *models.MonthlyReport, ttl time.Duration) error
	Invalidate(ctx context.Context, farmID, month string) error
}

// NoopReportCache is used when no Redis address is configured.
type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _, _ string) (*models.MonthlyReport, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _, _ string, _ *models.MonthlyReport, _ time.Duration) error {
	return nil
}

func (NoopReportCache) Invalidate(_ context.Context, _, _ string) error {
	return nil
}
