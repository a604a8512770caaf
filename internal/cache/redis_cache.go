package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/mamadbah2/dairybook/internal/domain/models"
)

// RedisReportCache is the Redis-backed report cache.
type RedisReportCache struct {
	client *redis.Client
}

// NewRedisReportCache builds a cache against the given Redis instance.
func NewRedisReportCache(addr string, password string, db int) *RedisReportCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisReportCache{client: client}
}

// Ping verifies connectivity.
func (c *RedisReportCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the client.
func (c *RedisReportCache) Close() error {
	return c.client.Close()
}

func reportKey(farmID, month string) string {
	return fmt.Sprintf("report:%s:%s", farmID, month)
}

// Get returns the cached report for (farm, month), if any.
func (c *RedisReportCache) Get(ctx context.Context, farmID, month string) (*models.MonthlyReport, bool, error) {
	val, err := c.client.Get(ctx, reportKey(farmID, month)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var report models.MonthlyReport
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		return nil, false, err
	}
	return &report, true, nil
}

// Set stores a report under (farm, month) for the given TTL.
func (c *RedisReportCache) Set(ctx context.Context, farmID, month string, report *models.MonthlyReport, ttl time.Duration) error {
	if report == nil {
		return nil
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, reportKey(farmID, month), payload, ttl).Err()
}

// Invalidate drops the cached report for (farm, month). Writes to milk or
// customer data call this for every month they touch.
func (c *RedisReportCache) Invalidate(ctx context.Context, farmID, month string) error {
	return c.client.Del(ctx, reportKey(farmID, month)).Err()
}
