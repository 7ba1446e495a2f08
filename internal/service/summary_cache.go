package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/exam-board-api/internal/models"
)

// SummaryCache stores the latest distribution summary per board kind in
// Redis so operators can inspect the last run without re-running it.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache builds the cache; ttl <= 0 falls back to 24h.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SummaryCache{client: client, ttl: ttl}
}

func summaryKey(kind models.BoardKind) string {
	return fmt.Sprintf("distribution:summary:%s", kind)
}

// Save overwrites the cached summary for the run's kind. A nil cache is a
// no-op so callers need not special-case a missing Redis connection.
func (c *SummaryCache) Save(ctx context.Context, summary models.DistributionSummary) error {
	if c == nil || c.client == nil {
		return nil
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	if err := c.client.Set(ctx, summaryKey(summary.Kind), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache summary: %w", err)
	}
	return nil
}

// Last returns the cached summary for a kind, or nil when none is stored.
func (c *SummaryCache) Last(ctx context.Context, kind models.BoardKind) (*models.DistributionSummary, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, summaryKey(kind)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read summary: %w", err)
	}
	var summary models.DistributionSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &summary, nil
}
