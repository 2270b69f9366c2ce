package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/twinlabs/persona-backend/internal/platform/logger"
)

const (
	lastRunKeyPrefix = "persona:graph:backfill:last:"
	lastRunTTL       = 7 * 24 * time.Hour
)

// BackfillRecord is the cached snapshot of a profile's most recent
// backfill invocation.
type BackfillRecord struct {
	ProfileID  string          `json:"profile_id"`
	Completed  bool            `json:"completed"`
	Selected   int             `json:"selected"`
	Stats      json.RawMessage `json:"stats,omitempty"`
	Counts     json.RawMessage `json:"counts,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// StatsCache stores the last backfill result per profile. Best effort;
// callers treat write failures as warnings.
type StatsCache struct {
	log *logger.Logger
	rdb *redis.Client
}

// NewStatsCache connects to Redis at REDIS_ADDR and pings it. The app
// treats a nil cache as "feature off" when REDIS_ADDR is unset.
func NewStatsCache(ctx context.Context, log *logger.Logger) (*StatsCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &StatsCache{log: log.With("client", "StatsCache"), rdb: rdb}, nil
}

func (c *StatsCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// SetLastRun overwrites the cached record for a profile.
func (c *StatsCache) SetLastRun(ctx context.Context, rec BackfillRecord) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	rec.RecordedAt = time.Now().UTC()
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, lastRunKeyPrefix+rec.ProfileID, payload, lastRunTTL).Err()
}

// GetLastRun returns the cached record, or (nil, nil) when nothing is
// cached for the profile.
func (c *StatsCache) GetLastRun(ctx context.Context, profileID string) (*BackfillRecord, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	raw, err := c.rdb.Get(ctx, lastRunKeyPrefix+profileID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var rec BackfillRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("cached record decode: %w", err)
	}
	return &rec, nil
}
