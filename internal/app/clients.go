package app

import (
	"context"
	"fmt"

	extractorclient "github.com/twinlabs/persona-backend/internal/clients/extractor"
	"github.com/twinlabs/persona-backend/internal/clients/rediscache"
	"github.com/twinlabs/persona-backend/internal/platform/logger"
	"github.com/twinlabs/persona-backend/internal/platform/openai"
)

type Clients struct {
	AI        openai.Client
	Extractor extractorclient.Client

	// Stats is nil when REDIS_ADDR is unset.
	Stats *rediscache.StatsCache
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	ai, err := openai.NewClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}

	extractor, err := extractorclient.NewHTTPClient(log)
	if err != nil {
		return Clients{}, fmt.Errorf("init extractor client: %w", err)
	}

	var stats *rediscache.StatsCache
	if cfg.RedisAddr != "" {
		stats, err = rediscache.NewStatsCache(ctx, log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis stats cache: %w", err)
		}
	} else {
		log.Warn("REDIS_ADDR not set, backfill stats caching disabled")
	}

	return Clients{AI: ai, Extractor: extractor, Stats: stats}, nil
}
