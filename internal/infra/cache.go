package infra

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/teewear/storefront/internal/config"
	"github.com/teewear/storefront/internal/log"
)

func NewCacheClient(c context.Context, cfg config.Cache) (*redis.Client, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "infra NewCacheClient").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "initializing redis client").Logger()
	logger.Info().Msg("initializing redis client")
	cache := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.Database,
	})
	logger.Info().Msg("initialized redis client")

	logger = logger.With().Str(log.KeyProcess, "initializing redis otel").Logger()
	logger.Info().Msg("initializing redis otel")
	err := redisotel.InstrumentTracing(cache, redisotel.WithAttributes(semconv.DBSystemRedis))
	if err != nil {
		return nil, fmt.Errorf("failed initializing redis otel tracing with error=%w", err)
	}
	err = redisotel.InstrumentMetrics(cache, redisotel.WithAttributes(semconv.DBSystemRedis))
	if err != nil {
		return nil, fmt.Errorf("failed initializing redis otel metric with error=%w", err)
	}
	logger.Info().Msg("initialized redis otel")

	logger = logger.With().Str(log.KeyProcess, "pinging redis").Logger()
	logger.Info().Msg("pinging redis")
	if err := cache.Ping(c).Err(); err != nil {
		return nil, fmt.Errorf("failed pinging redis with error=%w", err)
	}
	logger.Info().Msg("pinged redis")

	return cache, nil
}
