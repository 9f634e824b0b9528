package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/config"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/domain"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/health"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/infra/postgres"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/infra/registry"
	"github.com/KasumiMercury/equipment-maintenance-alerts/internal/infra/repository"
)

type stores struct {
	redisClient     *redis.Client
	pgPool          *postgres.Pool
	alertRepo       domain.AlertRepository
	equipmentSource domain.EquipmentSource
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	st := &stores{}

	if cfg.UsesRedis() {
		client, err := openRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		st.redisClient = client
	}

	if cfg.UsesPostgres() {
		pool, err := postgres.NewPool(ctx, cfg.Postgres, cfg.LogLevel)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		st.pgPool = pool
	}

	switch cfg.AlertStore {
	case config.AlertStorePostgres:
		st.alertRepo = postgres.NewAlertRepository(st.pgPool)
	default:
		st.alertRepo = repository.NewAlertRepository(st.redisClient)
	}

	switch cfg.EquipmentSource {
	case config.EquipmentSourceRegistry:
		st.equipmentSource = registry.NewClient(cfg.EquipmentRegistryURL)
	default:
		st.equipmentSource = postgres.NewEquipmentSource(st.pgPool)
	}

	slog.InfoContext(ctx, "stores initialized",
		slog.String("event", "stores.init"),
		slog.String("alert_store", string(cfg.AlertStore)),
		slog.String("equipment_source", string(cfg.EquipmentSource)),
	)

	return st, nil
}

func openRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to instrument redis tracing: %w", err)
	}

	if err := redisotel.InstrumentMetrics(client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to instrument redis metrics: %w", err)
	}

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}

	slog.InfoContext(ctx, "redis connected",
		slog.String("event", "redis.connect"),
		slog.String("addr", cfg.Addr),
	)

	return client, nil
}

func (s *stores) redisPing() health.PingFunc {
	if s.redisClient == nil {
		return nil
	}
	return health.RedisPing(s.redisClient)
}

func (s *stores) postgresPing() health.PingFunc {
	if s.pgPool == nil {
		return nil
	}
	return s.pgPool.Ping
}

func (s *stores) Close() {
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}
	if s.pgPool != nil {
		if err := s.pgPool.Close(); err != nil {
			slog.Warn("failed to close postgres pool", slog.String("error", err.Error()))
		}
	}
}
