package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/acronyms/internal/config"
	"github.com/MrSnakeDoc/acronyms/internal/logger"
	"github.com/MrSnakeDoc/acronyms/internal/redis"
	"github.com/MrSnakeDoc/acronyms/internal/store"
	"github.com/MrSnakeDoc/acronyms/internal/store/memory"
	"github.com/MrSnakeDoc/acronyms/internal/store/postgres"
	redisstore "github.com/MrSnakeDoc/acronyms/internal/store/redis"
	"github.com/MrSnakeDoc/acronyms/internal/store/sqlite"
)

// Backend is a key/value store the acronym collection can live in.
type Backend interface {
	store.KV
	Ping(ctx context.Context) error
	Close() error
}

// OpenBackend opens the storage backend named by cfg.Storage. Redis is
// retried until cfg.RedisConnectTimeout runs out; postgres is tried once.
func OpenBackend(ctx context.Context, cfg *config.Config, log logger.Logger) (Backend, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		log.Info("opening sqlite storage", logger.String("path", cfg.SQLitePath))
		kv, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return kv, nil

	case config.StorageRedis:
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			Username:       cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDialTimeout,
			ReadTimeout:    cfg.RedisReadTimeout,
			WriteTimeout:   cfg.RedisWriteTimeout,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisstore.NewKV(client), nil

	case config.StoragePostgres:
		log.Info("opening postgres storage")
		kv, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		return kv, nil

	case config.StorageMemory:
		log.Warn("using in-memory storage, nothing will survive a restart")
		return memory.NewKV(), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
}
