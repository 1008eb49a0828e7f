// Package bootstrap opens the store and cache selected by configuration.
// Both the HTTP server and catalogctl start from here.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/example/qurrah/internal/cache"
	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/config"
	"github.com/example/qurrah/internal/database"
	"github.com/example/qurrah/internal/docstore"
	"github.com/example/qurrah/internal/memstore"
)

// Backend is an opened catalog store plus its driver-specific handles.
type Backend struct {
	Store catalog.Store
	// DB is set for the postgres driver.
	DB *gorm.DB
	// Docs is set for the mongo driver.
	Docs  *docstore.Store
	close func(context.Context) error
}

// Close releases the backend's connections.
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// OpenStore connects the driver named by cfg.StoreDriver. The memory driver
// comes pre-seeded with the demo catalog.
func OpenStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Backend, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.Connect(cfg.DatabaseURL, log)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Store: database.NewStore(db),
			DB:    db,
			close: func(context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil

	case config.DriverMongo:
		client, err := docstore.Connect(ctx, docstore.Config{URI: cfg.MongoURI, DBName: cfg.MongoDB, Timeout: 10 * time.Second})
		if err != nil {
			return nil, err
		}
		docs := docstore.NewStore(client.Database(cfg.MongoDB))
		return &Backend{Store: docs, Docs: docs, close: client.Disconnect}, nil

	case config.DriverMemory:
		mem := memstore.New()
		if err := memstore.Seed(mem); err != nil {
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
		log.Info("using in-memory catalog store")
		return &Backend{Store: mem}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// OpenCache returns a redis cache when REDIS_ADDR is set and an in-process
// cache otherwise. A redis that cannot be reached falls back to memory.
func OpenCache(ctx context.Context, cfg *config.Config, log *slog.Logger) cache.Cache {
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err == nil {
			log.Info("using redis cache", "addr", cfg.RedisAddr)
			return rc
		}
		log.Warn("redis unavailable, falling back to memory cache", "addr", cfg.RedisAddr, "error", err)
	}
	return cache.NewMemory(time.Minute)
}
