package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/example/qurrah/internal/bootstrap"
	"github.com/example/qurrah/internal/cache"
	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/config"
	"github.com/example/qurrah/internal/database"
	"github.com/example/qurrah/internal/docstore"
	"github.com/example/qurrah/internal/logger"
)

// boot loads config and opens the configured store.
func boot(ctx context.Context) (*config.Config, *bootstrap.Backend, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logger.New(cfg.AppEnv)
	backend, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, backend, log, nil
}

// catalogctl migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the catalog schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, backend, _, err := boot(ctx)
		if err != nil {
			return err
		}
		defer backend.Close(context.Background())

		switch {
		case backend.DB != nil:
			fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
			return database.Migrate(backend.DB)
		case backend.Docs != nil:
			fmt.Fprintln(cmd.OutOrStdout(), "Creating indexes…")
			return backend.Docs.EnsureIndexes(ctx)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Nothing to migrate for the %s driver\n", cfg.StoreDriver)
		return nil
	},
}

// catalogctl seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, backend, log, err := boot(ctx)
		if err != nil {
			return err
		}
		defer backend.Close(context.Background())

		var n int
		switch {
		case backend.DB != nil:
			if err := database.Migrate(backend.DB); err != nil {
				return err
			}
			n, err = database.Seed(ctx, backend.DB)
		case backend.Docs != nil:
			n, err = docstore.Seed(ctx, backend.Docs)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "The %s driver seeds itself on start\n", cfg.StoreDriver)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products\n", n)

		// A running server may still hold the old catalog in a shared cache.
		if cfg.RedisAddr != "" {
			c := bootstrap.OpenCache(ctx, cfg, log)
			invalidateCache(ctx, c, backend.Store, log)
			if closer, ok := c.(io.Closer); ok {
				_ = closer.Close()
			}
		}
		return nil
	},
}

func invalidateCache(ctx context.Context, c cache.Cache, store catalog.Store, log *slog.Logger) {
	catalog.NewService(store, c, 0, log).Invalidate(ctx)
}
