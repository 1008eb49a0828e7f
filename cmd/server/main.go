package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/qurrah/internal/bootstrap"
	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/config"
	"github.com/example/qurrah/internal/database"
	"github.com/example/qurrah/internal/handlers"
	"github.com/example/qurrah/internal/logger"
	"github.com/example/qurrah/internal/metrics"
	"github.com/example/qurrah/internal/routes"
	"github.com/example/qurrah/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := bootstrap.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Error("store connection failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := backend.Close(closeCtx); err != nil {
			log.Warn("store close failed", "error", err)
		}
	}()

	switch {
	case backend.DB != nil:
		if err := database.Migrate(backend.DB); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
	case backend.Docs != nil:
		if err := backend.Docs.EnsureIndexes(ctx); err != nil {
			log.Warn("mongo index setup failed", "error", err)
		}
	}

	reg := prometheus.NewRegistry()
	if err := metrics.Register(reg); err != nil {
		log.Error("metrics registration failed", "error", err)
		os.Exit(1)
	}

	svc := catalog.NewService(backend.Store, bootstrap.OpenCache(ctx, cfg, log), cfg.CacheTTL, log)
	telegram := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat, log)

	app := fiber.New(fiber.Config{
		AppName:      "Qurrah Catalog",
		ErrorHandler: handlers.ErrorHandler(log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	routes.Register(app, routes.Deps{
		Service:  svc,
		Notifier: telegram,
		Gatherer: reg,
		Logger:   log,
	})

	go func() {
		<-ctx.Done()
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Warn("shutdown incomplete", "error", err)
		}
	}()

	log.Info("starting server", "port", cfg.AppPort, "driver", cfg.StoreDriver)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Error("fiber.Listen error", "error", err)
	}
}
