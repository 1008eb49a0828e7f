package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/handlers"
	"github.com/example/qurrah/internal/metrics"
	"github.com/example/qurrah/internal/middleware"
)

// Deps carries what the HTTP surface needs.
type Deps struct {
	Service  *catalog.Service
	Notifier handlers.ContactNotifier
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Register wires up all HTTP routes.
func Register(app *fiber.App, deps Deps) {
	catalogHandler := handlers.NewCatalogHandler(deps.Service)
	productHandler := handlers.NewProductHandler(deps.Service)
	contactHandler := handlers.NewContactHandler(deps.Notifier, deps.Logger)

	app.Get("/health", handlers.Health(deps.Service.Store()))
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler(deps.Gatherer)))
	}

	api := app.Group("/api", middleware.Metrics(), middleware.Locale())

	categoryHandler := api.Group("/categories")
	catalogHandler.RegisterCatalogRoutes(categoryHandler)

	products := api.Group("/products")
	productHandler.RegisterProductRoutes(products)

	api.Post("/contact", contactHandler.Submit)
}
