package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/routesafe/backend/internal/service"
	"github.com/routesafe/backend/internal/store"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, routeSvc *service.RouteService, statsSvc *service.StatsService, st *store.Store) {
	handler := NewHandler(routeSvc, statsSvc, st)

	// Health check
	app.Get("/health", handler.HealthCheck)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		// Route proximity and safety scoring
		api.Post("/hotspots", handler.GetHotspots)

		// Dashboard aggregates
		api.Get("/statistics", handler.GetStatistics)
		api.Get("/trends", handler.GetTrends)
		api.Get("/load-report", handler.GetLoadReport)
	}
}
