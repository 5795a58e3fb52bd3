package http

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/routesafe/backend/internal/domain"
	"github.com/routesafe/backend/internal/service"
	"github.com/routesafe/backend/internal/store"
)

// Handler contains all HTTP handlers
type Handler struct {
	routeSvc *service.RouteService
	statsSvc *service.StatsService
	store    *store.Store
}

// NewHandler creates a new handler
func NewHandler(routeSvc *service.RouteService, statsSvc *service.StatsService, st *store.Store) *Handler {
	return &Handler{
		routeSvc: routeSvc,
		statsSvc: statsSvc,
		store:    st,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "routesafe-backend",
		"version": "1.0.0",
		"records": h.store.Len(),
	})
}

// GetHotspots assesses a route: accidents near it plus the safety score
func (h *Handler) GetHotspots(c *fiber.Ctx) error {
	var req domain.RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	assessment, err := h.routeSvc.AssessRoute(req)
	if err != nil {
		if errors.Is(err, domain.ErrMissingInput) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid coordinates")
		}
		log.Printf("Route assessment error: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to assess route")
	}

	return c.JSON(assessment)
}

// GetStatistics returns the dataset summary for the dashboard
func (h *Handler) GetStatistics(c *fiber.Ctx) error {
	return c.JSON(h.statsSvc.Summary())
}

// GetTrends returns severity and casualty aggregates for trend charts
func (h *Handler) GetTrends(c *fiber.Ctx) error {
	return c.JSON(h.statsSvc.Trends())
}

// GetLoadReport exposes what the load boundary accepted and dropped
func (h *Handler) GetLoadReport(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data":    h.store.Report(),
	})
}
