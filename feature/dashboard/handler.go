package dashboard

import (
	"merch-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the dashboard.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the dashboard routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/dashboard", h.HandleOverview)
}

// HandleOverview returns the dashboard figures.
// @Summary Dashboard Overview
// @Description Order counts per status, revenue of non-cancelled orders, catalog size, stock shortages and low-stock variants.
// @Tags dashboard
// @Produce json
// @Success 200 {object} Overview "Overview"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /dashboard [get]
func (h *Handler) HandleOverview(c *fiber.Ctx) error {
	ov, err := h.service.Overview(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Dashboard overview failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(ov)
}
