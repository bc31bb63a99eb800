package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"hobbyhub/internal/services"
)

// DashboardHandler handles HTTP requests for the dashboard summary.
type DashboardHandler struct {
	service *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		service: service,
	}
}

// RegisterRoutes registers the dashboard routes with the Fiber app.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	dashboardRoutes := router.Group("/dashboard")
	dashboardRoutes.Get("/summary", h.HandleSummary)
}

// HandleSummary returns aggregate group counts for the given email.
func (h *DashboardHandler) HandleSummary(c *fiber.Ctx) error {
	email := c.Query("email")

	summary, err := h.service.Summary(c.Context(), email)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": verr.Error(),
			})
		}
		log.Printf("Error computing dashboard summary for %s: %v", email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute summary",
		})
	}
	return c.JSON(summary)
}
