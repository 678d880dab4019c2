package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/foodtrack/internal/config"
	"github.com/localnerve/foodtrack/internal/services"
	"gorm.io/gorm"
)

// HealthHandler reports service health
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
}

// Health handles GET /api/health
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(c.UserContext(), h.Config, h.DB)
	if !result.Healthy() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(result)
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
