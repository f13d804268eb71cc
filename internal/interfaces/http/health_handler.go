package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
)

// HealthHandler GET /health
func HealthHandler(service string, now func() time.Time) fiber.Handler {
	if now == nil {
		now = time.Now
	}
	return func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{
			Status:    "healthy",
			Service:   service,
			Timestamp: now().UTC().Format(time.RFC3339),
		})
	}
}
