package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Version is reported by the health endpoint
const Version = "0.1.0"

type HealthHandler struct {
	format string
	factor float64
}

func NewHealthHandler(format string, factor float64) *HealthHandler {
	return &HealthHandler{format: format, factor: factor}
}

type HealthResponse struct {
	Status  string  `json:"status"`
	Version string  `json:"version,omitempty"`
	Format  string  `json:"format,omitempty"`
	Factor  float64 `json:"factor,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// Ready has no external dependencies to probe; it reports the active defaults
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "ready",
		Format: h.format,
		Factor: h.factor,
	})
}
