package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zhihern080614/mochibay-backend/internal/domain/repository"
)

// DefaultHealthTimeout tope del ping al almacén en /health.
const DefaultHealthTimeout = 3 * time.Second

// Health responde el estado del servicio; 503 si el almacén no responde al ping dentro de timeout.
func Health(service string, store repository.Store, timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable", "service": service})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
