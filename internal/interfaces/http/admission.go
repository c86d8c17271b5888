package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zhihern080614/mochibay-backend/internal/application/dto"
	"golang.org/x/sync/semaphore"
)

// Admission acota las requests que tocan el almacén: capacity = conexiones del pool + cola.
// Con la cola llena responde 503 BUSY en vez de esperar indefinidamente.
func Admission(capacity int64, onReject func()) fiber.Handler {
	sem := semaphore.NewWeighted(capacity)
	return func(c *fiber.Ctx) error {
		if !sem.TryAcquire(1) {
			if onReject != nil {
				onReject()
			}
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "BUSY",
				Message: "Server is busy, please retry.",
			})
		}
		defer sem.Release(1)
		return c.Next()
	}
}

// RequestTimeout fija un deadline en c.UserContext(); los repositorios lo respetan
// también al esperar una conexión del pool.
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
