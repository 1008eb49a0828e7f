package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health answers liveness checks, probing the store when it supports it.
func Health(store any) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, ok := store.(Pinger)
		if !ok {
			return c.JSON(fiber.Map{"status": "ok"})
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "error": "store unreachable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
