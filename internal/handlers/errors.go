package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/example/qurrah/internal/catalog"
)

// ErrorHandler maps catalog errors onto HTTP statuses for fiber.Config.
// Store failures surface as 502 without leaking the cause.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, message := classify(err)
		if status >= fiber.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", status,
				"error", err,
			)
		}
		return c.Status(status).JSON(fiber.Map{"success": false, "error": message})
	}
}

func classify(err error) (int, string) {
	var (
		fe *fiber.Error
		nf *catalog.NotFoundError
		ve *catalog.ValidationError
	)
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.As(err, &nf):
		return fiber.StatusNotFound, nf.Error()
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, ve.Error()
	case catalog.IsStore(err):
		return fiber.StatusBadGateway, "catalog store unavailable"
	}
	return fiber.StatusInternalServerError, "internal server error"
}
