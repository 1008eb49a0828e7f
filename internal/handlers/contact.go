package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/example/qurrah/internal/middleware"
	"github.com/example/qurrah/internal/services"
)

// ContactNotifier delivers contact form submissions to the shop staff.
type ContactNotifier interface {
	SendContactMessage(ctx context.Context, msg services.ContactMessage) error
}

// ContactHandler accepts storefront contact form submissions.
type ContactHandler struct {
	notifier ContactNotifier
	validate *validator.Validate
	log      *slog.Logger
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(notifier ContactNotifier, log *slog.Logger) *ContactHandler {
	return &ContactHandler{notifier: notifier, validate: validator.New(), log: log}
}

type contactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
	Subject string `json:"subject" validate:"required,min=3,max=200"`
	Message string `json:"message" validate:"required,min=10,max=5000"`
}

// Submit validates the form and forwards it to the notifier.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "validation failed",
				"fields":  fieldErrors(verrs),
			})
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	msg := services.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Locale:  middleware.GetLocale(c),
	}
	if err := h.notifier.SendContactMessage(c.UserContext(), msg); err != nil {
		h.log.Error("contact message delivery failed", "email", req.Email, "error", err)
		return fiber.NewError(fiber.StatusBadGateway, "failed to deliver message")
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"success": true})
}

func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "is required"
		case "email":
			fields[name] = "must be a valid email address"
		case "min":
			fields[name] = "must be at least " + fe.Param() + " characters"
		case "max":
			fields[name] = "must be at most " + fe.Param() + " characters"
		default:
			fields[name] = "is invalid"
		}
	}
	return fields
}
