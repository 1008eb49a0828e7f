package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/example/qurrah/internal/catalog"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", &catalog.NotFoundError{Resource: "category", Slug: "x"}, fiber.StatusNotFound},
		{"wrapped not found", fmt.Errorf("page: %w", &catalog.NotFoundError{Resource: "product", Slug: "y"}), fiber.StatusNotFound},
		{"validation", &catalog.ValidationError{Field: "shape", Reason: "unknown"}, fiber.StatusBadRequest},
		{"store", catalog.WrapStore("execute", errors.New("boom")), fiber.StatusBadGateway},
		{"fiber error", fiber.NewError(fiber.StatusTeapot, "tea"), fiber.StatusTeapot},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := classify(tc.err)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, msg)
		})
	}
}
