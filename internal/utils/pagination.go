package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/qurrah/internal/catalog"
)

const (
	// MaxPageSize caps the limit a client may request.
	MaxPageSize = 100
	// MaxPage caps ?page= so the derived offset stays in range.
	MaxPage = 1_000_000
)

// ParsePagination reads limit/offset (or page) query params. A missing limit
// stays zero so an unpaged listing returns everything; an offset alone gets
// the default page size when the translator normalizes the page.
func ParsePagination(c *fiber.Ctx) catalog.Page {
	limit := parseInt(c.Query("limit"), 0)
	offset := parseInt(c.Query("offset"), 0)
	if limit < 0 {
		limit = 0
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	if page := parseInt(c.Query("page"), 0); page > 0 && offset == 0 {
		if limit == 0 {
			limit = catalog.DefaultPageSize
		}
		page = min(page, MaxPage)
		offset = (page - 1) * limit
	}

	return catalog.Page{Limit: limit, Offset: offset}.Normalize()
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
