package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/middleware"
)

// ProductHandler serves product detail and curated lists.
type ProductHandler struct {
	svc *catalog.Service
}

// NewProductHandler constructs ProductHandler.
func NewProductHandler(svc *catalog.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// RegisterProductRoutes mounts the product endpoints on router. The static
// /featured route is registered before /:slug.
func (h *ProductHandler) RegisterProductRoutes(router fiber.Router) {
	router.Get("/featured", h.ListFeatured)
	router.Get("/:slug", h.GetProduct)
	router.Get("/:slug/related", h.ListRelated)
}

// GetProduct returns a single product by slug.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.svc.ProductBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}

	locale := middleware.GetLocale(c)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    newProductView(locale, *product),
		"locale":  locale,
		"dir":     middleware.GetDirection(c),
	})
}

// ListRelated returns other products from the same category.
func (h *ProductHandler) ListRelated(c *fiber.Ctx) error {
	ctx := c.UserContext()
	product, err := h.svc.ProductBySlug(ctx, c.Params("slug"))
	if err != nil {
		return err
	}

	related, err := h.svc.RelatedProducts(ctx, *product, queryLimit(c, catalog.RelatedLimit))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": newProductViews(middleware.GetLocale(c), related)})
}

// ListFeatured returns bestsellers and new arrivals for the home page.
func (h *ProductHandler) ListFeatured(c *fiber.Ctx) error {
	featured, err := h.svc.FeaturedProducts(c.UserContext(), queryLimit(c, catalog.FeaturedLimit))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": newProductViews(middleware.GetLocale(c), featured)})
}

func queryLimit(c *fiber.Ctx, fallback int) int {
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 50 {
		return v
	}
	return fallback
}
