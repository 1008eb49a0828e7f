package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/middleware"
	"github.com/example/qurrah/internal/utils"
)

// CatalogHandler serves category pages and filtered listings.
type CatalogHandler struct {
	svc *catalog.Service
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// RegisterCatalogRoutes mounts the category endpoints on router.
func (h *CatalogHandler) RegisterCatalogRoutes(router fiber.Router) {
	router.Get("/", h.ListCategories)
	router.Get("/:slug", h.GetCategory)
	router.Get("/:slug/products", h.ListProducts)
	router.Get("/:slug/filters", h.GetFilterOptions)
}

// ListCategories returns every category, oldest first.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	locale := middleware.GetLocale(c)
	categories, err := h.svc.Categories(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    newCategoryViews(locale, categories),
		"locale":  locale,
		"dir":     middleware.GetDirection(c),
	})
}

// GetCategory returns a category with its newest products, the list a
// category page renders before any filter is applied.
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	locale := middleware.GetLocale(c)
	category, products, err := h.svc.CategoryPage(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"category":         newCategoryView(locale, *category),
			"products":         newProductViews(locale, products),
			"available_colors": catalog.AvailableColors(products),
		},
		"locale": locale,
		"dir":    middleware.GetDirection(c),
	})
}

// ListProducts returns the category's products filtered and sorted by the
// query string.
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	filters, err := parseFilters(c)
	if err != nil {
		return err
	}
	q := catalog.ProductQuery{
		CategorySlug: c.Params("slug"),
		Filters:      filters,
		Sort:         parseSort(c),
		Page:         utils.ParsePagination(c),
	}

	products, err := h.svc.Products(c.UserContext(), q)
	if err != nil {
		return err
	}

	locale := middleware.GetLocale(c)
	return c.JSON(fiber.Map{
		"success": true,
		"data":    newProductViews(locale, products),
		"meta": fiber.Map{
			"filters":        filters,
			"active_filters": catalog.ActiveCount(filters),
			"sort":           q.Sort,
			"limit":          q.Page.Limit,
			"offset":         q.Page.Offset,
			"count":          len(products),
		},
	})
}

// GetFilterOptions returns the facet values present in the category.
func (h *CatalogHandler) GetFilterOptions(c *fiber.Ctx) error {
	opts, err := h.svc.FilterOptions(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": opts})
}
