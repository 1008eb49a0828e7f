package catalog

import (
	"context"
	"slices"

	"github.com/example/qurrah/internal/models"
)

// ProductStore executes product queries against the backing data service.
// Implementations pass failures through as *StoreError and never retry or
// cache.
type ProductStore interface {
	Execute(ctx context.Context, q QuerySpec) ([]models.Product, error)
}

// CategoryStore reads categories. CategoryBySlug returns (nil, nil) for an
// unknown slug.
type CategoryStore interface {
	CategoryResolver
	Categories(ctx context.Context) ([]models.Category, error)
}

// Store is the full read surface a storefront backend needs.
type Store interface {
	ProductStore
	CategoryStore
}

// SortProducts orders products in place according to q.
func SortProducts(products []models.Product, q QuerySpec) {
	slices.SortStableFunc(products, q.Compare)
}

// Window applies q's offset and limit to an already ordered slice.
func Window(products []models.Product, q QuerySpec) []models.Product {
	if q.Offset > 0 {
		if q.Offset >= len(products) {
			return []models.Product{}
		}
		products = products[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(products) {
		products = products[:q.Limit]
	}
	return products
}
