package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/qurrah/internal/cache"
	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/logger"
	"github.com/example/qurrah/internal/memstore"
	"github.com/example/qurrah/internal/models"
)

// countingStore counts category lookups so cache hits are observable.
type countingStore struct {
	catalog.Store
	categoryCalls int
	fail          error
}

func (c *countingStore) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	c.categoryCalls++
	if c.fail != nil {
		return nil, c.fail
	}
	return c.Store.CategoryBySlug(ctx, slug)
}

func (c *countingStore) Execute(ctx context.Context, q catalog.QuerySpec) ([]models.Product, error) {
	if c.fail != nil {
		return nil, c.fail
	}
	return c.Store.Execute(ctx, q)
}

func newService(t *testing.T) (*catalog.Service, *countingStore) {
	t.Helper()
	mem := memstore.New()
	require.NoError(t, memstore.Seed(mem))
	store := &countingStore{Store: mem}
	c := cache.NewMemory(time.Minute)
	t.Cleanup(c.Close)
	return catalog.NewService(store, c, time.Minute, logger.Discard()), store
}

func TestServiceCategories(t *testing.T) {
	svc, _ := newService(t)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "eyeglasses", categories[0].Slug)
	assert.Equal(t, "نظارات شمسية", categories[1].Name(models.LocaleArabic))
}

func TestServiceCategoryBySlugIsCached(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	first, err := svc.CategoryBySlug(ctx, "eyeglasses")
	require.NoError(t, err)
	second, err := svc.CategoryBySlug(ctx, "eyeglasses")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, store.categoryCalls)

	svc.Invalidate(ctx)
	_, err = svc.CategoryBySlug(ctx, "eyeglasses")
	require.NoError(t, err)
	assert.Equal(t, 2, store.categoryCalls)
}

func TestServiceCategoryNotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CategoryBySlug(context.Background(), "monocles")
	assert.True(t, catalog.IsNotFound(err))

	_, _, err = svc.CategoryPage(context.Background(), "monocles")
	assert.True(t, catalog.IsNotFound(err))

	_, err = svc.Products(context.Background(), catalog.ProductQuery{CategorySlug: "monocles"})
	assert.True(t, catalog.IsNotFound(err))
}

func TestServiceCategoryPageIsNewestFirst(t *testing.T) {
	svc, _ := newService(t)

	category, products, err := svc.CategoryPage(context.Background(), "eyeglasses")
	require.NoError(t, err)
	assert.Equal(t, "Eyeglasses", category.Name(models.LocaleEnglish))
	require.Len(t, products, 7)
	assert.Equal(t, "zain-geometric", products[0].Slug)
	assert.Equal(t, "layla-round", products[len(products)-1].Slug)
}

func TestServiceProductsFiltersAndPages(t *testing.T) {
	svc, _ := newService(t)
	max := 150.0

	products, err := svc.Products(context.Background(), catalog.ProductQuery{
		CategorySlug: "eyeglasses",
		Filters:      catalog.Filters{Material: []models.Material{models.MaterialAcetate}, MaxPrice: &max},
		Sort:         catalog.SortPriceDesc,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"noor-cat-eye", "layla-round"}, slugs(products))

	page, err := svc.Products(context.Background(), catalog.ProductQuery{
		CategorySlug: "eyeglasses",
		Sort:         catalog.SortPriceAsc,
		Page:         catalog.Page{Limit: 2, Offset: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"layla-round", "omar-rectangle"}, slugs(page))
}

func TestServiceColourFilterMatchesAnySelected(t *testing.T) {
	svc, _ := newService(t)

	products, err := svc.Products(context.Background(), catalog.ProductQuery{
		CategorySlug: "sunglasses",
		Filters:      catalog.Filters{Colors: []string{"Tortoise", "Silver"}},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"oasis-cat-eye", "mirage-round"}, slugs(products))
}

func TestServiceProductBySlugAndRelated(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	product, err := svc.ProductBySlug(ctx, "layla-round")
	require.NoError(t, err)
	require.NotNil(t, product.Category)
	assert.Equal(t, "eyeglasses", product.Category.Slug)
	assert.True(t, product.OnSale())

	related, err := svc.RelatedProducts(ctx, *product, 0)
	require.NoError(t, err)
	assert.Len(t, related, catalog.RelatedLimit)
	for _, p := range related {
		assert.NotEqual(t, product.ID, p.ID)
		assert.Equal(t, product.CategoryID, p.CategoryID)
	}

	_, err = svc.ProductBySlug(ctx, "missing")
	assert.True(t, catalog.IsNotFound(err))
}

func TestServiceFeaturedProducts(t *testing.T) {
	svc, _ := newService(t)

	featured, err := svc.FeaturedProducts(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, featured, 7)
	for _, p := range featured {
		assert.True(t, p.IsNew || p.IsBestseller, p.Slug)
		assert.NotNil(t, p.Category)
	}

	limited, err := svc.FeaturedProducts(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, limited, 3)
}

func TestServiceFilterOptions(t *testing.T) {
	svc, _ := newService(t)

	opts, err := svc.FilterOptions(context.Background(), "sunglasses")
	require.NoError(t, err)
	assert.ElementsMatch(t, []models.Shape{models.ShapeAviator, models.ShapeCatEye, models.ShapeRound}, opts.Shapes)
	assert.ElementsMatch(t, []string{"Gold", "Black", "Tortoise", "Silver", "Crystal"}, opts.Colors)
	assert.Equal(t, catalog.PriceRange{Min: 159, Max: 199}, opts.PriceRange)
}

func TestCollectFilterOptionsEmptyFallsBack(t *testing.T) {
	opts := catalog.CollectFilterOptions(nil)
	assert.Equal(t, catalog.PriceRange{Min: 0, Max: 1000}, opts.PriceRange)
	assert.NotNil(t, opts.Colors)
}

func TestServiceStoreFailureIsClassified(t *testing.T) {
	svc, store := newService(t)
	store.fail = errors.New("dial tcp: connection refused")

	_, err := svc.Products(context.Background(), catalog.ProductQuery{})
	require.Error(t, err)
	assert.True(t, catalog.IsStore(err))

	_, err = svc.CategoryBySlug(context.Background(), "eyeglasses")
	assert.True(t, catalog.IsStore(err))
}
