package catalog

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/example/qurrah/internal/cache"
	"github.com/example/qurrah/internal/metrics"
	"github.com/example/qurrah/internal/models"
)

const (
	RelatedLimit  = 4
	FeaturedLimit = 8

	categoryKeyPrefix = "category:"
	categoriesKey     = "categories:all"
	filtersKeyPrefix  = "filters:"
)

// ProductQuery is a listing request as it arrives from a page or handler.
type ProductQuery struct {
	CategorySlug string
	Filters      Filters
	Sort         Sort
	Page         Page
}

// PriceRange is the inclusive span of prices in a result set.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FilterOptions lists the facet values present in a category.
type FilterOptions struct {
	Shapes     []models.Shape    `json:"shapes"`
	Materials  []models.Material `json:"materials"`
	Widths     []models.Width    `json:"widths"`
	Colors     []string          `json:"colors"`
	PriceRange PriceRange        `json:"price_range"`
}

// Service serves the page-level catalog reads. Category lookups and filter
// options are cached; product listings always hit the store.
type Service struct {
	store      Store
	translator *Translator
	cache      cache.Cache
	ttl        time.Duration
	log        *slog.Logger
}

func NewService(store Store, c cache.Cache, ttl time.Duration, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := &Service{store: store, cache: c, ttl: ttl, log: log}
	s.translator = NewTranslator(cachedResolver{s})
	return s
}

// Translator returns the translator bound to this service's cached category lookup.
func (s *Service) Translator() *Translator {
	return s.translator
}

// Store returns the product store the service reads from.
func (s *Service) Store() ProductStore {
	return s.store
}

// Categories returns every category, oldest first.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if s.cacheGet(ctx, "categories", categoriesKey, &categories) {
		return categories, nil
	}
	categories, err := s.store.Categories(ctx)
	if err != nil {
		return nil, WrapStore("categories", err)
	}
	s.cacheSet(ctx, categoriesKey, categories)
	return categories, nil
}

// CategoryBySlug resolves a category or returns a NotFoundError.
func (s *Service) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if s.cacheGet(ctx, "category", categoryKeyPrefix+slug, &category) {
		return &category, nil
	}
	found, err := s.store.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, WrapStore("category by slug", err)
	}
	if found == nil {
		return nil, &NotFoundError{Resource: "category", Slug: slug}
	}
	s.cacheSet(ctx, categoryKeyPrefix+slug, found)
	return found, nil
}

// CategoryPage loads what a category page renders before any client-side
// filtering: the category and its newest products.
func (s *Service) CategoryPage(ctx context.Context, slug string) (*models.Category, []models.Product, error) {
	category, err := s.CategoryBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.Products(ctx, ProductQuery{CategorySlug: slug, Sort: SortNewest})
	if err != nil {
		return nil, nil, err
	}
	return category, products, nil
}

// Products translates and executes a listing query.
func (s *Service) Products(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	if q.Sort == "" {
		q.Sort = SortNewest
	}
	qs, err := s.translator.Translate(ctx, q.CategorySlug, q.Filters, q.Sort, q.Page)
	if err != nil {
		return nil, err
	}
	products, err := s.store.Execute(ctx, qs)
	if err != nil {
		return nil, WrapStore("execute", err)
	}
	return products, nil
}

// ProductBySlug loads one product with its category.
func (s *Service) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	products, err := s.store.Execute(ctx, QuerySpec{Slug: slug, IncludeCategory: true, Limit: 1})
	if err != nil {
		return nil, WrapStore("product by slug", err)
	}
	if len(products) == 0 {
		return nil, &NotFoundError{Resource: "product", Slug: slug}
	}
	return &products[0], nil
}

// RelatedProducts returns up to limit other products from the same category.
func (s *Service) RelatedProducts(ctx context.Context, product models.Product, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = RelatedLimit
	}
	categoryID, productID := product.CategoryID, product.ID
	products, err := s.store.Execute(ctx, QuerySpec{
		CategoryID:      &categoryID,
		ExcludeID:       &productID,
		IncludeCategory: true,
		Limit:           limit,
	})
	if err != nil {
		return nil, WrapStore("related products", err)
	}
	return products, nil
}

// FeaturedProducts returns up to limit bestsellers or new arrivals.
func (s *Service) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = FeaturedLimit
	}
	products, err := s.store.Execute(ctx, QuerySpec{FeaturedOnly: true, IncludeCategory: true, Limit: limit})
	if err != nil {
		return nil, WrapStore("featured products", err)
	}
	return products, nil
}

// FilterOptions collects the facet values present in a category. An empty
// slug covers the whole catalog.
func (s *Service) FilterOptions(ctx context.Context, slug string) (FilterOptions, error) {
	var opts FilterOptions
	key := filtersKeyPrefix + slug
	if s.cacheGet(ctx, "filters", key, &opts) {
		return opts, nil
	}

	qs := QuerySpec{}
	if slug != "" {
		category, err := s.CategoryBySlug(ctx, slug)
		if err != nil {
			return FilterOptions{}, err
		}
		id := category.ID
		qs.CategoryID = &id
	}
	products, err := s.store.Execute(ctx, qs)
	if err != nil {
		return FilterOptions{}, WrapStore("filter options", err)
	}
	opts = CollectFilterOptions(products)
	s.cacheSet(ctx, key, opts)
	return opts, nil
}

// Invalidate drops cached categories and filter options.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, prefix := range []string{categoryKeyPrefix, categoriesKey, filtersKeyPrefix} {
		if err := s.cache.DeleteByPrefix(ctx, prefix); err != nil {
			s.log.Warn("cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
}

// CollectFilterOptions derives distinct facet values in first-seen order.
// With no products the price range falls back to 0..1000.
func CollectFilterOptions(products []models.Product) FilterOptions {
	opts := FilterOptions{
		Shapes:     []models.Shape{},
		Materials:  []models.Material{},
		Widths:     []models.Width{},
		Colors:     []string{},
		PriceRange: PriceRange{Min: 0, Max: 1000},
	}
	for i, p := range products {
		opts.Shapes = appendUnique(opts.Shapes, p.Shape)
		opts.Materials = appendUnique(opts.Materials, p.Material)
		opts.Widths = appendUnique(opts.Widths, p.Width)
		for _, c := range p.Colors {
			opts.Colors = appendUnique(opts.Colors, c.Name)
		}
		if i == 0 {
			opts.PriceRange = PriceRange{Min: p.Price, Max: p.Price}
			continue
		}
		opts.PriceRange.Min = min(opts.PriceRange.Min, p.Price)
		opts.PriceRange.Max = max(opts.PriceRange.Max, p.Price)
	}
	return opts
}

func appendUnique[T comparable](set []T, v T) []T {
	if slices.Contains(set, v) {
		return set
	}
	return append(set, v)
}

func (s *Service) cacheGet(ctx context.Context, family, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	if s.cache.Get(ctx, key, dest) {
		metrics.CacheLookups.WithLabelValues(family, "hit").Inc()
		return true
	}
	metrics.CacheLookups.WithLabelValues(family, "miss").Inc()
	return false
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn("cache write failed", "key", key, "error", err)
	}
}

// cachedResolver lets the translator resolve slugs through the service cache
// while keeping the store's (nil, nil) contract for unknown slugs.
type cachedResolver struct {
	s *Service
}

func (r cachedResolver) CategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	category, err := r.s.CategoryBySlug(ctx, slug)
	if IsNotFound(err) {
		return nil, nil
	}
	return category, err
}
