// Package memstore is an in-process catalog store. It evaluates QuerySpecs
// directly and backs tests and the memory driver.
package memstore

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/metrics"
	"github.com/example/qurrah/internal/models"
	"github.com/example/qurrah/internal/seed"
)

const backend = "memory"

type Store struct {
	mu         sync.RWMutex
	categories []models.Category
	products   []models.Product
}

func New() *Store {
	return &Store{}
}

// AddCategory stores c, assigning an ID and timestamp when missing.
func (s *Store) AddCategory(c models.Category) models.Category {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = append(s.categories, c)
	return c
}

// AddProduct stores p, assigning an ID and timestamp when missing.
func (s *Store) AddProduct(p models.Product) models.Product {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.Category = nil
	p.SyncColorNames()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
	return p
}

func (s *Store) Categories(ctx context.Context) (categories []models.Category, err error) {
	defer metrics.ObserveStore(backend, "categories", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return nil, catalog.WrapStore("categories", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	categories = slices.Clone(s.categories)
	slices.SortStableFunc(categories, func(a, b models.Category) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return categories, nil
}

func (s *Store) CategoryBySlug(ctx context.Context, slug string) (category *models.Category, err error) {
	defer metrics.ObserveStore(backend, "category_by_slug", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return nil, catalog.WrapStore("category by slug", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Slug == slug {
			found := c
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) Execute(ctx context.Context, q catalog.QuerySpec) (products []models.Product, err error) {
	defer metrics.ObserveStore(backend, "execute", time.Now(), &err)
	if err := ctx.Err(); err != nil {
		return nil, catalog.WrapStore("execute", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	products = make([]models.Product, 0)
	for _, p := range s.products {
		if !q.Matches(p) {
			continue
		}
		if q.IncludeCategory {
			p.Category = s.categoryByID(p.CategoryID)
		}
		products = append(products, p)
	}
	catalog.SortProducts(products, q)
	return catalog.Window(products, q), nil
}

func (s *Store) categoryByID(id uuid.UUID) *models.Category {
	for _, c := range s.categories {
		if c.ID == id {
			found := c
			return &found
		}
	}
	return nil
}

// Seed loads the demo catalog into s.
func Seed(s *Store) error {
	categories, products := seed.Catalog()
	ids := make(map[string]uuid.UUID, len(categories))
	for _, c := range categories {
		ids[c.Slug] = s.AddCategory(c).ID
	}
	for _, sp := range products {
		p := sp.Product
		p.CategoryID = ids[sp.CategorySlug]
		if err := p.Validate(); err != nil {
			return err
		}
		s.AddProduct(p)
	}
	return nil
}
