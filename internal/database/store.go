package database

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/metrics"
	"github.com/example/qurrah/internal/models"
)

const backend = "postgres"

// Store runs catalog queries through gorm against postgres.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Categories lists every category, oldest first.
func (s *Store) Categories(ctx context.Context) (categories []models.Category, err error) {
	defer metrics.ObserveStore(backend, "categories", time.Now(), &err)
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&categories).Error; err != nil {
		return nil, catalog.WrapStore("categories", err)
	}
	return categories, nil
}

// CategoryBySlug returns (nil, nil) when no category carries slug.
func (s *Store) CategoryBySlug(ctx context.Context, slug string) (category *models.Category, err error) {
	defer metrics.ObserveStore(backend, "category_by_slug", time.Now(), &err)
	var found models.Category
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, catalog.WrapStore("category by slug", err)
	}
	return &found, nil
}

// Execute runs q and returns the matching products in q's order.
func (s *Store) Execute(ctx context.Context, q catalog.QuerySpec) (products []models.Product, err error) {
	defer metrics.ObserveStore(backend, "execute", time.Now(), &err)
	products = make([]models.Product, 0)
	if err := s.Query(s.db.WithContext(ctx), q).Find(&products).Error; err != nil {
		return nil, catalog.WrapStore("execute", err)
	}
	return products, nil
}

// Query applies q to tx without executing it.
func (s *Store) Query(tx *gorm.DB, q catalog.QuerySpec) *gorm.DB {
	query := tx.Model(&models.Product{})

	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}
	if q.Slug != "" {
		query = query.Where("slug = ?", q.Slug)
	}
	if q.ExcludeID != nil {
		query = query.Where("id <> ?", *q.ExcludeID)
	}
	if len(q.Genders) > 0 {
		query = query.Where("gender IN ?", q.Genders)
	}
	if len(q.Widths) > 0 {
		query = query.Where("width IN ?", q.Widths)
	}
	if len(q.Shapes) > 0 {
		query = query.Where("shape IN ?", q.Shapes)
	}
	if len(q.Materials) > 0 {
		query = query.Where("material IN ?", q.Materials)
	}
	if len(q.Colors) > 0 {
		query = query.Where("color_names && ?", pq.Array(q.Colors))
	}
	if q.MinPrice != nil {
		query = query.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price <= ?", *q.MaxPrice)
	}
	if q.FeaturedOnly {
		query = query.Where("(is_bestseller = ? OR is_new = ?)", true, true)
	}
	if q.IncludeCategory {
		query = query.Preload("Category")
	}

	for _, o := range q.Orders {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Field}, Desc: o.Desc})
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}
	return query
}

// Ping checks connectivity for health probes.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
