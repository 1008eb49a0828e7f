package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/example/qurrah/internal/models"
	"github.com/example/qurrah/internal/seed"
)

// Seed loads the demo catalog. Rows whose slug already exists are left alone.
func Seed(ctx context.Context, conn *gorm.DB) (int, error) {
	categories, products := seed.Catalog()
	inserted := 0

	err := conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := make(map[string]models.Category, len(categories))
		for i := range categories {
			category := categories[i]
			if err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).
				Create(&category).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", category.Slug, err)
			}
			// Re-read so existing rows keep their IDs.
			var stored models.Category
			if err := tx.Where("slug = ?", category.Slug).First(&stored).Error; err != nil {
				return err
			}
			ids[stored.Slug] = stored
		}

		for _, sp := range products {
			product := sp.Product
			category, ok := ids[sp.CategorySlug]
			if !ok {
				return fmt.Errorf("seed product %s: unknown category %s", product.Slug, sp.CategorySlug)
			}
			product.CategoryID = category.ID
			if err := product.Validate(); err != nil {
				return err
			}
			result := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}).
				Omit("Category").Create(&product)
			if result.Error != nil {
				return fmt.Errorf("seed product %s: %w", product.Slug, result.Error)
			}
			inserted += int(result.RowsAffected)
		}
		return nil
	})
	return inserted, err
}
