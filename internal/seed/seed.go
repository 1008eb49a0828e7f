// Package seed holds the demo catalog loaded by `catalogctl seed` and the
// memory store driver.
package seed

import (
	"fmt"
	"time"

	"github.com/example/qurrah/internal/models"
)

// Product pairs a product with the slug of its category; IDs are assigned
// when the catalog is loaded.
type Product struct {
	CategorySlug string
	Product      models.Product
}

// Catalog returns the demo categories and products. Creation times are
// spaced a day apart so "newest" ordering is deterministic.
func Catalog() ([]models.Category, []Product) {
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	categories := []models.Category{
		{
			BaseModel:     models.BaseModel{CreatedAt: base},
			Slug:          "eyeglasses",
			NameEN:        "Eyeglasses",
			NameAR:        "نظارات طبية",
			DescriptionEN: ptr("Frames crafted for everyday clarity."),
			DescriptionAR: ptr("إطارات مصممة لوضوح يومي."),
			ImageURL:      ptr("/images/categories/eyeglasses.jpg"),
		},
		{
			BaseModel:     models.BaseModel{CreatedAt: base.Add(time.Hour)},
			Slug:          "sunglasses",
			NameEN:        "Sunglasses",
			NameAR:        "نظارات شمسية",
			DescriptionEN: ptr("Polarized lenses for bright days."),
			DescriptionAR: ptr("عدسات مستقطبة للأيام المشمسة."),
			ImageURL:      ptr("/images/categories/sunglasses.jpg"),
		},
	}

	black := models.Color{Name: "Black", Hex: "#000000"}
	tortoise := models.Color{Name: "Tortoise", Hex: "#8B4513"}
	gold := models.Color{Name: "Gold", Hex: "#D4AF37"}
	silver := models.Color{Name: "Silver", Hex: "#C0C0C0"}
	crystal := models.Color{Name: "Crystal", Hex: "#E8E8E8"}
	champagne := models.Color{Name: "Champagne", Hex: "#F7E7CE"}

	type row struct {
		category string
		slug     string
		name     string
		brand    string
		price    float64
		original *float64
		colors   []models.Color
		width    models.Width
		shape    models.Shape
		material models.Material
		gender   models.Gender
		isNew    bool
		best     bool
	}

	rows := []row{
		{"eyeglasses", "layla-round", "Layla", "Qurrah", 129, ptr(159.0), []models.Color{black, tortoise}, models.WidthMedium, models.ShapeRound, models.MaterialAcetate, models.GenderWomen, false, true},
		{"eyeglasses", "omar-rectangle", "Omar", "Qurrah", 139, nil, []models.Color{black, silver}, models.WidthWide, models.ShapeRectangle, models.MaterialMetal, models.GenderMen, false, false},
		{"eyeglasses", "noor-cat-eye", "Noor", "Qurrah", 149, nil, []models.Color{tortoise, champagne}, models.WidthNarrow, models.ShapeCatEye, models.MaterialAcetate, models.GenderWomen, true, false},
		{"eyeglasses", "sami-aviator", "Sami", "Qurrah Atelier", 189, ptr(219.0), []models.Color{gold, silver}, models.WidthMedium, models.ShapeAviator, models.MaterialTitanium, models.GenderUnisex, false, true},
		{"eyeglasses", "rania-oval", "Rania", "Qurrah", 119, nil, []models.Color{crystal, black}, models.WidthNarrow, models.ShapeOval, models.MaterialMixed, models.GenderWomen, true, false},
		{"eyeglasses", "khalid-square", "Khalid", "Qurrah Atelier", 159, ptr(149.0), []models.Color{black}, models.WidthExtraWide, models.ShapeSquare, models.MaterialAcetate, models.GenderMen, false, false},
		{"eyeglasses", "zain-geometric", "Zain", "Qurrah", 169, nil, []models.Color{gold, crystal}, models.WidthMedium, models.ShapeGeometric, models.MaterialMetal, models.GenderUnisex, true, true},
		{"sunglasses", "dunes-aviator", "Dunes", "Qurrah Sun", 199, nil, []models.Color{gold, black}, models.WidthWide, models.ShapeAviator, models.MaterialMetal, models.GenderMen, true, true},
		{"sunglasses", "oasis-cat-eye", "Oasis", "Qurrah Sun", 179, ptr(209.0), []models.Color{tortoise}, models.WidthMedium, models.ShapeCatEye, models.MaterialAcetate, models.GenderWomen, false, false},
		{"sunglasses", "mirage-round", "Mirage", "Qurrah Sun", 159, nil, []models.Color{silver, crystal}, models.WidthMedium, models.ShapeRound, models.MaterialTitanium, models.GenderUnisex, false, true},
	}

	products := make([]Product, 0, len(rows))
	for i, r := range rows {
		products = append(products, Product{
			CategorySlug: r.category,
			Product: models.Product{
				BaseModel:     models.BaseModel{CreatedAt: base.AddDate(0, 0, i+1)},
				Slug:          r.slug,
				Name:          r.name,
				Brand:         r.brand,
				DescriptionEN: ptr(fmt.Sprintf("%s frames by %s.", r.name, r.brand)),
				DescriptionAR: ptr(fmt.Sprintf("إطارات %s من %s.", r.name, r.brand)),
				Price:         r.price,
				OriginalPrice: r.original,
				Images: []string{
					fmt.Sprintf("/images/products/%s-front.jpg", r.slug),
					fmt.Sprintf("/images/products/%s-side.jpg", r.slug),
				},
				Colors:       r.colors,
				Width:        r.width,
				Shape:        r.shape,
				Material:     r.material,
				Gender:       r.gender,
				FrameWidth:   ptr(140.0),
				LensWidth:    ptr(52.0),
				BridgeWidth:  ptr(18.0),
				IsNew:        r.isNew,
				IsBestseller: r.best,
				InStock:      true,
			},
		})
	}
	return categories, products
}

func ptr[T any](v T) *T {
	return &v
}
