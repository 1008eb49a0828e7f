package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/qurrah/internal/models"
	"github.com/example/qurrah/internal/utils"
)

type categoryView struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
}

type productView struct {
	ID                     uuid.UUID       `json:"id"`
	Slug                   string          `json:"slug"`
	Name                   string          `json:"name"`
	Brand                  string          `json:"brand"`
	Description            string          `json:"description,omitempty"`
	Price                  float64         `json:"price"`
	PriceFormatted         string          `json:"price_formatted"`
	OriginalPrice          *float64        `json:"original_price,omitempty"`
	OriginalPriceFormatted string          `json:"original_price_formatted,omitempty"`
	Images                 []string        `json:"images"`
	PrimaryImage           string          `json:"primary_image,omitempty"`
	Colors                 []models.Color  `json:"colors"`
	Width                  models.Width    `json:"width"`
	Shape                  models.Shape    `json:"shape"`
	Material               models.Material `json:"material"`
	Gender                 models.Gender   `json:"gender"`
	FrameWidth             *float64        `json:"frame_width,omitempty"`
	LensWidth              *float64        `json:"lens_width,omitempty"`
	BridgeWidth            *float64        `json:"bridge_width,omitempty"`
	IsNew                  bool            `json:"is_new"`
	IsBestseller           bool            `json:"is_bestseller"`
	InStock                bool            `json:"in_stock"`
	Category               *categoryView   `json:"category,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
}

func newCategoryView(locale string, c models.Category) categoryView {
	return categoryView{
		ID:          c.ID,
		Slug:        c.Slug,
		Name:        c.Name(locale),
		Description: c.Description(locale),
		ImageURL:    c.ImageURL,
	}
}

func newCategoryViews(locale string, categories []models.Category) []categoryView {
	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, newCategoryView(locale, c))
	}
	return views
}

// newProductView localizes p. The original price is only exposed when it
// marks a real discount.
func newProductView(locale string, p models.Product) productView {
	v := productView{
		ID:             p.ID,
		Slug:           p.Slug,
		Name:           p.Name,
		Brand:          p.Brand,
		Description:    p.Description(locale),
		Price:          p.Price,
		PriceFormatted: utils.FormatPrice(locale, p.Price),
		Images:         p.Images,
		PrimaryImage:   p.PrimaryImage(),
		Colors:         p.Colors,
		Width:          p.Width,
		Shape:          p.Shape,
		Material:       p.Material,
		Gender:         p.Gender,
		FrameWidth:     p.FrameWidth,
		LensWidth:      p.LensWidth,
		BridgeWidth:    p.BridgeWidth,
		IsNew:          p.IsNew,
		IsBestseller:   p.IsBestseller,
		InStock:        p.InStock,
		CreatedAt:      p.CreatedAt,
	}
	if v.Images == nil {
		v.Images = []string{}
	}
	if v.Colors == nil {
		v.Colors = []models.Color{}
	}
	if p.OnSale() {
		v.OriginalPrice = p.OriginalPrice
		v.OriginalPriceFormatted = utils.FormatOriginalPrice(locale, p)
	}
	if p.Category != nil {
		cv := newCategoryView(locale, *p.Category)
		v.Category = &cv
	}
	return v
}

func newProductViews(locale string, products []models.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(locale, p))
	}
	return views
}
