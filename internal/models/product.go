package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Width string

const (
	WidthNarrow    Width = "narrow"
	WidthMedium    Width = "medium"
	WidthWide      Width = "wide"
	WidthExtraWide Width = "extra-wide"
)

type Shape string

const (
	ShapeRound     Shape = "round"
	ShapeSquare    Shape = "square"
	ShapeRectangle Shape = "rectangle"
	ShapeAviator   Shape = "aviator"
	ShapeCatEye    Shape = "cat-eye"
	ShapeGeometric Shape = "geometric"
	ShapeOval      Shape = "oval"
)

type Material string

const (
	MaterialAcetate  Material = "acetate"
	MaterialMetal    Material = "metal"
	MaterialTitanium Material = "titanium"
	MaterialMixed    Material = "mixed"
)

type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderUnisex Gender = "unisex"
)

// Widths lists frame widths in display order.
func Widths() []Width {
	return []Width{WidthNarrow, WidthMedium, WidthWide, WidthExtraWide}
}

// Shapes lists frame shapes in display order.
func Shapes() []Shape {
	return []Shape{ShapeRound, ShapeSquare, ShapeRectangle, ShapeAviator, ShapeCatEye, ShapeGeometric, ShapeOval}
}

// Materials lists frame materials in display order.
func Materials() []Material {
	return []Material{MaterialAcetate, MaterialMetal, MaterialTitanium, MaterialMixed}
}

// Genders lists the audiences a product can target.
func Genders() []Gender {
	return []Gender{GenderMen, GenderWomen, GenderUnisex}
}

func (w Width) Valid() bool    { return contains(Widths(), w) }
func (s Shape) Valid() bool    { return contains(Shapes(), s) }
func (m Material) Valid() bool { return contains(Materials(), m) }
func (g Gender) Valid() bool   { return contains(Genders(), g) }

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// Color is a named frame colour with its swatch hex value.
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type Product struct {
	BaseModel
	CategoryID    uuid.UUID                  `gorm:"type:uuid;index;not null" json:"category_id"`
	Category      *Category                  `json:"category,omitempty"`
	Slug          string                     `gorm:"uniqueIndex;not null" json:"slug"`
	Name          string                     `json:"name"`
	Brand         string                     `json:"brand"`
	DescriptionEN *string                    `json:"description_en"`
	DescriptionAR *string                    `json:"description_ar"`
	Price         float64                    `gorm:"type:numeric(10,2);index" json:"price"`
	OriginalPrice *float64                   `gorm:"type:numeric(10,2)" json:"original_price"`
	Images        pq.StringArray             `gorm:"type:text[]" json:"images"`
	Colors        datatypes.JSONSlice[Color] `json:"colors"`
	ColorNames    pq.StringArray             `gorm:"type:text[];index:idx_products_color_names,type:gin" json:"-"`
	Width         Width                      `gorm:"index" json:"width"`
	Shape         Shape                      `gorm:"index" json:"shape"`
	Material      Material                   `gorm:"index" json:"material"`
	Gender        Gender                     `gorm:"index" json:"gender"`
	FrameWidth    *float64                   `json:"frame_width"`
	LensWidth     *float64                   `json:"lens_width"`
	BridgeWidth   *float64                   `json:"bridge_width"`
	IsNew         bool                       `json:"is_new"`
	IsBestseller  bool                       `gorm:"index" json:"is_bestseller"`
	InStock       bool                       `json:"in_stock"`
}

// BeforeSave keeps the denormalized colour name column in step with Colors.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.SyncColorNames()
	return nil
}

// SyncColorNames rebuilds ColorNames from Colors.
func (p *Product) SyncColorNames() {
	names := make(pq.StringArray, 0, len(p.Colors))
	for _, c := range p.Colors {
		names = append(names, c.Name)
	}
	p.ColorNames = names
}

// PrimaryImage returns the first image, or "" for products without images.
func (p Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// OnSale reports whether the original price marks a real discount. A stored
// original price at or below the current price is kept but never shown.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// Description returns the localized description, or "" when none is stored.
func (p Product) Description(locale string) string {
	return pickLocalized(locale, p.DescriptionEN, p.DescriptionAR)
}

// HasColor reports whether the product is offered in the named colour.
func (p Product) HasColor(name string) bool {
	for _, c := range p.Colors {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Validate checks the invariants the storefront relies on.
func (p Product) Validate() error {
	if p.Slug == "" {
		return fmt.Errorf("product slug is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("product %s: price must not be negative", p.Slug)
	}
	if !p.Width.Valid() {
		return fmt.Errorf("product %s: invalid width %q", p.Slug, p.Width)
	}
	if !p.Shape.Valid() {
		return fmt.Errorf("product %s: invalid shape %q", p.Slug, p.Shape)
	}
	if !p.Material.Valid() {
		return fmt.Errorf("product %s: invalid material %q", p.Slug, p.Material)
	}
	if !p.Gender.Valid() {
		return fmt.Errorf("product %s: invalid gender %q", p.Slug, p.Gender)
	}
	seen := make(map[string]struct{}, len(p.Colors))
	for _, c := range p.Colors {
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("product %s: duplicate colour %q", p.Slug, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}
