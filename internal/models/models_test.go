package models

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func validProduct() Product {
	return Product{
		Slug:     "layla-round",
		Price:    129,
		Width:    WidthMedium,
		Shape:    ShapeRound,
		Material: MaterialAcetate,
		Gender:   GenderWomen,
		Colors:   []Color{{Name: "Black", Hex: "#000000"}, {Name: "Tortoise", Hex: "#8B4513"}},
	}
}

func TestProductValidate(t *testing.T) {
	assert.NoError(t, validProduct().Validate())

	cases := map[string]func(p *Product){
		"missing slug":     func(p *Product) { p.Slug = "" },
		"negative price":   func(p *Product) { p.Price = -1 },
		"bad width":        func(p *Product) { p.Width = "huge" },
		"bad shape":        func(p *Product) { p.Shape = "star" },
		"bad material":     func(p *Product) { p.Material = "wood" },
		"bad gender":       func(p *Product) { p.Gender = "kids" },
		"duplicate colour": func(p *Product) { p.Colors = append(p.Colors, Color{Name: "Black"}) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := validProduct()
			mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}

func TestProductOnSale(t *testing.T) {
	higher, equal, lower := 159.0, 129.0, 99.0
	p := validProduct()

	assert.False(t, p.OnSale())
	p.OriginalPrice = &higher
	assert.True(t, p.OnSale())
	p.OriginalPrice = &equal
	assert.False(t, p.OnSale())
	p.OriginalPrice = &lower
	assert.False(t, p.OnSale(), "stored but never displayed")
}

func TestSyncColorNames(t *testing.T) {
	p := validProduct()
	assert.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, pq.StringArray{"Black", "Tortoise"}, p.ColorNames)
	assert.True(t, p.HasColor("Tortoise"))
	assert.False(t, p.HasColor("tortoise"))
}

func TestLocalizedText(t *testing.T) {
	en, ar := "Round frames", "إطارات دائرية"
	p := Product{DescriptionEN: &en, DescriptionAR: &ar}
	assert.Equal(t, en, p.Description(LocaleEnglish))
	assert.Equal(t, ar, p.Description(LocaleArabic))

	c := Category{NameEN: "Eyeglasses", NameAR: "نظارات طبية", DescriptionEN: &en}
	assert.Equal(t, "نظارات طبية", c.Name(LocaleArabic))
	assert.Equal(t, "Eyeglasses", c.Name("fr"))
	assert.Equal(t, "rtl", Direction(LocaleArabic))
	assert.Equal(t, "ltr", Direction(LocaleEnglish))
}

func TestPrimaryImage(t *testing.T) {
	p := validProduct()
	assert.Empty(t, p.PrimaryImage())
	p.Images = pq.StringArray{"/front.jpg", "/side.jpg"}
	assert.Equal(t, "/front.jpg", p.PrimaryImage())
}

func TestEnumsValid(t *testing.T) {
	for _, g := range Genders() {
		assert.True(t, g.Valid())
	}
	assert.Len(t, Widths(), 4)
	assert.False(t, Material("").Valid())
}
