package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/qurrah/internal/models"
)

func TestWithFilterTogglesMultiSelect(t *testing.T) {
	var f Filters

	f = WithFilter(f, DimShape, "round")
	assert.Equal(t, []models.Shape{models.ShapeRound}, f.Shape)

	f = WithFilter(f, DimShape, "square")
	assert.Equal(t, []models.Shape{models.ShapeRound, models.ShapeSquare}, f.Shape)

	f = WithFilter(f, DimShape, "round")
	assert.Equal(t, []models.Shape{models.ShapeSquare}, f.Shape)

	f = WithFilter(f, DimShape, "square")
	assert.Nil(t, f.Shape, "removing the last value returns to absent, not empty")
	assert.True(t, f.IsDefault())
}

func TestWithFilterToggleTwiceIsIdentity(t *testing.T) {
	start := Filters{Colors: []string{"Black"}, Width: []models.Width{models.WidthWide}}
	for _, dim := range []Dimension{DimWidth, DimShape, DimMaterial, DimColor} {
		once := WithFilter(start, dim, "medium")
		twice := WithFilter(once, dim, "medium")
		assert.True(t, start.Equal(twice), "dimension %s", dim)
	}
}

func TestWithFilterDoesNotMutateInput(t *testing.T) {
	start := Filters{Colors: []string{"Black", "Gold"}}
	_ = WithFilter(start, DimColor, "Black")
	assert.Equal(t, []string{"Black", "Gold"}, start.Colors)
}

func TestWithFilterGenderAndPrice(t *testing.T) {
	f := WithFilter(Filters{}, DimGender, "women")
	require.NotNil(t, f.Gender)
	assert.Equal(t, models.GenderWomen, *f.Gender)

	f = WithFilter(f, DimGender, "men")
	assert.Equal(t, models.GenderMen, *f.Gender, "gender is replaced, not toggled")

	f = WithFilter(f, DimGender, "")
	assert.Nil(t, f.Gender)

	f = WithFilter(f, DimMinPrice, "120.5")
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 120.5, *f.MinPrice)

	unchanged := WithFilter(f, DimMaxPrice, "cheap")
	assert.True(t, f.Equal(unchanged))
	for _, raw := range []string{"NaN", "Inf", "+Inf", "-Inf"} {
		assert.True(t, f.Equal(WithFilter(f, DimMaxPrice, raw)), raw)
	}

	f = WithFilter(f, DimMinPrice, "")
	assert.Nil(t, f.MinPrice)
}

func TestClearKeepsGender(t *testing.T) {
	men := models.GenderMen
	lo, hi := 100.0, 200.0
	f := Filters{
		Gender:   &men,
		Width:    []models.Width{models.WidthNarrow},
		Shape:    []models.Shape{models.ShapeOval, models.ShapeRound},
		Colors:   []string{"Gold"},
		MinPrice: &lo,
		MaxPrice: &hi,
	}
	assert.Equal(t, 4, ActiveCount(f))

	cleared := Clear(f)
	require.NotNil(t, cleared.Gender)
	assert.Equal(t, models.GenderMen, *cleared.Gender)
	assert.Nil(t, cleared.Width)
	assert.Nil(t, cleared.Shape)
	assert.Nil(t, cleared.MinPrice)
	assert.Equal(t, 0, ActiveCount(cleared))
	assert.False(t, cleared.IsDefault())
}

func TestActiveCountIgnoresGenderAndPrice(t *testing.T) {
	women := models.GenderWomen
	lo := 50.0
	assert.Equal(t, 0, ActiveCount(Filters{Gender: &women, MinPrice: &lo}))
}

func TestEqualDistinguishesAbsentFromEmpty(t *testing.T) {
	assert.False(t, Filters{}.Equal(Filters{Colors: []string{}}))
	assert.True(t, Filters{Colors: []string{"Black"}}.Equal(Filters{Colors: []string{"Black"}}))
}
