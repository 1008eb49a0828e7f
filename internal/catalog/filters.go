package catalog

import (
	"math"
	"slices"
	"strconv"

	"github.com/example/qurrah/internal/models"
)

// Dimension names one filterable attribute.
type Dimension string

const (
	DimGender   Dimension = "gender"
	DimWidth    Dimension = "width"
	DimShape    Dimension = "shape"
	DimMaterial Dimension = "material"
	DimColor    Dimension = "color"
	DimMinPrice Dimension = "min_price"
	DimMaxPrice Dimension = "max_price"
)

// Filters is the current facet selection. A nil field means "no preference";
// multi-select fields are never stored as empty non-nil slices. Treat values
// as immutable: every operation returns a fresh copy.
type Filters struct {
	Gender   *models.Gender    `json:"gender,omitempty"`
	Width    []models.Width    `json:"width,omitempty"`
	Shape    []models.Shape    `json:"shape,omitempty"`
	Material []models.Material `json:"material,omitempty"`
	Colors   []string          `json:"colors,omitempty"`
	MinPrice *float64          `json:"min_price,omitempty"`
	MaxPrice *float64          `json:"max_price,omitempty"`
}

// WithFilter returns current with one dimension changed. Multi-select
// dimensions toggle value; gender and price bounds are replaced, and an empty
// value clears them. A price that does not parse leaves the state unchanged.
func WithFilter(current Filters, dim Dimension, value string) Filters {
	next := current.Clone()
	switch dim {
	case DimGender:
		if value == "" {
			next.Gender = nil
		} else {
			g := models.Gender(value)
			next.Gender = &g
		}
	case DimWidth:
		next.Width = toggle(next.Width, models.Width(value))
	case DimShape:
		next.Shape = toggle(next.Shape, models.Shape(value))
	case DimMaterial:
		next.Material = toggle(next.Material, models.Material(value))
	case DimColor:
		next.Colors = toggle(next.Colors, value)
	case DimMinPrice:
		bound, ok := parseBound(value)
		if !ok {
			return current
		}
		next.MinPrice = bound
	case DimMaxPrice:
		bound, ok := parseBound(value)
		if !ok {
			return current
		}
		next.MaxPrice = bound
	}
	return next
}

// WithGender replaces the gender selection; nil means no preference.
func WithGender(current Filters, g *models.Gender) Filters {
	next := current.Clone()
	next.Gender = clonePtr(g)
	return next
}

// WithPriceRange replaces both price bounds.
func WithPriceRange(current Filters, min, max *float64) Filters {
	next := current.Clone()
	next.MinPrice = clonePtr(min)
	next.MaxPrice = clonePtr(max)
	return next
}

// Clear drops every facet and price bound but keeps the gender, which acts as
// a view mode rather than a filter.
func Clear(current Filters) Filters {
	return Filters{Gender: clonePtr(current.Gender)}
}

// ActiveCount sums the multi-select selections. Gender and price bounds do
// not count.
func ActiveCount(f Filters) int {
	return len(f.Width) + len(f.Shape) + len(f.Material) + len(f.Colors)
}

// IsDefault reports whether nothing at all is selected.
func (f Filters) IsDefault() bool {
	return f.Gender == nil && f.Width == nil && f.Shape == nil && f.Material == nil &&
		f.Colors == nil && f.MinPrice == nil && f.MaxPrice == nil
}

// Equal compares structurally; absent and empty selections differ.
func (f Filters) Equal(o Filters) bool {
	return ptrEqual(f.Gender, o.Gender) &&
		sliceEqual(f.Width, o.Width) &&
		sliceEqual(f.Shape, o.Shape) &&
		sliceEqual(f.Material, o.Material) &&
		sliceEqual(f.Colors, o.Colors) &&
		ptrEqual(f.MinPrice, o.MinPrice) &&
		ptrEqual(f.MaxPrice, o.MaxPrice)
}

// Clone returns a deep copy.
func (f Filters) Clone() Filters {
	return Filters{
		Gender:   clonePtr(f.Gender),
		Width:    slices.Clone(f.Width),
		Shape:    slices.Clone(f.Shape),
		Material: slices.Clone(f.Material),
		Colors:   slices.Clone(f.Colors),
		MinPrice: clonePtr(f.MinPrice),
		MaxPrice: clonePtr(f.MaxPrice),
	}
}

func toggle[T comparable](set []T, v T) []T {
	if i := slices.Index(set, v); i >= 0 {
		set = slices.Delete(set, i, i+1)
		if len(set) == 0 {
			return nil
		}
		return set
	}
	return append(set, v)
}

func parseBound(value string) (*float64, bool) {
	if value == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || !finite(v) {
		return nil, false
	}
	return &v, true
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sliceEqual[T comparable](a, b []T) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return slices.Equal(a, b)
}
