package catalog

import (
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/example/qurrah/internal/models"
)

// DefaultPageSize applies when an offset is given without a limit.
const DefaultPageSize = 20

// Page is an optional limit/offset window. Zero values mean "not supplied".
type Page struct {
	Limit  int
	Offset int
}

// Normalize fills the default page size for offset-only windows.
func (p Page) Normalize() Page {
	if p.Offset > 0 && p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}
	return p
}

// QuerySpec is a store-neutral description of a product read. Empty sets
// mean the dimension is unconstrained; dimensions combine with AND, values
// within one dimension with OR.
type QuerySpec struct {
	CategoryID      *uuid.UUID
	Slug            string
	ExcludeID       *uuid.UUID
	Genders         []models.Gender
	Widths          []models.Width
	Shapes          []models.Shape
	Materials       []models.Material
	Colors          []string
	MinPrice        *float64
	MaxPrice        *float64
	FeaturedOnly    bool
	IncludeCategory bool
	Orders          []Order
	Limit           int
	Offset          int
}

// Matches evaluates the predicate part of q against p.
func (q QuerySpec) Matches(p models.Product) bool {
	if q.CategoryID != nil && p.CategoryID != *q.CategoryID {
		return false
	}
	if q.Slug != "" && p.Slug != q.Slug {
		return false
	}
	if q.ExcludeID != nil && p.ID == *q.ExcludeID {
		return false
	}
	if len(q.Genders) > 0 && !slices.Contains(q.Genders, p.Gender) {
		return false
	}
	if len(q.Widths) > 0 && !slices.Contains(q.Widths, p.Width) {
		return false
	}
	if len(q.Shapes) > 0 && !slices.Contains(q.Shapes, p.Shape) {
		return false
	}
	if len(q.Materials) > 0 && !slices.Contains(q.Materials, p.Material) {
		return false
	}
	if len(q.Colors) > 0 && !slices.ContainsFunc(q.Colors, p.HasColor) {
		return false
	}
	if q.MinPrice != nil && p.Price < *q.MinPrice {
		return false
	}
	if q.MaxPrice != nil && p.Price > *q.MaxPrice {
		return false
	}
	if q.FeaturedOnly && !p.IsBestseller && !p.IsNew {
		return false
	}
	return true
}

// Compare orders a before b according to q.Orders, returning 0 on a tie.
func (q QuerySpec) Compare(a, b models.Product) int {
	for _, o := range q.Orders {
		c := compareField(o.Field, a, b)
		if o.Desc {
			c = -c
		}
		if c != 0 {
			return c
		}
	}
	return 0
}

func compareField(field string, a, b models.Product) int {
	switch field {
	case FieldPrice:
		return cmpFloat(a.Price, b.Price)
	case FieldIsBestseller:
		return cmpBool(a.IsBestseller, b.IsBestseller)
	case FieldCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
	return 0
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}

// CategoryResolver maps a category slug to its identifier. A nil category
// with a nil error means the slug is unknown.
type CategoryResolver interface {
	CategoryBySlug(ctx context.Context, slug string) (*models.Category, error)
}

// Translator turns UI filter state into a QuerySpec.
type Translator struct {
	categories CategoryResolver
}

func NewTranslator(categories CategoryResolver) *Translator {
	return &Translator{categories: categories}
}

// Translate builds the listing query. The only side effect is the category
// lookup; an unknown slug yields a NotFoundError and no query.
func (t *Translator) Translate(ctx context.Context, categorySlug string, f Filters, sort Sort, page Page) (QuerySpec, error) {
	if err := ValidateFilters(f); err != nil {
		return QuerySpec{}, err
	}
	if !sort.Valid() {
		return QuerySpec{}, &ValidationError{Field: "sort", Reason: fmt.Sprintf("unknown order %q", sort)}
	}
	if page.Limit < 0 || page.Offset < 0 {
		return QuerySpec{}, &ValidationError{Field: "page", Reason: "limit and offset must not be negative"}
	}

	qs := QuerySpec{IncludeCategory: true}
	if categorySlug != "" {
		category, err := t.categories.CategoryBySlug(ctx, categorySlug)
		if err != nil {
			return QuerySpec{}, WrapStore("resolve category", err)
		}
		if category == nil {
			return QuerySpec{}, &NotFoundError{Resource: "category", Slug: categorySlug}
		}
		id := category.ID
		qs.CategoryID = &id
	}

	if f.Gender != nil {
		qs.Genders = []models.Gender{*f.Gender}
		if *f.Gender != models.GenderUnisex {
			qs.Genders = append(qs.Genders, models.GenderUnisex)
		}
	}
	qs.Widths = slices.Clone(f.Width)
	qs.Shapes = slices.Clone(f.Shape)
	qs.Materials = slices.Clone(f.Material)
	qs.Colors = slices.Clone(f.Colors)
	qs.MinPrice = clonePtr(f.MinPrice)
	qs.MaxPrice = clonePtr(f.MaxPrice)
	qs.Orders = sort.Orders()

	page = page.Normalize()
	qs.Limit = page.Limit
	qs.Offset = page.Offset
	return qs, nil
}

// ValidateFilters rejects values the filter panel can never produce.
func ValidateFilters(f Filters) error {
	if f.Gender != nil && !f.Gender.Valid() {
		return &ValidationError{Field: string(DimGender), Reason: fmt.Sprintf("unknown value %q", *f.Gender)}
	}
	for _, w := range f.Width {
		if !w.Valid() {
			return &ValidationError{Field: string(DimWidth), Reason: fmt.Sprintf("unknown value %q", w)}
		}
	}
	for _, s := range f.Shape {
		if !s.Valid() {
			return &ValidationError{Field: string(DimShape), Reason: fmt.Sprintf("unknown value %q", s)}
		}
	}
	for _, m := range f.Material {
		if !m.Valid() {
			return &ValidationError{Field: string(DimMaterial), Reason: fmt.Sprintf("unknown value %q", m)}
		}
	}
	for _, c := range f.Colors {
		if c == "" {
			return &ValidationError{Field: string(DimColor), Reason: "empty colour name"}
		}
	}
	if f.MinPrice != nil && !finite(*f.MinPrice) {
		return &ValidationError{Field: string(DimMinPrice), Reason: "must be a finite number"}
	}
	if f.MaxPrice != nil && !finite(*f.MaxPrice) {
		return &ValidationError{Field: string(DimMaxPrice), Reason: "must be a finite number"}
	}
	if f.MinPrice != nil && *f.MinPrice < 0 {
		return &ValidationError{Field: string(DimMinPrice), Reason: "must not be negative"}
	}
	if f.MaxPrice != nil && *f.MaxPrice < 0 {
		return &ValidationError{Field: string(DimMaxPrice), Reason: "must not be negative"}
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return &ValidationError{Field: string(DimMinPrice), Reason: "exceeds max_price"}
	}
	return nil
}
