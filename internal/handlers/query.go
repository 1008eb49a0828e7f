package handlers

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/models"
)

// parseFilters reads the filter panel state from query params. Multi-select
// dimensions accept repeated or comma-separated values.
func parseFilters(c *fiber.Ctx) (catalog.Filters, error) {
	var f catalog.Filters

	if g := strings.TrimSpace(c.Query(string(catalog.DimGender))); g != "" {
		f = catalog.WithFilter(f, catalog.DimGender, g)
	}
	for _, dim := range []catalog.Dimension{catalog.DimWidth, catalog.DimShape, catalog.DimMaterial, catalog.DimColor} {
		for _, v := range queryValues(c, string(dim)) {
			if !selected(f, dim, v) {
				f = catalog.WithFilter(f, dim, v)
			}
		}
	}

	for _, dim := range []catalog.Dimension{catalog.DimMinPrice, catalog.DimMaxPrice} {
		raw := strings.TrimSpace(c.Query(string(dim)))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return catalog.Filters{}, &catalog.ValidationError{Field: string(dim), Reason: "must be a finite number"}
		}
		f = catalog.WithFilter(f, dim, raw)
	}
	return f, nil
}

// parseSort keeps unknown values so the translator can reject them.
func parseSort(c *fiber.Ctx) catalog.Sort {
	raw := strings.TrimSpace(c.Query("sort"))
	if raw == "" {
		return catalog.SortNewest
	}
	return catalog.Sort(raw)
}

func queryValues(c *fiber.Ctx, key string) []string {
	var values []string
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		if string(k) != key {
			return
		}
		for _, part := range strings.Split(string(v), ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
	})
	return values
}

func selected(f catalog.Filters, dim catalog.Dimension, v string) bool {
	switch dim {
	case catalog.DimWidth:
		return slices.Contains(f.Width, models.Width(v))
	case catalog.DimShape:
		return slices.Contains(f.Shape, models.Shape(v))
	case catalog.DimMaterial:
		return slices.Contains(f.Material, models.Material(v))
	case catalog.DimColor:
		return slices.Contains(f.Colors, v)
	}
	return false
}
