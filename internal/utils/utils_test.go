package utils

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/qurrah/internal/catalog"
	"github.com/example/qurrah/internal/models"
)

func TestFormatPriceEnglish(t *testing.T) {
	assert.Equal(t, "$1,234.50", FormatPrice(models.LocaleEnglish, 1234.5))
	assert.Equal(t, "$129.00", FormatPrice(models.LocaleEnglish, 129))
	assert.Equal(t, "$0.00", FormatPrice("fr", 0))
}

func TestFormatPriceArabic(t *testing.T) {
	got := FormatPrice(models.LocaleArabic, 129)
	assert.True(t, len(got) > len(" US$"))
	assert.Contains(t, got, "US$")
	assert.NotEqual(t, FormatPrice(models.LocaleEnglish, 129), got)
}

func TestFormatOriginalPrice(t *testing.T) {
	higher, lower := 159.0, 99.0

	onSale := models.Product{Price: 129, OriginalPrice: &higher}
	assert.Equal(t, "$159.00", FormatOriginalPrice(models.LocaleEnglish, onSale))

	notDiscounted := models.Product{Price: 129, OriginalPrice: &lower}
	assert.Empty(t, FormatOriginalPrice(models.LocaleEnglish, notDiscounted))

	assert.Empty(t, FormatOriginalPrice(models.LocaleEnglish, models.Product{Price: 129}))
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query string
		want  catalog.Page
	}{
		{"", catalog.Page{}},
		{"?limit=5", catalog.Page{Limit: 5}},
		{"?offset=40", catalog.Page{Limit: catalog.DefaultPageSize, Offset: 40}},
		{"?limit=10&offset=30", catalog.Page{Limit: 10, Offset: 30}},
		{"?page=3&limit=10", catalog.Page{Limit: 10, Offset: 20}},
		{"?page=2", catalog.Page{Limit: catalog.DefaultPageSize, Offset: catalog.DefaultPageSize}},
		{"?limit=-4&offset=-1", catalog.Page{}},
		{"?limit=5000", catalog.Page{Limit: MaxPageSize}},
		{"?limit=abc", catalog.Page{}},
		{"?page=9223372036854775807&limit=100", catalog.Page{Limit: 100, Offset: (MaxPage - 1) * 100}},
	}

	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			var got catalog.Page
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				got = ParsePagination(c)
				return c.SendStatus(fiber.StatusNoContent)
			})

			resp, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
			require.NoError(t, err)
			_, _ = io.Copy(io.Discard, resp.Body)
			assert.Equal(t, tc.want, got)
		})
	}
}
