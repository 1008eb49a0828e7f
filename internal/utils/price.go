package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/example/qurrah/internal/models"
)

var (
	englishPrinter = message.NewPrinter(language.AmericanEnglish)
	arabicPrinter  = message.NewPrinter(language.MustParse("ar-EG"))
)

// FormatPrice renders a USD amount for the given locale: "$1,234.50" in
// English, Arabic-Indic digits with a trailing "US$" in Arabic.
func FormatPrice(locale string, amount float64) string {
	if locale == models.LocaleArabic {
		return arabicPrinter.Sprint(number.Decimal(amount, number.Scale(2))) + " US$"
	}
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + englishPrinter.Sprint(number.Decimal(amount, number.Scale(2)))
}

// FormatOriginalPrice renders the struck-through price, or "" when the
// product is not on sale.
func FormatOriginalPrice(locale string, p models.Product) string {
	if !p.OnSale() {
		return ""
	}
	return FormatPrice(locale, *p.OriginalPrice)
}
