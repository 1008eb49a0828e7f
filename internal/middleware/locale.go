package middleware

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"github.com/example/qurrah/internal/models"
)

const (
	localeContextKey    = "locale"
	directionContextKey = "dir"
)

// Locale resolves the request locale from ?locale= or Accept-Language and
// stores it, with the matching text direction, in the request locals.
// Unsupported values fall back to English.
func Locale() fiber.Handler {
	return func(c *fiber.Ctx) error {
		locale := resolveLocale(c.Query("locale"), c.Get(fiber.HeaderAcceptLanguage))
		c.Locals(localeContextKey, locale)
		c.Locals(directionContextKey, models.Direction(locale))
		c.Set(fiber.HeaderContentLanguage, locale)
		return c.Next()
	}
}

// GetLocale extracts the resolved locale from context.
func GetLocale(c *fiber.Ctx) string {
	if locale, ok := c.Locals(localeContextKey).(string); ok {
		return locale
	}
	return models.LocaleEnglish
}

// GetDirection extracts the text direction ("ltr" or "rtl") from context.
func GetDirection(c *fiber.Ctx) string {
	if dir, ok := c.Locals(directionContextKey).(string); ok {
		return dir
	}
	return models.Direction(models.LocaleEnglish)
}

// supportedLocales is ordered to line up with the matcher's tags.
var (
	supportedLocales = []string{models.LocaleEnglish, models.LocaleArabic}
	localeMatcher    = language.NewMatcher([]language.Tag{language.English, language.Arabic})
)

func resolveLocale(query, acceptLanguage string) string {
	if tag, err := language.Parse(query); err == nil {
		if locale, ok := match(tag); ok {
			return locale
		}
	}
	// ParseAcceptLanguage orders tags by q-weight.
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil && len(tags) > 0 {
		if locale, ok := match(tags...); ok {
			return locale
		}
	}
	return models.LocaleEnglish
}

func match(tags ...language.Tag) (string, bool) {
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}
	return supportedLocales[index], true
}
