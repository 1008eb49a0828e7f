package models

// Category groups products under a URL slug. Rows are read-only for the storefront.
type Category struct {
	BaseModel
	Slug          string  `gorm:"uniqueIndex;not null" json:"slug"`
	NameEN        string  `json:"name_en"`
	NameAR        string  `json:"name_ar"`
	DescriptionEN *string `json:"description_en"`
	DescriptionAR *string `json:"description_ar"`
	ImageURL      *string `json:"image_url"`
}

// Name returns the display name for the given locale.
func (c Category) Name(locale string) string {
	if locale == LocaleArabic && c.NameAR != "" {
		return c.NameAR
	}
	return c.NameEN
}

// Description returns the localized description, or "" when none is stored.
func (c Category) Description(locale string) string {
	return pickLocalized(locale, c.DescriptionEN, c.DescriptionAR)
}

const (
	LocaleEnglish = "en"
	LocaleArabic  = "ar"
)

// Direction reports the text direction used to render the locale.
func Direction(locale string) string {
	if locale == LocaleArabic {
		return "rtl"
	}
	return "ltr"
}

func pickLocalized(locale string, en, ar *string) string {
	if locale == LocaleArabic {
		if ar != nil {
			return *ar
		}
		return ""
	}
	if en != nil {
		return *en
	}
	return ""
}
