package i18n

import "fmt"

// Language represents a supported locale.
type Language string

const (
	LangZH Language = "zh"
	LangEN Language = "en"
)

// Catalog resolves message keys for one language.
type Catalog struct {
	lang     Language
	messages map[string]string
}

// New returns the catalog for lang. Unrecognized values fall back to English.
func New(lang string) Catalog {
	switch Language(lang) {
	case LangZH:
		return Catalog{lang: LangZH, messages: zh}
	default:
		return Catalog{lang: LangEN, messages: en}
	}
}

// Language returns the active language.
func (c Catalog) Language() Language {
	return c.lang
}

// T returns the translated string for the given key.
// Missing keys fall back to English, then to the key itself.
func (c Catalog) T(key string) string {
	if v, ok := c.messages[key]; ok {
		return v
	}
	if v, ok := en[key]; ok {
		return v
	}
	return key
}

// Tf returns a formatted translated string.
func (c Catalog) Tf(key string, args ...any) string {
	return fmt.Sprintf(c.T(key), args...)
}
