package sphere

import "regexp"

// DomainID identifies a sphere.
type DomainID string

// SectionID identifies a section of a sphere's bureau.
type SectionID string

// Locale selects a display language.
type Locale string

const (
	LocaleEnglish Locale = "en"
	LocaleSpanish Locale = "es"

	// DefaultLocale is used when a text has no variant for the requested locale.
	DefaultLocale = LocaleEnglish
)

// LocalizedText maps a locale to a display string.
type LocalizedText map[Locale]string

// In returns the variant for locale, falling back to DefaultLocale.
func (t LocalizedText) In(locale Locale) string {
	if s, ok := t[locale]; ok {
		return s
	}
	return t[DefaultLocale]
}

// Tier partitions sections into always-present and optional ones.
type Tier int

const (
	TierCore Tier = iota
	TierExtended
)

func (t Tier) String() string {
	switch t {
	case TierCore:
		return "core"
	case TierExtended:
		return "extended"
	default:
		return "unknown"
	}
}

// Domain is a top-level sphere.
type Domain struct {
	ID    DomainID
	Name  LocalizedText
	Icon  string
	Color string // hex colour token, e.g. "#10B981"
	Order int
}

// Section is a view inside a sphere's bureau.
type Section struct {
	ID    SectionID
	Name  LocalizedText
	Icon  string
	Tier  Tier
	Order int
}

var slugPattern = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidSlug reports whether id can be used as a domain or section identifier.
func ValidSlug(id string) bool {
	return slugPattern.MatchString(id)
}
