// Package transstring implements translated strings: a text value carrying
// translations for the supported languages plus a fallback language whose
// translation is guaranteed to be present.
package transstring

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Language is a supported interface language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageRussian Language = "ru"
)

// Languages lists the closed set of supported languages.
var Languages = []Language{LanguageEnglish, LanguageRussian}

// ParseLanguage validates a language code from untrusted input.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages {
		if s == string(l) {
			return l, nil
		}
	}
	return "", fmt.Errorf("unsupported language %q", s)
}

// Construction failures. Callers translate these into their own error
// taxonomies (e.g. form definition errors).
var (
	ErrEmpty               = errors.New("no language has text")
	ErrMissingFallbackText = errors.New("fallback language has no text")
	ErrUnknownLanguage     = errors.New("unknown language")
)

// String is an immutable translated string. The zero value is empty and
// invalid; construct through New.
type String struct {
	values   map[Language]string
	fallback Language
}

// New builds a translated string from per-language texts and a fallback
// language. At least one language must have text, and the fallback language's
// text must be present.
func New(values map[Language]string, fallback Language) (String, error) {
	if _, err := ParseLanguage(string(fallback)); err != nil {
		return String{}, ErrUnknownLanguage
	}
	copied := make(map[Language]string, len(values))
	for lang, text := range values {
		if _, err := ParseLanguage(string(lang)); err != nil {
			return String{}, ErrUnknownLanguage
		}
		if text != "" {
			copied[lang] = text
		}
	}
	if len(copied) == 0 {
		return String{}, ErrEmpty
	}
	if _, ok := copied[fallback]; !ok {
		return String{}, ErrMissingFallbackText
	}
	return String{values: copied, fallback: fallback}, nil
}

// MustNew is a test/fixture helper that panics on invalid input.
func MustNew(values map[Language]string, fallback Language) String {
	s, err := New(values, fallback)
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the text for the given language, if present.
func (s String) Get(lang Language) (string, bool) {
	text, ok := s.values[lang]
	return text, ok
}

// Resolve returns the preferred language's text when present, else the
// fallback text. A constructed String always has fallback text.
func (s String) Resolve(preferred Language) string {
	if text, ok := s.values[preferred]; ok {
		return text
	}
	return s.values[s.fallback]
}

// Fallback returns the declared fallback language.
func (s String) Fallback() Language { return s.fallback }

// IsZero reports whether s was never constructed.
func (s String) IsZero() bool { return s.values == nil }

// Equal compares translations and fallback language.
func (s String) Equal(other String) bool {
	if s.fallback != other.fallback || len(s.values) != len(other.values) {
		return false
	}
	for lang, text := range s.values {
		if other.values[lang] != text {
			return false
		}
	}
	return true
}

type stringJSON struct {
	EN       string   `json:"en,omitempty"`
	RU       string   `json:"ru,omitempty"`
	Fallback Language `json:"fallback_language"`
}

// MarshalJSON flattens the translations for storage.
func (s String) MarshalJSON() ([]byte, error) {
	out := stringJSON{Fallback: s.fallback}
	out.EN = s.values[LanguageEnglish]
	out.RU = s.values[LanguageRussian]
	return json.Marshal(out)
}

// UnmarshalJSON restores a stored translated string, re-checking invariants
// so corrupted rows surface as errors instead of invalid values.
func (s *String) UnmarshalJSON(data []byte) error {
	var in stringJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	restored, err := New(map[Language]string{
		LanguageEnglish: in.EN,
		LanguageRussian: in.RU,
	}, in.Fallback)
	if err != nil {
		return fmt.Errorf("stored translated string: %w", err)
	}
	*s = restored
	return nil
}
