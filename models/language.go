package models

import (
	"strings"

	"github.com/rpupo63/artist-portfolio-backend/errs"
)

// Language identifies one partition of the catalog document.
type Language string

const (
	English Language = "en"
	French  Language = "fr"

	// DefaultLanguage is used when a request does not name one.
	DefaultLanguage = French
)

// Languages lists the partitions in document order.
var Languages = []Language{English, French}

// ParseLanguage accepts "en" or "fr" (case-insensitive). An empty value
// falls back to DefaultLanguage.
func ParseLanguage(s string) (Language, error) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultLanguage, nil
	case English:
		return English, nil
	case French:
		return French, nil
	}
	return "", errs.NewInvalidFieldError("language", "must be one of en, fr")
}

// Other returns the opposite partition.
func (l Language) Other() Language {
	if l == French {
		return English
	}
	return French
}

func (l Language) String() string {
	return string(l)
}
