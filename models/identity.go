package models

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidDocument is returned when catalog bytes are not a valid document.
var ErrInvalidDocument = errors.New("invalid catalog document")

var (
	whitespaceRun   = regexp.MustCompile(`\s+`)
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9-]`)
)

// DeriveID builds a project id from a title: whitespace and every
// non-alphanumeric character are dropped, case is preserved.
//
//	"Red Dragon's Lair!" -> "RedDragonsLair"
func DeriveID(title string) string {
	id := whitespaceRun.ReplaceAllString(title, "")
	return nonAlphanumeric.ReplaceAllString(id, "")
}

// DeriveSlug builds a URL-safe slug: lowercased, whitespace runs become a
// single hyphen, anything outside [a-z0-9-] is dropped.
//
//	"Red Dragon's Lair!" -> "red-dragons-lair"
func DeriveSlug(title string) string {
	slug := strings.ToLower(title)
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	return nonSlugChars.ReplaceAllString(slug, "")
}

// AssignIdentity fills in ID and Slug from the title when they are absent.
func AssignIdentity(p *Project) {
	if p.ID == "" {
		p.ID = DeriveID(p.Title)
	}
	if p.Slug == "" {
		p.Slug = DeriveSlug(p.Title)
	}
}
