package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// NewUUID generates a new UUID
func NewUUID() uuid.UUID {
	return uuid.New()
}

// ParseUUID parses a string into a UUID
func ParseUUID(s string) (uuid.UUID, error) {
	return uuid.Parse(s)
}

var (
	slugInvalid = regexp.MustCompile("[^a-z0-9-]")
	slugDashes  = regexp.MustCompile("-+")
)

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeCode uppercases and trims an identifier code (material codes,
// warehouse codes, receipt prefixes are stored uppercase).
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
