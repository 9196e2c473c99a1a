package model

import (
	"strings"
	"unicode"
)

// IsPathSegment reports whether id addresses exactly one path segment of the
// order service.
func IsPathSegment(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

// IsStoreID reports whether id is usable as a store identifier. Besides being
// a single path segment it must not carry whitespace, control characters or
// subject wildcards.
func IsStoreID(id string) bool {
	if !IsPathSegment(id) {
		return false
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '*' || r == '>' {
			return false
		}
	}
	return true
}
