package cleaning

import (
	"database/sql"
	"strings"
	"unicode"
)

// NormalizeText canonicalizes a free-text field (customer_name, city, product).
//
// Behavior:
//   - Missing stays missing.
//   - Leading/trailing whitespace is trimmed and inner runs collapse to one space.
//   - The result is title-cased with titleCase.
//   - A value that is empty after trimming becomes missing.
func NormalizeText(v sql.Null[string]) sql.Null[string] {
	if !v.Valid {
		return v
	}
	s := strings.Join(strings.Fields(v.V), " ")
	if s == "" {
		return sql.Null[string]{}
	}
	return sql.Null[string]{V: titleCase(s), Valid: true}
}

// titleCase upper-cases every cased letter that follows an uncased character
// and lower-cases every cased letter that follows a cased one.
// Anything that is not a cased letter (digits, apostrophes, hyphens, spaces)
// starts a new word, so "o'neil" becomes "O'Neil" and "MCDONALD" becomes "Mcdonald".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevCased := false
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			if prevCased {
				r = unicode.ToLower(r)
			}
			prevCased = true
		case unicode.IsLower(r):
			if !prevCased {
				r = unicode.ToTitle(r)
			}
			prevCased = true
		default:
			prevCased = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
