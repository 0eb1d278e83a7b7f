package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ToIdentifier converts free-form text ("submit-button", "user_form", "Save changes")
// into a word-capitalized identifier ("SubmitButton", "UserForm", "SaveChanges").
// Existing inner capitalisation is preserved.
func ToIdentifier(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	for _, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	return b.String()
}

// Truncate shortens s to at most max runes, marking the cut with "..."
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 3 {
		return string([]rune(s)[:max])
	}
	return string([]rune(s)[:max-3]) + "..."
}

// Quote truncates s and wraps it in double quotes
func Quote(s string, max int) string {
	return `"` + Truncate(strings.TrimSpace(s), max) + `"`
}

// IsPascalCase reports whether s looks like an authored component identifier:
// an upper-case letter followed by letters or digits with at least one lower-case letter.
func IsPascalCase(s string) bool {
	if len(s) < 2 {
		return false
	}
	hasLower := false
	for i, r := range s {
		switch {
		case i == 0 && !unicode.IsUpper(r):
			return false
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r), unicode.IsDigit(r):
		default:
			return false
		}
	}
	return hasLower
}
