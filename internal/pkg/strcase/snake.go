// Package strcase converts Go identifiers to the snake_case keys used in JSON
// bodies.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake turns a Go field name into lower snake case: OldPassword
// becomes old_password, OTP becomes otp and AvatarURL becomes avatar_url.
func ToLowerSnake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && wordStarts(runes, i) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// wordStarts reports whether the upper case rune at i opens a new word, either
// after a lower case letter or digit, or as the last capital of an acronym
// followed by a lower case letter (the S in HTTPServer).
func wordStarts(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	return unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
}
