package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeString trims input, drops control characters and caps it at maxLen runes.
func SanitizeString(input string, maxLen int) string {
	clean := strings.Map(func(r rune) rune {
		if r == utf8.RuneError || (unicode.IsControl(r) && r != '\n' && r != '\t') {
			return -1
		}
		return r
	}, strings.TrimSpace(input))

	if maxLen > 0 && utf8.RuneCountInString(clean) > maxLen {
		clean = string([]rune(clean)[:maxLen])
	}
	return strings.TrimSpace(clean)
}

// SanitizeOptional applies SanitizeString to a patch field, keeping nil as "not sent".
func SanitizeOptional(value *string, maxLen int) *string {
	if value == nil {
		return nil
	}
	clean := SanitizeString(*value, maxLen)
	return &clean
}
