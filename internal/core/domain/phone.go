package domain

import "strings"

const countryPrefix = "62"

// NormalizePhone strips everything but digits and rewrites local Indonesian
// numbers ("08..." or "8...") to the international "62..." form.
func NormalizePhone(raw string) string {
	var b strings.Builder
	b.Grow(len(raw) + len(countryPrefix))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, "0"):
		return countryPrefix + digits[1:]
	case strings.HasPrefix(digits, "8"):
		return countryPrefix + digits
	default:
		return digits
	}
}
