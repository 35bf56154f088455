package user

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lowerCaser = cases.Lower(language.Und)

// NormalizeUsername canonicalizes a username for storage and lookup:
// Unicode NFKC folding, lowercasing, and surrounding whitespace removal.
// Two usernames that normalize to the same string are the same user.
func NormalizeUsername(username string) string {
	return lowerCaser.String(norm.NFKC.String(strings.TrimSpace(username)))
}

// NormalizeWhatsAppNumber strips formatting characters from a phone number,
// keeping digits and a single leading plus sign.
func NormalizeWhatsAppNumber(number string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(number) {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
