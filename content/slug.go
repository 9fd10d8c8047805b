package content

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slugify lower-cases title with full Unicode case mapping and collapses
// every run of characters outside [a-z0-9] into a single hyphen. Accented
// letters are not folded, so "Café" gives "caf". The result never starts
// or ends with a hyphen, and Slugify(Slugify(s)) == Slugify(s).
func Slugify(title string) string {
	var b strings.Builder
	pendingHyphen := false

	for _, r := range cases.Lower(language.Und).String(title) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
