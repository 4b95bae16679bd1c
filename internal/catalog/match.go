package catalog

import (
	"strings"
	"unicode"
)

// compactName keeps only letters and digits so "Pull & Bear" and
// "pull&bear" compare equal.
func compactName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// likePattern wraps s for a substring ILIKE with its wildcards escaped.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func brandMatches(b Brand, query string) bool {
	if query == "" {
		return false
	}
	if strings.Contains(strings.ToLower(b.Name), query) || strings.Contains(strings.ToLower(b.WebsiteURL), query) {
		return true
	}
	c := compactName(query)
	return c != "" && compactName(b.Name) == c
}
