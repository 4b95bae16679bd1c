package sizing

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText lowercases s and strips diacritics so "GÖMLEK" and "gomlek" compare equal.
// Transformers hold state, so a fresh chain is built per call.
func foldText(s string) string {
	chain := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Map(func(r rune) rune {
			if r == 'ı' {
				return 'i'
			}
			return r
		}),
		norm.NFC,
	)
	out, _, err := transform.String(chain, s)
	if err != nil {
		out = s
	}
	return cases.Lower(language.Und).String(out)
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// foldKeyword normalises a table keyword the same way product text is normalised.
func foldKeyword(kw string) string {
	return strings.Join(tokenize(foldText(kw)), " ")
}

// textIndex is folded, tokenised text padded with spaces for whole-token matching.
type textIndex struct {
	padded string
}

func newTextIndex(parts ...string) textIndex {
	toks := tokenize(foldText(strings.Join(parts, " ")))
	return textIndex{padded: " " + strings.Join(toks, " ") + " "}
}

// has reports whether the already-folded keyword occurs as whole tokens.
func (t textIndex) has(folded string) bool {
	if folded == "" {
		return false
	}
	return strings.Contains(t.padded, " "+folded+" ")
}

// first returns the first keyword present in the text.
func (t textIndex) first(keywords []string) (string, bool) {
	for _, kw := range keywords {
		if t.has(kw) {
			return kw, true
		}
	}
	return "", false
}

func (t textIndex) empty() bool {
	return strings.TrimSpace(t.padded) == ""
}

// NormalizeBrand lowercases a brand name and strips domain decorations
// ("Zara.com" → "zara") for catalog lookups.
func NormalizeBrand(name string) string {
	clean := strings.ToLower(strings.TrimSpace(name))
	clean = strings.TrimPrefix(clean, "www.")
	for _, suffix := range []string{".com.tr", ".com", ".net", ".org"} {
		clean = strings.TrimSuffix(clean, suffix)
	}
	return strings.TrimSpace(clean)
}

// sameBrand compares brands by case-insensitive substring in either direction.
func sameBrand(a, b string) bool {
	na := foldKeyword(NormalizeBrand(a))
	nb := foldKeyword(NormalizeBrand(b))
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}
