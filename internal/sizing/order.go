package sizing

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

var letterIndex = map[string]int{
	"XXS":    0,
	"XS":     1,
	"S":      2,
	"SMALL":  2,
	"M":      3,
	"MEDIUM": 3,
	"L":      4,
	"LARGE":  4,
	"XL":     5,
	"XLARGE": 5,
	"XXL":    6,
	"2XL":    6,
	"XXXL":   7,
	"3XL":    7,
	"XXXXL":  8,
	"4XL":    8,
}

func labelTokens(label string) []string {
	return strings.FieldsFunc(strings.ToUpper(strings.TrimSpace(label)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.'
	})
}

// OrderIndex maps a size label onto the canonical order. Letter sizes map
// directly (XXS=0 … XXL=6); bare numbers map by nearest-letter equivalence,
// inch waists in 26–42 and EU pant sizes in 44–60. EU-prefixed labels are
// handled by euIndex.
func OrderIndex(label string) (int, bool) {
	toks := labelTokens(label)
	if len(toks) == 0 {
		return -1, false
	}
	if idx, ok := letterIndex[toks[0]]; ok {
		return idx, true
	}
	if strings.HasPrefix(toks[0], "EU") {
		return euIndex(toks)
	}
	if n, ok := LabelNumber(label); ok {
		return numericIndex(n)
	}
	return -1, false
}

// LabelNumber extracts the waist number of a numeric label: "32", "W32 L34" and "32/34" all give 32.
func LabelNumber(label string) (float64, bool) {
	toks := labelTokens(label)
	if len(toks) == 0 {
		return 0, false
	}
	first := toks[0]
	if strings.HasPrefix(first, "W") && len(first) > 1 {
		first = first[1:]
	}
	n, err := strconv.ParseFloat(first, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsLetterLabel reports whether the label leads with a letter size token.
func IsLetterLabel(label string) bool {
	toks := labelTokens(label)
	if len(toks) == 0 {
		return false
	}
	_, ok := letterIndex[toks[0]]
	return ok
}

// euIndex reads "EU 38", "EU38" and "EU 36 (US 28)". An inch waist given
// alongside wins; otherwise EU 32–46 follow the garment scale (32=XXS,
// 38=M) and EU 48–60 the trouser scale.
func euIndex(toks []string) (int, bool) {
	rest := toks[1:]
	num := strings.TrimPrefix(toks[0], "EU")
	if num == "" {
		if len(rest) == 0 {
			return -1, false
		}
		num, rest = rest[0], rest[1:]
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return -1, false
	}
	for _, tok := range rest {
		if tok == "US" || tok == "USA" {
			continue
		}
		if in, err := strconv.ParseFloat(tok, 64); err == nil && in >= 26 && in <= 42 {
			return numericIndex(in)
		}
		break
	}
	switch {
	case n >= 30 && n <= 46:
		idx := int(math.Round((n - 32) / 2))
		if idx < 0 {
			idx = 0
		}
		return idx, true
	case n >= 48 && n <= 60:
		return numericIndex(n)
	default:
		return -1, false
	}
}

func numericIndex(n float64) (int, bool) {
	switch {
	case n >= 26 && n <= 42:
		switch {
		case n <= 27:
			return 0, true
		case n <= 28:
			return 1, true
		case n <= 30:
			return 2, true
		case n <= 32:
			return 3, true
		case n <= 34:
			return 4, true
		case n <= 36:
			return 5, true
		default:
			return 6, true
		}
	case n >= 44 && n <= 60:
		switch {
		case n <= 45:
			return 1, true
		case n <= 47:
			return 2, true
		case n <= 49:
			return 3, true
		case n <= 51:
			return 4, true
		case n <= 53:
			return 5, true
		case n <= 55:
			return 6, true
		default:
			return 7, true
		}
	default:
		return -1, false
	}
}

type sizeKey struct {
	idx   int
	known bool
	num   float64
	label string
}

func keyFor(label string) sizeKey {
	idx, ok := OrderIndex(label)
	k := sizeKey{idx: idx, known: ok, label: strings.ToUpper(strings.TrimSpace(label))}
	// Decorated labels like "L (40-42)" carry their number after the letter.
	for _, tok := range labelTokens(label) {
		if n, err := strconv.ParseFloat(strings.TrimPrefix(tok, "W"), 64); err == nil {
			k.num = n
			break
		}
	}
	return k
}

func (a sizeKey) less(b sizeKey) bool {
	if a.known != b.known {
		return a.known
	}
	if a.idx != b.idx {
		return a.idx < b.idx
	}
	if a.num != b.num {
		return a.num < b.num
	}
	return a.label < b.label
}

// SortChart returns a copy of entries in ascending canonical order. Repeated
// labels are dropped (first occurrence wins) and returned so callers can report them.
func SortChart(entries []SizeChartEntry) ([]SizeChartEntry, []string) {
	out := make([]SizeChartEntry, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	var dropped []string
	for _, e := range entries {
		key := strings.ToUpper(strings.TrimSpace(e.SizeLabel))
		if seen[key] {
			dropped = append(dropped, e.SizeLabel)
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return keyFor(out[i].SizeLabel).less(keyFor(out[j].SizeLabel))
	})
	return out, dropped
}
