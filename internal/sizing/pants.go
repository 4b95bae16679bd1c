package sizing

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	inchMin = 28.0
	inchMax = 40.0
	euMin   = 44.0
	euMax   = 60.0
	cmPerIn = 2.54
)

var (
	jeanToken    = regexp.MustCompile(`^W\s*\d+|^\d+\s*/\s*\d+$`)
	numericToken = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// PantSize is the numeric output for jeans and trousers. Numeric is false
// when the letter size from the chart stands.
type PantSize struct {
	Subtype PantSubtype
	Numeric bool
	EU      bool
	Label   string
	Value   float64
	Options []PantOption
}

// PantOption is a numeric size the product offers (or that was computed).
type PantOption struct {
	Label  string
	Waist  float64
	Length float64
}

func inNumericBand(n float64) bool {
	return (n >= 26 && n <= 42) || (n >= 44 && n <= 60)
}

func cleanSizes(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ClassifyPantSubtype reads the subtype from the shape of the offered sizes,
// falling back to product text.
func ClassifyPantSubtype(t *Tables, p ProductAttributes) PantSubtype {
	sizes := cleanSizes(p.AvailableSizes)
	text := newTextIndex(p.ProductName, p.Description, p.ProductURL)
	if len(sizes) > 0 {
		allNumeric, letters := true, false
		for _, s := range sizes {
			up := strings.ToUpper(s)
			if jeanToken.MatchString(up) {
				return PantJean
			}
			if numericToken.MatchString(up) {
				n, _ := strconv.ParseFloat(up, 64)
				if !inNumericBand(n) {
					allNumeric = false
				}
			} else {
				allNumeric = false
			}
			if IsLetterLabel(s) {
				letters = true
			}
		}
		if allNumeric {
			return PantFormal
		}
		if letters {
			for _, rule := range t.Keywords.PantSubtype {
				if rule.Subtype != PantShort {
					continue
				}
				if _, ok := text.first(rule.Keywords); ok {
					return PantShort
				}
			}
			return PantCasual
		}
	}
	for _, rule := range t.Keywords.PantSubtype {
		if _, ok := text.first(rule.Keywords); ok {
			return rule.Subtype
		}
	}
	return PantCasual
}

// pantOptions parses the offered numeric sizes, one option per label.
func pantOptions(raw []string) []PantOption {
	var out []PantOption
	for _, s := range cleanSizes(raw) {
		if IsLetterLabel(s) {
			continue
		}
		waist, ok := LabelNumber(s)
		if !ok {
			continue
		}
		opt := PantOption{Label: s, Waist: waist}
		if toks := labelTokens(s); len(toks) > 1 {
			if n, err := strconv.ParseFloat(strings.TrimPrefix(toks[1], "L"), 64); err == nil {
				opt.Length = n
			}
		}
		out = append(out, opt)
	}
	return out
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// FormatPant converts the calibrated waist into an inch or EU size for jeans
// and trousers, preferring sizes the product actually offers.
func FormatPant(t *Tables, subtype PantSubtype, waistCM float64, p Profile, product ProductAttributes, tr *trail) PantSize {
	ps := PantSize{Subtype: subtype}
	legCM := p.InseamCM
	if legCM <= 0 && p.HeightCM > 0 {
		legCM = p.HeightCM * t.LegLengthRatio
	}
	if subtype != PantJean && subtype != PantFormal {
		return ps
	}
	if waistCM <= 0 {
		tr.add("No waist measurement; keeping the letter size")
		return ps
	}

	offered := pantOptions(product.AvailableSizes)
	euCount, inchCount := 0, 0
	for _, o := range offered {
		switch {
		case o.Waist >= euMin && o.Waist <= euMax:
			euCount++
		case o.Waist >= 26 && o.Waist <= 42:
			inchCount++
		}
	}
	ps.EU = euCount > inchCount
	lo, hi, step := inchMin, inchMax, 1.0
	if ps.EU {
		lo, hi, step = euMin, euMax, 2.0
		ps.Value = clampFloat(waistCM/2+6, lo, hi)
		tr.addf("Waist %.1f cm → EU %.1f", waistCM, ps.Value)
	} else {
		ps.Value = clampFloat(waistCM/cmPerIn, lo, hi)
		tr.addf("Waist %.1f cm → %.1f in", waistCM, ps.Value)
	}

	legIn := legCM / cmPerIn
	if legCM > 0 {
		tr.addf("Leg length about %.0f cm (%.0f in), for reference only", legCM, legIn)
	}

	ps.Options = bestPerWaist(offered, lo, hi, legIn)
	if len(ps.Options) > 0 {
		best := ps.Options[0]
		for _, o := range ps.Options[1:] {
			d, bd := math.Abs(o.Waist-ps.Value), math.Abs(best.Waist-ps.Value)
			if d < bd || (d == bd && o.Waist > best.Waist) {
				best = o
			}
		}
		ps.Label = best.Label
		tr.addf("Closest offered size: %s", best.Label)
	} else {
		center := math.Round(ps.Value/step) * step
		for v := center - 2*step; v <= center+2*step; v += step {
			if v >= lo && v <= hi {
				ps.Options = append(ps.Options, PantOption{Label: trimFloat(v), Waist: v})
			}
		}
		ps.Label = trimFloat(center)
	}
	ps.Numeric = true
	return ps
}

// bestPerWaist keeps offered sizes inside [lo, hi], one per waist value,
// choosing the length closest to legIn, ordered by waist.
func bestPerWaist(offered []PantOption, lo, hi, legIn float64) []PantOption {
	byWaist := map[float64]PantOption{}
	var waists []float64
	for _, o := range offered {
		if o.Waist < lo || o.Waist > hi {
			continue
		}
		cur, seen := byWaist[o.Waist]
		if !seen {
			waists = append(waists, o.Waist)
			byWaist[o.Waist] = o
			continue
		}
		if legIn > 0 && o.Length > 0 && (cur.Length == 0 || math.Abs(o.Length-legIn) < math.Abs(cur.Length-legIn)) {
			byWaist[o.Waist] = o
		}
	}
	sort.Float64s(waists)
	out := make([]PantOption, 0, len(waists))
	for _, w := range waists {
		out = append(out, byWaist[w])
	}
	return out
}
