package sizing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Garment is the classifier's reading of a product.
type Garment struct {
	Category     Category
	FullBody     bool
	FitType      FitType
	ElasticityCM float64
	EaseCM       float64
	EaseLabel    string
}

// ClassifyGarment infers category, fit, elasticity and ease from product text.
// ok is false for products that match no clothing keyword.
func ClassifyGarment(t *Tables, p ProductAttributes) (Garment, bool) {
	cat, fullBody, ok := classifyCategory(t, p)
	if !ok {
		return Garment{}, false
	}
	ease, label := easeAllowance(t, p)
	return Garment{
		Category:     cat,
		FullBody:     fullBody,
		FitType:      classifyFit(t, p),
		ElasticityCM: elasticityBonus(t, p),
		EaseCM:       ease,
		EaseLabel:    label,
	}, true
}

func classifyCategory(t *Tables, p ProductAttributes) (Category, bool, bool) {
	text := newTextIndex(p.ProductName, p.Description, p.ProductURL)
	for _, rule := range t.Keywords.Category {
		if _, ok := text.first(rule.Keywords); ok {
			return rule.Category, rule.FullBody, true
		}
	}
	return "", false, false
}

func classifyFit(t *Tables, p ProductAttributes) FitType {
	text := newTextIndex(p.ProductName, p.Description)
	for _, rule := range t.Keywords.Fit {
		if _, ok := text.first(rule.Keywords); ok {
			return rule.Fit
		}
	}
	return FitRegular
}

func easeAllowance(t *Tables, p ProductAttributes) (float64, string) {
	text := newTextIndex(p.ProductName, p.Description)
	for _, rule := range t.Keywords.Ease {
		if _, ok := text.first(rule.Keywords); ok {
			return rule.CM, rule.Label
		}
	}
	return 0, ""
}

// fiberPercent matches "5% elastane", "%5 elastan" and "elastane 5%".
var fiberPercent = regexp.MustCompile(`(?:(\d+(?:[.,]\d+)?)\s*%|%\s*(\d+(?:[.,]\d+)?))\s*([a-z]+)|([a-z]+)\s*(\d+(?:[.,]\d+)?)\s*%`)

func elasticityBonus(t *Tables, p ProductAttributes) float64 {
	el := t.Keywords.Elasticity
	fabric := newTextIndex(p.FabricComposition)
	if _, ok := fabric.first(el.StretchFibers); ok {
		if pct, found := stretchPercent(el.StretchFibers, p.FabricComposition); found {
			switch {
			case pct >= 5:
				return 4
			case pct >= 3:
				return 3
			default:
				return 2
			}
		}
		text := newTextIndex(p.FabricComposition, p.Description)
		if _, ok := text.first(el.HighStretch); ok {
			return 4
		}
		if _, ok := text.first(el.Stretch); ok {
			return 3
		}
		return 2
	}
	if _, ok := fabric.first(el.Polyester); ok {
		if _, cotton := fabric.first(el.Cotton); !cotton {
			return 1
		}
	}
	return 0
}

func stretchPercent(fibers []string, composition string) (float64, bool) {
	folded := foldText(composition)
	best, found := 0.0, false
	for _, m := range fiberPercent.FindAllStringSubmatch(folded, -1) {
		num, word := m[1], m[3]
		if num == "" {
			num = m[2]
		}
		if word == "" {
			word, num = m[4], m[5]
		}
		if !containsString(fibers, word) {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", "."), 64)
		if err != nil {
			continue
		}
		if !found || v > best {
			best, found = v, true
		}
	}
	return best, found
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func describeGarment(g Garment) string {
	kind := string(g.Category)
	if g.FullBody {
		kind = "full-body (sized as top)"
	}
	return fmt.Sprintf("Garment: %s, %s fit", kind, g.FitType)
}
