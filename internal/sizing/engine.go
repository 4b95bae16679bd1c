package sizing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Engine runs the recommendation stages in a fixed order. It holds only
// read-only tables and is safe for concurrent use.
type Engine struct {
	tables *Tables
}

// New returns an engine over t, or over the embedded tables when t is nil.
func New(t *Tables) *Engine {
	if t == nil {
		t = MustDefaultTables()
	}
	return &Engine{tables: t}
}

// Recommend computes a size for in. Failures are reported in the result,
// never as a panic or error.
func (e *Engine) Recommend(in Input) (res Result) {
	tr := &trail{}
	defer func() {
		if r := recover(); r != nil {
			tr.addf("internal error: %v", r)
			res = FailureResult(KindInternal, "Something went wrong while calculating your size.", tr.snapshot())
		}
	}()

	if msg := strings.TrimSpace(in.Product.Error); msg != "" {
		tr.addf("Product page unavailable: %s", msg)
		return FailureResult(KindUpstreamProductUnavailable, "We could not read this product page right now. Please try again later.", tr.snapshot())
	}
	if in.Profile == nil {
		return FailureResult(KindMeasurementsNotFound, "Add your measurements to get a size recommendation.", nil)
	}
	p := *in.Profile
	p.Gender = NormalizeGender(string(p.Gender))

	g, ok := ClassifyGarment(e.tables, in.Product)
	if !ok {
		return FailureResult(KindNonClothingProduct, "This product does not look like clothing we can size.", tr.snapshot())
	}
	tr.add(describeGarment(g))

	cal := Calibrate(e.tables, p, in.References, in.Product.Brand, g, tr)

	chart, err := ResolveChart(e.tables, in.Product.Brand, in.BrandChart, p.Gender, g.Category, tr)
	if err != nil {
		if errors.Is(err, errNoSizeStandard) {
			return FailureResult(KindSizeStandardUnavailable, fmt.Sprintf("No size chart is available for %s %s garments.", p.Gender, g.Category), tr.snapshot())
		}
		tr.add(err.Error())
		return FailureResult(KindInternal, "Something went wrong while calculating your size.", tr.snapshot())
	}

	cands := ScoreConstraints(e.tables, chart.Entries, cal, g, p, tr)
	if !cands.any() {
		return FailureResult(KindIndeterminateSize, "We need at least one body measurement or your weight to pick a size.", tr.snapshot())
	}
	d := ResolveIndex(e.tables, chart.Entries, cands, g, p, cal, in.Product, tr)
	size := chart.Entries[d.Index].SizeLabel

	var (
		subtype PantSubtype
		dist    Distribution
		numeric bool
	)
	if g.Category == CategoryBottom {
		subtype = ClassifyPantSubtype(e.tables, in.Product)
		tr.addf("Pant type: %s", subtype)
		ps := FormatPant(e.tables, subtype, cal.Waist, p, in.Product, tr)
		if ps.Numeric {
			size, numeric = ps.Label, true
			dist = distributePant(ps, tr)
		}
	}
	if dist == nil {
		dist = distributeChart(chart.Entries, d, g, cal, size, tr)
	}
	top, _ := dist.Top()

	var warnings []string
	switch g.FitType {
	case FitOversize:
		warnings = append(warnings, "This is an oversized cut; you might fit in a smaller size.")
	case FitSlim:
		warnings = append(warnings, "This is a slim cut; consider sizing up if you prefer a looser fit.")
	}
	if !numeric {
		if w := availabilityWarning(size, in.Product.AvailableSizes); w != "" {
			warnings = append(warnings, w)
		}
	}
	if info := modelInfo(in.Product); info != "" {
		tr.add(info)
	}

	msg := fmt.Sprintf("Based on your measurements, %s is the best fit.", size)
	if chart.IsFallback {
		msg += " The brand's own chart was not available, so a standard chart was used."
	}
	return Result{
		RecommendedSize: size,
		SizePercentages: dist,
		Confidence:      top.Percent,
		FitMessage:      msg,
		DetailedReport:  tr.snapshot(),
		Warning:         strings.Join(warnings, " "),
		Category:        g.Category,
		FitType:         g.FitType,
		PantSubtype:     subtype,
		IsFallback:      chart.IsFallback,
	}
}

// availabilityWarning names the closest offered letter size when the
// recommendation is not in the product's list.
func availabilityWarning(size string, available []string) string {
	want, ok := OrderIndex(size)
	if !ok || !IsLetterLabel(size) {
		return ""
	}
	closest, closestDist := "", math.MaxInt
	for _, s := range cleanSizes(available) {
		if !IsLetterLabel(s) {
			continue
		}
		idx, _ := OrderIndex(s)
		if idx == want {
			return ""
		}
		d := idx - want
		if d < 0 {
			d = -d
		}
		if d < closestDist || (d == closestDist && idx > want) {
			closest, closestDist = s, d
		}
	}
	if closest == "" {
		return ""
	}
	return fmt.Sprintf("Size %s is not listed as available; the closest offered size is %s.", size, closest)
}

func modelInfo(p ProductAttributes) string {
	h, s := strings.TrimSpace(p.ModelHeight), strings.TrimSpace(p.ModelSize)
	switch {
	case h != "" && s != "":
		return fmt.Sprintf("Model is %s and wears %s", h, s)
	case h != "":
		return fmt.Sprintf("Model is %s", h)
	case s != "":
		return fmt.Sprintf("Model wears %s", s)
	}
	return ""
}
