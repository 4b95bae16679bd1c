package sizing

import "math"

// Decision is the resolved chart index and the metric that bound it.
type Decision struct {
	Index        int
	Binding      Metric
	WaistBinding bool
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// ResolveIndex combines per-metric candidates into one chart index: the
// largest constraint wins, then shape, BMI, brand, fit and feedback
// adjustments apply in that order.
func ResolveIndex(t *Tables, chart []SizeChartEntry, c Candidates, g Garment, p Profile, cal Calibration, product ProductAttributes, tr *trail) Decision {
	n := len(chart)
	d := Decision{Index: -1}
	for _, mc := range []struct {
		m   Metric
		idx int
	}{{MetricChest, c.Chest}, {MetricWaist, c.Waist}, {MetricHip, c.Hip}, {MetricWeight, c.Weight}} {
		if mc.idx > d.Index {
			d.Index, d.Binding = mc.idx, mc.m
		}
	}
	d.WaistBinding = c.Waist >= 0 && c.Waist == d.Index
	tr.addf("Largest constraint: %s → %s", d.Binding, chart[d.Index].SizeLabel)

	if p.BodyShape == ShapeInvertedTriangle && g.Category == CategoryTop &&
		d.WaistBinding && c.Chest >= 0 && c.Waist > c.Chest {
		d.Index, d.Binding, d.WaistBinding = c.Chest, MetricChest, false
		tr.addf("Inverted-triangle shape: sizing by chest (%s) instead of waist", chart[d.Index].SizeLabel)
	}

	shift := 0.0
	if band, ok := t.bmiBand(cal.BMI); ok && band.Factor != 0 {
		shift += band.Factor
		tr.addf("BMI %.1f (%s): %s", cal.BMI, band.Label, signed(band.Factor))
	}
	if bias, ok := t.brandBias(product.Brand); ok && bias.Factor != 0 {
		shift += bias.Factor
		tr.addf("%s %s: %s", product.Brand, bias.Note, signed(bias.Factor))
	}
	if sf, ok := t.BodyShapes[p.BodyShape]; ok {
		f := sf.Top
		if g.Category == CategoryBottom {
			f = sf.Bottom
		}
		if f != 0 {
			shift += f
			tr.addf("Body shape %s: %s", p.BodyShape, signed(f))
		}
	}
	if shift != 0 {
		before := d.Index
		// The shift rounds on its own so a half step moves the index either way.
		d.Index = clampIndex(d.Index+int(math.Round(shift)), n)
		if d.Index != before {
			tr.addf("Adjusted %s → %s", chart[before].SizeLabel, chart[d.Index].SizeLabel)
		}
	}

	if g.FitType == FitSlim && d.WaistBinding {
		before := d.Index
		d.Index = clampIndex(d.Index+1, n)
		if d.Index != before {
			tr.addf("Slim cut bound by waist: one size up to %s", chart[d.Index].SizeLabel)
		}
	}

	if rule, ok := feedbackRule(t, product); ok {
		before := d.Index
		d.Index = clampIndex(d.Index+rule.Step, n)
		if d.Index != before {
			tr.addf("Shoppers say it %s: %s", rule.Label, chart[d.Index].SizeLabel)
		}
	}
	return d
}

func feedbackRule(t *Tables, product ProductAttributes) (FeedbackRule, bool) {
	text := newTextIndex(product.FitAdvice)
	if text.empty() {
		return FeedbackRule{}, false
	}
	for _, rule := range t.Keywords.Feedback {
		if _, ok := text.first(rule.Keywords); ok {
			return rule, true
		}
	}
	return FeedbackRule{}, false
}

func signed(f float64) string {
	if f > 0 {
		return "+" + trimFloat(f) + " size"
	}
	return trimFloat(f) + " size"
}
