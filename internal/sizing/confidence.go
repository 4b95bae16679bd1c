package sizing

import (
	"math"
	"sort"
)

const (
	synthTop     = 96
	synthLarger  = 3
	synthSmaller = 1
	maxShares    = 3
)

// GaussianScore rates how centred v is in r on a 0–100 scale. Values inside
// the range get a 1.2× bonus, capped at 100.
func GaussianScore(v float64, r Range) float64 {
	if !r.Present() || v <= 0 {
		return 0
	}
	sigma := (r.Max - r.Min) / 4
	if sigma <= 0 {
		sigma = 1
	}
	z := (v - r.Mid()) / sigma
	score := 100 * math.Exp(-0.5*z*z)
	if r.Contains(v) {
		score = math.Min(100, score*1.2)
	}
	return score
}

// Distribute turns per-label scores (labels in canonical order) into integer
// percentages over the best three, and recentres on recommended when the
// best score names a different size.
func Distribute(labels []string, scores []float64, recommended string, tr *trail) Distribution {
	order := make([]int, 0, len(labels))
	for i := range labels {
		if i < len(scores) && scores[i] > 0 {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	if len(order) > maxShares {
		order = order[:maxShares]
	}
	if len(order) == 0 || labels[order[0]] != recommended {
		if len(order) > 0 {
			tr.addf("Best statistical match was %s; distribution centred on %s", labels[order[0]], recommended)
		}
		return synthesize(labels, recommended)
	}

	var sum float64
	for _, i := range order {
		sum += scores[i]
	}
	dist := make(Distribution, len(order))
	total := 0
	for k, i := range order {
		pct := int(math.Floor(scores[i] / sum * 100))
		if pct < 1 {
			pct = 1
		}
		dist[k] = SizeShare{Label: labels[i], Percent: pct}
		total += pct
	}
	dist[0].Percent += 100 - total
	return dist
}

func synthesize(labels []string, recommended string) Distribution {
	pos := -1
	for i, l := range labels {
		if l == recommended {
			pos = i
			break
		}
	}
	if pos < 0 {
		return Distribution{{Label: recommended, Percent: 100}}
	}
	hasSmaller, hasLarger := pos > 0, pos < len(labels)-1
	switch {
	case hasSmaller && hasLarger:
		return Distribution{
			{Label: recommended, Percent: synthTop},
			{Label: labels[pos+1], Percent: synthLarger},
			{Label: labels[pos-1], Percent: synthSmaller},
		}
	case hasLarger:
		return Distribution{
			{Label: recommended, Percent: synthTop},
			{Label: labels[pos+1], Percent: 100 - synthTop},
		}
	case hasSmaller:
		return Distribution{
			{Label: recommended, Percent: synthTop},
			{Label: labels[pos-1], Percent: 100 - synthTop},
		}
	default:
		return Distribution{{Label: recommended, Percent: 100}}
	}
}

// distributionMetric picks the metric whose value feeds the Gaussian scores:
// the binding metric when it has a value, else the garment's primary one.
func distributionMetric(d Decision, g Garment, cal Calibration) (Metric, bool) {
	if d.Binding != MetricWeight && cal.Value(d.Binding) > 0 {
		return d.Binding, true
	}
	primary := MetricChest
	if g.Category == CategoryBottom {
		primary = MetricWaist
	}
	return primary, cal.Value(primary) > 0
}

func distributeChart(chart []SizeChartEntry, d Decision, g Garment, cal Calibration, recommended string, tr *trail) Distribution {
	labels := make([]string, len(chart))
	scores := make([]float64, len(chart))
	m, ok := distributionMetric(d, g, cal)
	for i, e := range chart {
		labels[i] = e.SizeLabel
		if ok {
			scores[i] = GaussianScore(cal.Value(m), e.RangeFor(m))
		}
	}
	return Distribute(labels, scores, recommended, tr)
}

func distributePant(ps PantSize, tr *trail) Distribution {
	labels := make([]string, len(ps.Options))
	scores := make([]float64, len(ps.Options))
	for i, o := range ps.Options {
		labels[i] = o.Label
		scores[i] = GaussianScore(ps.Value, Range{Min: o.Waist - 1, Max: o.Waist + 1})
	}
	return Distribute(labels, scores, ps.Label, tr)
}
