package sizing

// FindFittingIndex returns the first chart index whose upper bound for m,
// widened by tolerance, accommodates v. A value larger than every bound maps
// to the last entry carrying the metric. It returns -1 when v is unknown or
// no entry carries the metric.
func FindFittingIndex(chart []SizeChartEntry, m Metric, v, tolerance float64) int {
	if v <= 0 {
		return -1
	}
	last := -1
	for i, e := range chart {
		r := e.RangeFor(m)
		if !r.Present() {
			continue
		}
		if v <= r.Max+tolerance {
			return i
		}
		last = i
	}
	return last
}

// Candidates are per-metric chart indices; -1 means the metric did not apply.
type Candidates struct {
	Chest  int
	Waist  int
	Hip    int
	Weight int
}

func (c Candidates) any() bool {
	return c.Chest >= 0 || c.Waist >= 0 || c.Hip >= 0 || c.Weight >= 0
}

// scoredMetrics lists the metrics a garment is constrained by, in tie-break order.
func scoredMetrics(g Garment) []Metric {
	if g.Category == CategoryBottom {
		return []Metric{MetricWaist, MetricHip}
	}
	if g.FullBody {
		return []Metric{MetricChest, MetricWaist, MetricHip}
	}
	return []Metric{MetricChest, MetricWaist}
}

// ScoreConstraints computes a candidate index per metric against the chart.
func ScoreConstraints(t *Tables, chart []SizeChartEntry, cal Calibration, g Garment, p Profile, tr *trail) Candidates {
	c := Candidates{Chest: -1, Waist: -1, Hip: -1, Weight: -1}
	tolerance := g.ElasticityCM + t.FitAdjustmentCM[g.FitType]
	if g.ElasticityCM > 0 {
		tr.addf("Fabric stretch: +%.0f cm tolerance", g.ElasticityCM)
	}
	for _, m := range scoredMetrics(g) {
		idx := FindFittingIndex(chart, m, cal.Value(m), tolerance)
		if idx < 0 {
			continue
		}
		switch m {
		case MetricChest:
			c.Chest = idx
		case MetricWaist:
			c.Waist = idx
		case MetricHip:
			c.Hip = idx
		}
		tr.addf("%s %.1f cm fits %s", m, cal.Value(m), chart[idx].SizeLabel)
	}
	if c.Chest < 0 && c.Waist < 0 && c.Hip < 0 {
		if idx := weightFloorIndex(t, chart, p.Gender, p.WeightKG); idx >= 0 {
			c.Weight = idx
			tr.addf("No body measurement applies; weight %.0f kg suggests %s", p.WeightKG, chart[idx].SizeLabel)
		}
	}
	return c
}

// weightFloorIndex maps body weight to a chart index through the gender's weight bands.
func weightFloorIndex(t *Tables, chart []SizeChartEntry, g Gender, weightKG float64) int {
	if weightKG <= 0 || len(chart) == 0 {
		return -1
	}
	size := ""
	for _, b := range t.weightBands(g) {
		if b.UpTo <= 0 || weightKG < b.UpTo {
			size = b.Size
			break
		}
	}
	want, ok := OrderIndex(size)
	if !ok {
		return -1
	}
	known := false
	for i, e := range chart {
		idx, ok := OrderIndex(e.SizeLabel)
		known = known || ok
		if ok && idx >= want {
			return i
		}
	}
	if !known {
		// Charts without letter-equivalent labels: bands start at S.
		return clampIndex(want-2, len(chart))
	}
	return len(chart) - 1
}
