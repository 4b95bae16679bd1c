package sizing

// Calibration holds the body values the scorer works with. Zero means unknown.
type Calibration struct {
	Chest float64
	Waist float64
	Hips  float64
	BMI   float64
}

// Value returns the calibrated value for a metric.
func (c Calibration) Value(m Metric) float64 {
	switch m {
	case MetricChest:
		return c.Chest
	case MetricWaist:
		return c.Waist
	case MetricHip:
		return c.Hips
	default:
		return 0
	}
}

// BMI returns weight/height² or 0 when either is missing.
func BMI(heightCM, weightKG float64) float64 {
	if heightCM <= 0 || weightKG <= 0 {
		return 0
	}
	m := heightCM / 100
	return weightKG / (m * m)
}

// Calibrate resolves chest and waist through the reference, triangulation,
// hand-span, direct-entry and estimation chain, then adds layering ease.
func Calibrate(t *Tables, p Profile, refs []ResolvedReference, productBrand string, g Garment, tr *trail) Calibration {
	cal := Calibration{Hips: p.HipsCM, BMI: BMI(p.HeightCM, p.WeightKG)}
	chest := calibrateMetric(t, p, refs, productBrand, g, MetricChest, tr)
	waist := calibrateMetric(t, p, refs, productBrand, g, MetricWaist, tr)
	cal.Chest, cal.Waist = chest, waist

	if g.EaseCM > 0 {
		if cal.Chest > 0 {
			cal.Chest += g.EaseCM
		}
		if cal.Waist > 0 {
			cal.Waist += g.EaseCM / 2
		}
		tr.addf("Layering ease for %s: +%.1f cm chest, +%.1f cm waist", g.EaseLabel, g.EaseCM, g.EaseCM/2)
	}
	return cal
}

func calibrateMetric(t *Tables, p Profile, refs []ResolvedReference, productBrand string, g Garment, m Metric, tr *trail) float64 {
	for _, ref := range refs {
		if !ref.Found || !sameBrand(ref.Garment.Brand, productBrand) {
			continue
		}
		if r := ref.Entry.RangeFor(m); r.Present() {
			tr.addf("%s %.1f cm from your %s %s reference", m, r.Mid(), ref.Garment.Brand, ref.Garment.SizeLabel)
			return r.Mid()
		}
	}

	var sum float64
	var n int
	for _, ref := range refs {
		if !ref.Found || sameBrand(ref.Garment.Brand, productBrand) {
			continue
		}
		if r := ref.Entry.RangeFor(m); r.Present() {
			sum += r.Mid()
			n++
		}
	}
	if n > 0 {
		v := sum / float64(n)
		tr.addf("%s %.1f cm triangulated from %d reference garment(s)", m, v, n)
		return v
	}

	if p.HandSpanCM > 0 && p.GarmentWidthSpans > 0 {
		target := MetricChest
		if g.Category == CategoryBottom {
			target = MetricWaist
		}
		if m == target {
			v := p.GarmentWidthSpans * p.HandSpanCM * 2
			tr.addf("%s %.1f cm measured from a garment (%.1f spans of %.1f cm)", m, v, p.GarmentWidthSpans, p.HandSpanCM)
			return v
		}
	}

	switch m {
	case MetricChest:
		if p.ChestCM > 0 {
			return p.ChestCM
		}
		if p.ShoulderCM > 0 && t.ChestFromShoulder > 0 {
			v := p.ShoulderCM / t.ChestFromShoulder
			tr.addf("chest estimated from shoulder width: %.1f cm", v)
			return v
		}
	case MetricWaist:
		if p.WaistCM > 0 {
			return p.WaistCM
		}
		if band, ok := t.bmiBand(BMI(p.HeightCM, p.WeightKG)); ok && band.WaistRatio > 0 {
			v := p.HeightCM * band.WaistRatio
			tr.addf("waist estimated from height/weight (%s BMI): %.1f cm", band.Label, v)
			return v
		}
	}
	return 0
}
