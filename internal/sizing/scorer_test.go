package sizing

import "testing"

func TestFindFittingIndexMonotonic(t *testing.T) {
	tb := MustDefaultTables()
	for _, g := range []Gender{GenderMale, GenderFemale, GenderUnisex} {
		chart, _ := tb.universalChart(g, CategoryTop)
		for _, m := range []Metric{MetricChest, MetricWaist} {
			for _, tol := range []float64{-2, 0, 3, 8} {
				prev := -1
				for v := 40.0; v <= 160; v += 0.5 {
					idx := FindFittingIndex(chart, m, v, tol)
					if idx < prev {
						t.Fatalf("%s/%s tol %v: index fell from %d to %d at %v", g, m, tol, prev, idx, v)
					}
					prev = idx
				}
			}
		}
	}
}

func TestFindFittingIndex(t *testing.T) {
	chart := []SizeChartEntry{
		{SizeLabel: "S", Chest: Range{86, 94}},
		{SizeLabel: "M", Chest: Range{94, 102}},
		{SizeLabel: "L", Chest: Range{102, 110}},
	}
	cases := []struct {
		name string
		m    Metric
		v    float64
		tol  float64
		want int
	}{
		{"inside_first", MetricChest, 88, 0, 0},
		{"on_boundary", MetricChest, 94, 0, 0},
		{"slim_shifts_boundary_down", MetricChest, 93, -2, 1},
		{"oversize_shifts_boundary_up", MetricChest, 97, 4, 0},
		{"beyond_chart_returns_last", MetricChest, 140, 0, 2},
		{"unknown_value", MetricChest, 0, 0, -1},
		{"metric_absent", MetricHip, 95, 0, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FindFittingIndex(chart, tc.m, tc.v, tc.tol); got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}

func TestWeightFloorOnlyWithoutMeasurements(t *testing.T) {
	tb := MustDefaultTables()
	chart, _ := tb.universalChart(GenderMale, CategoryTop)
	g := Garment{Category: CategoryTop, FitType: FitRegular}
	p := Profile{Gender: GenderMale, WeightKG: 80}

	c := ScoreConstraints(tb, chart, Calibration{}, g, p, &trail{})
	if c.Weight < 0 || chart[c.Weight].SizeLabel != "L" {
		t.Fatalf("expected weight floor L, got %+v", c)
	}

	c = ScoreConstraints(tb, chart, Calibration{Chest: 90}, g, p, &trail{})
	if c.Weight != -1 || chart[c.Chest].SizeLabel != "S" {
		t.Fatalf("weight floor must not apply when chest is known, got %+v", c)
	}
}

func TestWeightFloorHeaviestBand(t *testing.T) {
	tb := MustDefaultTables()
	chart := []SizeChartEntry{{SizeLabel: "S"}, {SizeLabel: "M"}, {SizeLabel: "L"}}
	if idx := weightFloorIndex(tb, chart, GenderFemale, 120); idx != 2 {
		t.Fatalf("expected last index for sizes beyond chart, got %d", idx)
	}
	if idx := weightFloorIndex(tb, chart, GenderFemale, 0); idx != -1 {
		t.Fatalf("expected -1 without weight, got %d", idx)
	}
}
