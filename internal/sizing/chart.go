package sizing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errNoSizeStandard = errors.New("no size chart available")
	errMalformedChart = errors.New("malformed size chart")
)

// ResolvedChart is the sorted chart the scorer runs against.
type ResolvedChart struct {
	Entries    []SizeChartEntry
	IsFallback bool
}

func (c ResolvedChart) labels() []string {
	out := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.SizeLabel
	}
	return out
}

// ValidateChart rejects rows without a label or with inverted ranges.
func ValidateChart(rows []SizeChartEntry) error {
	for _, row := range rows {
		if strings.TrimSpace(row.SizeLabel) == "" {
			return fmt.Errorf("%w: row without size label", errMalformedChart)
		}
		for _, m := range []Metric{MetricChest, MetricWaist, MetricHip} {
			r := row.RangeFor(m)
			if r.Min < 0 || r.Max < 0 || (r.Present() && r.Min > r.Max) {
				return fmt.Errorf("%w: %s %s range %.1f-%.1f", errMalformedChart, row.SizeLabel, m, r.Min, r.Max)
			}
		}
		if row.Shoulder.Present() && row.Shoulder.Min > row.Shoulder.Max {
			return fmt.Errorf("%w: %s shoulder range %.1f-%.1f", errMalformedChart, row.SizeLabel, row.Shoulder.Min, row.Shoulder.Max)
		}
	}
	return nil
}

func rowMatches(row SizeChartEntry, g Gender, c Category) bool {
	if row.Category != "" && row.Category != c {
		return false
	}
	rg := NormalizeGender(string(row.Gender))
	if rg == GenderUnisex {
		// Unrecognised genders (kids' ranges) never join an adult chart.
		switch strings.ToLower(strings.TrimSpace(string(row.Gender))) {
		case "", "unisex", "all":
			return true
		default:
			return false
		}
	}
	return rg == g
}

// ResolveChart picks the brand rows that apply to this gender and category,
// falling back to the universal chart for the gender.
func ResolveChart(t *Tables, brand string, brandRows []SizeChartEntry, g Gender, c Category, tr *trail) (ResolvedChart, error) {
	var rows []SizeChartEntry
	for _, row := range brandRows {
		if rowMatches(row, g, c) {
			rows = append(rows, row)
		}
	}
	fallback := false
	if len(rows) == 0 {
		universal, ok := t.universalChart(g, c)
		if !ok {
			return ResolvedChart{}, errNoSizeStandard
		}
		rows = universal
		fallback = true
		name := strings.TrimSpace(brand)
		if name == "" {
			name = "this brand"
		}
		tr.addf("No %s size chart for %s; using the universal %s chart", name, c, g)
	}
	if err := ValidateChart(rows); err != nil {
		return ResolvedChart{}, err
	}
	sorted, dropped := SortChart(rows)
	if len(dropped) > 0 {
		tr.addf("Ignored duplicate chart rows: %s", strings.Join(dropped, ", "))
	}
	return ResolvedChart{Entries: sorted, IsFallback: fallback}, nil
}
