package sizing

import (
	"strings"
	"testing"
)

func TestDefaultTables(t *testing.T) {
	tb, err := DefaultTables()
	if err != nil {
		t.Fatalf("default tables: %v", err)
	}
	for _, g := range []Gender{GenderMale, GenderFemale, GenderUnisex} {
		for _, c := range []Category{CategoryTop, CategoryBottom} {
			rows, ok := tb.universalChart(g, c)
			if !ok || len(rows) == 0 {
				t.Fatalf("missing universal chart %s/%s", g, c)
			}
			if rows[0].Gender != g || rows[0].Category != c {
				t.Fatalf("universal rows not stamped: %+v", rows[0])
			}
		}
	}
	if band, ok := tb.bmiBand(40); !ok || band.Factor != 1.0 {
		t.Fatalf("expected open-ended top bmi band, got %+v", band)
	}
	if bias, ok := tb.brandBias("ZARA.com"); !ok || bias.Factor != 0.3 {
		t.Fatalf("expected zara bias, got %+v %v", bias, ok)
	}
	if bias, ok := tb.brandBias("H&M"); !ok || bias.Factor != -0.2 {
		t.Fatalf("expected h&m bias, got %+v %v", bias, ok)
	}
}

func TestParseTablesRejectsInvertedRange(t *testing.T) {
	doc := `
bmi:
  - {upTo: 0, label: any, factor: 0, waistRatio: 0.44}
universal:
  unisex:
    top:
      - {sizeLabel: M, chest: {min: 100, max: 90}}
keywords:
  category:
    - category: top
      keywords: [shirt]
`
	_, err := ParseTables([]byte(doc))
	if err == nil || !strings.Contains(err.Error(), "malformed") {
		t.Fatalf("expected malformed chart error, got %v", err)
	}
}

func TestParseTablesRequiresBMI(t *testing.T) {
	if _, err := ParseTables([]byte("universal: {}\n")); err == nil {
		t.Fatal("expected error for missing bmi bands")
	}
}
