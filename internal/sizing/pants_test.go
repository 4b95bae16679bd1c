package sizing

import "testing"

func TestClassifyPantSubtype(t *testing.T) {
	tb := MustDefaultTables()
	cases := []struct {
		name    string
		product ProductAttributes
		want    PantSubtype
	}{
		{"w_tokens", ProductAttributes{ProductName: "Trousers", AvailableSizes: []string{"W30 L32", "W32 L32"}}, PantJean},
		{"slash_tokens", ProductAttributes{ProductName: "Pants", AvailableSizes: []string{"30/32", "32/34"}}, PantJean},
		{"inch_numbers", ProductAttributes{ProductName: "Jeans", AvailableSizes: []string{"30", "31", "32"}}, PantFormal},
		{"eu_numbers", ProductAttributes{ProductName: "Pants", AvailableSizes: []string{"44", "46", "48"}}, PantFormal},
		{"letters_shorts", ProductAttributes{ProductName: "Denim Shorts", AvailableSizes: []string{"S", "M", "L"}}, PantShort},
		{"letters_default_casual", ProductAttributes{ProductName: "Slim Jeans", AvailableSizes: []string{"S", "M", "L"}}, PantCasual},
		{"keywords_jean", ProductAttributes{ProductName: "Mom Jeans"}, PantJean},
		{"keywords_formal", ProductAttributes{ProductName: "Tailored Trousers"}, PantFormal},
		{"keywords_turkish_skirt", ProductAttributes{ProductName: "Mini Etek"}, PantShort},
		{"keywords_none", ProductAttributes{ProductName: "Pantolon"}, PantCasual},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyPantSubtype(tb, tc.product); got != tc.want {
				t.Fatalf("got %s want %s", got, tc.want)
			}
		})
	}
}

func TestFormatPantNearestOffered(t *testing.T) {
	tb := MustDefaultTables()
	product := ProductAttributes{AvailableSizes: []string{"30", "31", "32"}}
	ps := FormatPant(tb, PantFormal, 82, Profile{}, product, &trail{})
	if !ps.Numeric || ps.Label != "32" {
		t.Fatalf("expected 32, got %+v", ps)
	}
}

func TestFormatPantTieGoesLarger(t *testing.T) {
	tb := MustDefaultTables()
	product := ProductAttributes{AvailableSizes: []string{"46", "48"}}
	// EU 47 sits between the two offered sizes.
	ps := FormatPant(tb, PantFormal, 82, Profile{}, product, &trail{})
	if !ps.EU || ps.Label != "48" {
		t.Fatalf("expected tie to resolve to 48, got %+v", ps)
	}
}

func TestFormatPantClamp(t *testing.T) {
	tb := MustDefaultTables()
	cases := []struct {
		name  string
		waist float64
		sizes []string
		want  string
	}{
		{name: "tiny_waist_inch", waist: 40, want: "28"},
		{name: "huge_waist_inch", waist: 200, want: "40"},
		{name: "offered_outside_band_ignored", waist: 200, sizes: []string{"42", "44"}, want: "40"},
		{name: "eu_huge", waist: 200, sizes: []string{"44", "46", "48"}, want: "48"},
		{name: "unrecognised_offers_fall_back_to_inches", waist: 81, sizes: []string{"62", "64"}, want: "32"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ps := FormatPant(tb, PantFormal, tc.waist, Profile{}, ProductAttributes{AvailableSizes: tc.sizes}, &trail{})
			if ps.Label != tc.want {
				t.Fatalf("got %s want %s", ps.Label, tc.want)
			}
		})
	}

	for w := 20.0; w <= 250; w += 3 {
		ps := FormatPant(tb, PantJean, w, Profile{}, ProductAttributes{}, &trail{})
		n, ok := LabelNumber(ps.Label)
		if !ok || n < 28 || n > 40 {
			t.Fatalf("waist %v produced %q outside [28,40]", w, ps.Label)
		}
		ps = FormatPant(tb, PantJean, w, Profile{}, ProductAttributes{AvailableSizes: []string{"44", "50"}}, &trail{})
		n, ok = LabelNumber(ps.Label)
		if !ok || n < 44 || n > 60 {
			t.Fatalf("waist %v produced EU %q outside [44,60]", w, ps.Label)
		}
	}
}

func TestFormatPantJeanLength(t *testing.T) {
	tb := MustDefaultTables()
	product := ProductAttributes{AvailableSizes: []string{"W32 L30", "W32 L32", "W32 L34", "W34 L32"}}
	ps := FormatPant(tb, PantJean, 81, Profile{InseamCM: 86}, product, &trail{})
	if ps.Label != "W32 L34" {
		t.Fatalf("expected length closest to inseam, got %s", ps.Label)
	}
}

func TestFormatPantKeepsLetters(t *testing.T) {
	tb := MustDefaultTables()
	if ps := FormatPant(tb, PantCasual, 82, Profile{}, ProductAttributes{}, &trail{}); ps.Numeric {
		t.Fatalf("casual pants keep letter sizes, got %+v", ps)
	}
	if ps := FormatPant(tb, PantJean, 0, Profile{}, ProductAttributes{}, &trail{}); ps.Numeric {
		t.Fatalf("unknown waist keeps letter sizes, got %+v", ps)
	}
}
