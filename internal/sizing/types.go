package sizing

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Category is the garment family a product belongs to.
type Category string

const (
	CategoryTop    Category = "top"
	CategoryBottom Category = "bottom"
)

// Gender keys both brand charts and the universal fallback charts.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderUnisex Gender = "unisex"
)

// NormalizeGender maps free-form gender input onto the supported keys.
func NormalizeGender(raw string) Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m", "man", "men", "erkek":
		return GenderMale
	case "female", "f", "woman", "women", "kadin", "kadın":
		return GenderFemale
	default:
		return GenderUnisex
	}
}

type BodyShape string

const (
	ShapeRectangular      BodyShape = "rectangular"
	ShapeTriangle         BodyShape = "triangle"
	ShapeInvertedTriangle BodyShape = "inverted_triangle"
	ShapeOval             BodyShape = "oval"
	ShapeHourglass        BodyShape = "hourglass"
)

// FitType describes how a garment is cut.
type FitType string

const (
	FitSlim     FitType = "slim"
	FitRegular  FitType = "regular"
	FitOversize FitType = "oversize"
)

// PantSubtype drives letter vs numeric output for bottoms.
type PantSubtype string

const (
	PantJean   PantSubtype = "jean"
	PantFormal PantSubtype = "formal"
	PantCasual PantSubtype = "casual"
	PantShort  PantSubtype = "short"
)

// Metric names a body measurement a chart can constrain.
type Metric string

const (
	MetricChest  Metric = "chest"
	MetricWaist  Metric = "waist"
	MetricHip    Metric = "hip"
	MetricWeight Metric = "weight"
)

// Profile is a user's measurement profile. Zero means the value was not provided.
type Profile struct {
	HeightCM          float64   `json:"heightCm" yaml:"heightCm"`
	WeightKG          float64   `json:"weightKg" yaml:"weightKg"`
	ChestCM           float64   `json:"chestCm,omitempty" yaml:"chestCm"`
	WaistCM           float64   `json:"waistCm,omitempty" yaml:"waistCm"`
	HipsCM            float64   `json:"hipsCm,omitempty" yaml:"hipsCm"`
	ShoulderCM        float64   `json:"shoulderCm,omitempty" yaml:"shoulderCm"`
	ArmLengthCM       float64   `json:"armLengthCm,omitempty" yaml:"armLengthCm"`
	InseamCM          float64   `json:"inseamCm,omitempty" yaml:"inseamCm"`
	HandSpanCM        float64   `json:"handSpanCm,omitempty" yaml:"handSpanCm"`
	Gender            Gender    `json:"gender" yaml:"gender"`
	BodyShape         BodyShape `json:"bodyShape,omitempty" yaml:"bodyShape"`
	ReferenceBrand    string    `json:"referenceBrand,omitempty" yaml:"referenceBrand"`
	ReferenceSize     string    `json:"referenceSizeLabel,omitempty" yaml:"referenceSizeLabel"`
	GarmentWidthSpans float64   `json:"garmentWidthSpans,omitempty" yaml:"garmentWidthSpans"`
}

// ReferenceGarment is a garment the user confirmed fits them.
type ReferenceGarment struct {
	Brand     string   `json:"brand" yaml:"brand"`
	SizeLabel string   `json:"sizeLabel" yaml:"sizeLabel"`
	Category  Category `json:"category,omitempty" yaml:"category"`
}

// ResolvedReference pairs a reference garment with the chart entry it maps to.
// Found is false when the brand or label could not be located in the catalog.
type ResolvedReference struct {
	Garment ReferenceGarment `json:"garment" yaml:"garment"`
	Entry   SizeChartEntry   `json:"entry" yaml:"entry"`
	Found   bool             `json:"found" yaml:"found"`
}

// Range is an inclusive min/max in centimetres. A range with Max <= 0 is absent.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Present reports whether the chart provides this range.
func (r Range) Present() bool {
	return r.Max > 0
}

// Mid returns the range midpoint.
func (r Range) Mid() float64 {
	return (r.Min + r.Max) / 2
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return r.Present() && v >= r.Min && v <= r.Max
}

// SizeChartEntry is one row of a brand or universal size chart.
type SizeChartEntry struct {
	BrandID   int64    `json:"brandId,omitempty" yaml:"brandId"`
	Category  Category `json:"category" yaml:"category"`
	Gender    Gender   `json:"gender" yaml:"gender"`
	SizeLabel string   `json:"sizeLabel" yaml:"sizeLabel"`
	Chest     Range    `json:"chest,omitempty" yaml:"chest"`
	Waist     Range    `json:"waist,omitempty" yaml:"waist"`
	Hip       Range    `json:"hip,omitempty" yaml:"hip"`
	Shoulder  Range    `json:"shoulder,omitempty" yaml:"shoulder"`
}

// RangeFor returns the entry's range for a metric.
func (e SizeChartEntry) RangeFor(m Metric) Range {
	switch m {
	case MetricChest:
		return e.Chest
	case MetricWaist:
		return e.Waist
	case MetricHip:
		return e.Hip
	default:
		return Range{}
	}
}

// ProductAttributes is the scraped product payload.
type ProductAttributes struct {
	Brand             string   `json:"brand" yaml:"brand" validate:"required"`
	ProductName       string   `json:"product_name" yaml:"product_name" validate:"required"`
	Description       string   `json:"description" yaml:"description"`
	FabricComposition string   `json:"fabric_composition,omitempty" yaml:"fabric_composition"`
	ProductURL        string   `json:"product_url,omitempty" yaml:"product_url"`
	AvailableSizes    []string `json:"available_sizes,omitempty" yaml:"available_sizes"`
	FitAdvice         string   `json:"fit_advice,omitempty" yaml:"fit_advice"`
	ModelHeight       string   `json:"model_height,omitempty" yaml:"model_height"`
	ModelSize         string   `json:"model_size,omitempty" yaml:"model_size"`
	Error             string   `json:"error,omitempty" yaml:"error"`
}

// Input bundles everything a recommendation needs. All reads happen before
// the engine is invoked. A nil Profile means the user has no measurements.
type Input struct {
	Profile    *Profile            `json:"profile" yaml:"profile"`
	References []ResolvedReference `json:"references,omitempty" yaml:"references"`
	BrandChart []SizeChartEntry    `json:"brandChart,omitempty" yaml:"brandChart"`
	Product    ProductAttributes   `json:"product" yaml:"product"`
}

// SizeShare is one entry of a size distribution.
type SizeShare struct {
	Label   string
	Percent int
}

// Distribution is an ordered label→percent mapping, highest share first.
type Distribution []SizeShare

// Total sums the percentages.
func (d Distribution) Total() int {
	total := 0
	for _, s := range d {
		total += s.Percent
	}
	return total
}

// Top returns the highest share, or false when empty.
func (d Distribution) Top() (SizeShare, bool) {
	if len(d) == 0 {
		return SizeShare{}, false
	}
	return d[0], true
}

// MarshalJSON emits an object whose key order matches the distribution order.
func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(s.Percent)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an ordered object back into a distribution.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("size percentages must be a JSON object")
	}
	out := Distribution{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var pct int
		if err := dec.Decode(&pct); err != nil {
			return err
		}
		out = append(out, SizeShare{Label: key, Percent: pct})
	}
	*d = out
	return nil
}

// Result is the engine output. It is built once per request and never mutated.
type Result struct {
	RecommendedSize string       `json:"recommended_size"`
	SizePercentages Distribution `json:"size_percentages"`
	Confidence      int          `json:"confidence"`
	FitMessage      string       `json:"fit_message"`
	DetailedReport  []string     `json:"detailed_report"`
	Warning         string       `json:"warning"`
	Category        Category     `json:"category,omitempty"`
	FitType         FitType      `json:"fit_type,omitempty"`
	PantSubtype     PantSubtype  `json:"pant_subtype,omitempty"`
	IsFallback      bool         `json:"is_fallback"`
	Failure         *Failure     `json:"error,omitempty"`
}

// OK reports whether the result carries a recommendation.
func (r Result) OK() bool {
	return r.Failure == nil
}
