package sizing

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTablesYAML []byte

// Tables holds every constant the engine consults. A Tables value is built
// once by ParseTables and must not be modified afterwards.
type Tables struct {
	BMI               []BMIBand                                `yaml:"bmi"`
	FitAdjustmentCM   map[FitType]float64                      `yaml:"fitAdjustmentCm"`
	ChestFromShoulder float64                                  `yaml:"chestFromShoulder"`
	LegLengthRatio    float64                                  `yaml:"legLengthRatio"`
	Brands            []BrandBias                              `yaml:"brands"`
	BodyShapes        map[BodyShape]ShapeFactor                `yaml:"bodyShapes"`
	WeightBands       map[Gender][]WeightBand                  `yaml:"weightBands"`
	Universal         map[Gender]map[Category][]SizeChartEntry `yaml:"universal"`
	Keywords          KeywordTables                            `yaml:"keywords"`
}

// BMIBand covers BMI values below UpTo; the last band has UpTo == 0.
type BMIBand struct {
	UpTo       float64 `yaml:"upTo"`
	Label      string  `yaml:"label"`
	Factor     float64 `yaml:"factor"`
	WaistRatio float64 `yaml:"waistRatio"`
}

// BrandBias shifts the size index for brands known to run small or large.
type BrandBias struct {
	Names  []string `yaml:"names"`
	Factor float64  `yaml:"factor"`
	Note   string   `yaml:"note"`
}

type ShapeFactor struct {
	Top    float64 `yaml:"top"`
	Bottom float64 `yaml:"bottom"`
}

// WeightBand maps body weight below UpTo kilograms to a letter size.
type WeightBand struct {
	UpTo float64 `yaml:"upTo"`
	Size string  `yaml:"size"`
}

type KeywordTables struct {
	Category    []CategoryRule  `yaml:"category"`
	Fit         []FitRule       `yaml:"fit"`
	Ease        []EaseRule      `yaml:"ease"`
	Elasticity  ElasticityTable `yaml:"elasticity"`
	PantSubtype []PantRule      `yaml:"pantSubtype"`
	Feedback    []FeedbackRule  `yaml:"feedback"`
}

type CategoryRule struct {
	Category Category `yaml:"category"`
	FullBody bool     `yaml:"fullBody"`
	Keywords []string `yaml:"keywords"`
}

type FitRule struct {
	Fit      FitType  `yaml:"fit"`
	Keywords []string `yaml:"keywords"`
}

type EaseRule struct {
	CM       float64  `yaml:"cm"`
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

type ElasticityTable struct {
	StretchFibers []string `yaml:"stretchFibers"`
	HighStretch   []string `yaml:"highStretch"`
	Stretch       []string `yaml:"stretch"`
	Polyester     []string `yaml:"polyester"`
	Cotton        []string `yaml:"cotton"`
}

type PantRule struct {
	Subtype  PantSubtype `yaml:"subtype"`
	Keywords []string    `yaml:"keywords"`
}

type FeedbackRule struct {
	Step     int      `yaml:"step"`
	Label    string   `yaml:"label"`
	Keywords []string `yaml:"keywords"`
}

var (
	defaultTables    *Tables
	defaultTablesErr error
	defaultOnce      sync.Once
)

// DefaultTables returns the embedded tables, parsed on first use.
func DefaultTables() (*Tables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultTablesErr = ParseTables(defaultTablesYAML)
	})
	return defaultTables, defaultTablesErr
}

// MustDefaultTables is DefaultTables for callers that treat a broken embed as fatal.
func MustDefaultTables() *Tables {
	t, err := DefaultTables()
	if err != nil {
		panic(err)
	}
	return t
}

// LoadTables reads an override tables document from disk.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sizing tables: %w", err)
	}
	return ParseTables(data)
}

// ParseTables decodes, validates and prepares a tables document.
func ParseTables(data []byte) (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode sizing tables: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	t.prepare()
	return &t, nil
}

func (t *Tables) validate() error {
	if len(t.BMI) == 0 {
		return errors.New("sizing tables: bmi bands required")
	}
	for i, b := range t.BMI[:len(t.BMI)-1] {
		if b.UpTo <= 0 {
			return fmt.Errorf("sizing tables: bmi band %d needs an upper bound", i)
		}
	}
	if len(t.Universal) == 0 {
		return errors.New("sizing tables: universal charts required")
	}
	for gender, charts := range t.Universal {
		for category, rows := range charts {
			if err := ValidateChart(rows); err != nil {
				return fmt.Errorf("sizing tables: universal %s/%s: %w", gender, category, err)
			}
		}
	}
	if len(t.Keywords.Category) == 0 {
		return errors.New("sizing tables: category keywords required")
	}
	return nil
}

// prepare folds every keyword once so matching never re-normalises table data,
// and stamps universal rows with their gender and category.
func (t *Tables) prepare() {
	for i := range t.Brands {
		t.Brands[i].Names = foldAll(t.Brands[i].Names)
	}
	kw := &t.Keywords
	for i := range kw.Category {
		kw.Category[i].Keywords = foldAll(kw.Category[i].Keywords)
	}
	for i := range kw.Fit {
		kw.Fit[i].Keywords = foldAll(kw.Fit[i].Keywords)
	}
	for i := range kw.Ease {
		kw.Ease[i].Keywords = foldAll(kw.Ease[i].Keywords)
	}
	for i := range kw.PantSubtype {
		kw.PantSubtype[i].Keywords = foldAll(kw.PantSubtype[i].Keywords)
	}
	for i := range kw.Feedback {
		kw.Feedback[i].Keywords = foldAll(kw.Feedback[i].Keywords)
	}
	kw.Elasticity.StretchFibers = foldAll(kw.Elasticity.StretchFibers)
	kw.Elasticity.HighStretch = foldAll(kw.Elasticity.HighStretch)
	kw.Elasticity.Stretch = foldAll(kw.Elasticity.Stretch)
	kw.Elasticity.Polyester = foldAll(kw.Elasticity.Polyester)
	kw.Elasticity.Cotton = foldAll(kw.Elasticity.Cotton)

	for gender, charts := range t.Universal {
		for category, rows := range charts {
			for i := range rows {
				rows[i].Gender = gender
				rows[i].Category = category
			}
			sorted, _ := SortChart(rows)
			charts[category] = sorted
		}
	}
	for gender, bands := range t.WeightBands {
		sort.SliceStable(bands, func(i, j int) bool {
			return bandLimit(bands[i].UpTo) < bandLimit(bands[j].UpTo)
		})
		t.WeightBands[gender] = bands
	}
}

func foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if f := foldKeyword(s); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func bandLimit(upTo float64) float64 {
	if upTo <= 0 {
		return 1 << 30
	}
	return upTo
}

// bmiBand returns the band for a BMI value; ok is false when BMI is unknown.
func (t *Tables) bmiBand(bmi float64) (BMIBand, bool) {
	if bmi <= 0 {
		return BMIBand{}, false
	}
	for _, b := range t.BMI {
		if b.UpTo <= 0 || bmi < b.UpTo {
			return b, true
		}
	}
	return t.BMI[len(t.BMI)-1], true
}

// brandBias finds the fit bias for a product brand.
func (t *Tables) brandBias(brand string) (BrandBias, bool) {
	idx := newTextIndex(NormalizeBrand(brand))
	if idx.empty() {
		return BrandBias{}, false
	}
	for _, b := range t.Brands {
		if _, ok := idx.first(b.Names); ok {
			return b, true
		}
	}
	return BrandBias{}, false
}

func (t *Tables) universalChart(g Gender, c Category) ([]SizeChartEntry, bool) {
	charts, ok := t.Universal[g]
	if !ok {
		charts, ok = t.Universal[GenderUnisex]
		if !ok {
			return nil, false
		}
	}
	rows, ok := charts[c]
	if !ok || len(rows) == 0 {
		return nil, false
	}
	return rows, true
}

func (t *Tables) weightBands(g Gender) []WeightBand {
	if bands, ok := t.WeightBands[g]; ok {
		return bands
	}
	return t.WeightBands[GenderUnisex]
}
