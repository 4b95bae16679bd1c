package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fitable-backend/internal/shared/validation"
	"fitable-backend/internal/sizing"
)

//go:embed seeds.yaml
var defaultSeedsYAML []byte

type seedDocument struct {
	Brands []BrandSeed `yaml:"brands"`
}

// DefaultSeeds returns the brand charts bundled with the binary.
func DefaultSeeds() ([]BrandSeed, error) {
	return ParseSeeds(defaultSeedsYAML)
}

// LoadSeeds reads a seed document from disk.
func LoadSeeds(path string) ([]BrandSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seeds: %w", err)
	}
	return ParseSeeds(data)
}

// ParseSeeds decodes and validates a seed document.
func ParseSeeds(data []byte) ([]BrandSeed, error) {
	var doc seedDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seeds: %w", err)
	}
	for i, b := range doc.Brands {
		if err := validation.Struct(b); err != nil {
			return nil, fmt.Errorf("seed brand %d: %w", i, err)
		}
		for _, row := range b.Rows {
			if row.Category != sizing.CategoryTop && row.Category != sizing.CategoryBottom {
				return nil, fmt.Errorf("seed %s: row %q has unknown category %q", b.Name, row.SizeLabel, row.Category)
			}
		}
		if err := sizing.ValidateChart(b.Rows); err != nil {
			return nil, fmt.Errorf("seed %s: %w", b.Name, err)
		}
	}
	return doc.Brands, nil
}
