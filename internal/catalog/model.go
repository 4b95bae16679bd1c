package catalog

import "fitable-backend/internal/sizing"

// Brand is a retailer whose size charts the catalog stores.
type Brand struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	WebsiteURL string `json:"websiteUrl,omitempty"`
}

// BrandSeed is one brand and its chart rows as listed in a seed document.
type BrandSeed struct {
	Name       string                  `yaml:"name" validate:"required"`
	WebsiteURL string                  `yaml:"websiteUrl"`
	Rows       []sizing.SizeChartEntry `yaml:"rows" validate:"required,min=1"`
}

// SeedReport summarises a seeding run.
type SeedReport struct {
	Brands int `json:"brands"`
	Rows   int `json:"rows"`
}
