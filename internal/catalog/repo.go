package catalog

import (
	"context"

	"fitable-backend/internal/sizing"
)

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "brand not found" }

type Repo interface {
	// FindBrand matches a normalised brand name against stored names and
	// websites, case-insensitively and by substring.
	FindBrand(ctx context.Context, name string) (Brand, error)
	GetBrand(ctx context.Context, id int64) (Brand, error)
	ListBrands(ctx context.Context) ([]Brand, error)
	// Chart returns the brand's rows; an empty category returns every category.
	Chart(ctx context.Context, brandID int64, category sizing.Category) ([]sizing.SizeChartEntry, error)
	UpsertBrand(ctx context.Context, name, websiteURL string) (Brand, error)
	// UpsertRows writes rows keyed by (brand, category, gender, size label).
	UpsertRows(ctx context.Context, brandID int64, rows []sizing.SizeChartEntry) (int, error)
}
