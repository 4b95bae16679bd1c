package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitable-backend/internal/shared/telemetry"
	"fitable-backend/internal/sizing"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// BrandChart finds the brand behind a product's brand text and returns all
// of its chart rows. ErrNotFound means the catalog has no such brand.
func (s *Service) BrandChart(ctx context.Context, brand string) (Brand, []sizing.SizeChartEntry, error) {
	if s == nil || s.Repo == nil {
		return Brand{}, nil, errors.New("catalog service not configured")
	}
	name := sizing.NormalizeBrand(brand)
	if name == "" {
		return Brand{}, nil, ErrNotFound
	}
	b, err := s.Repo.FindBrand(ctx, name)
	if err != nil {
		return Brand{}, nil, err
	}
	rows, err := s.Repo.Chart(ctx, b.ID, "")
	if err != nil {
		return Brand{}, nil, err
	}
	return b, rows, nil
}

func (s *Service) ListBrands(ctx context.Context) ([]Brand, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("catalog service not configured")
	}
	return s.Repo.ListBrands(ctx)
}

// Chart returns one brand's rows, optionally narrowed to a category.
func (s *Service) Chart(ctx context.Context, brandID int64, category sizing.Category) (Brand, []sizing.SizeChartEntry, error) {
	if s == nil || s.Repo == nil {
		return Brand{}, nil, errors.New("catalog service not configured")
	}
	b, err := s.Repo.GetBrand(ctx, brandID)
	if err != nil {
		return Brand{}, nil, err
	}
	rows, err := s.Repo.Chart(ctx, brandID, category)
	if err != nil {
		return Brand{}, nil, err
	}
	return b, rows, nil
}

// ResolveReferences maps each reference garment to the chart row it names.
// Garments whose brand or label is unknown come back with Found false.
func (s *Service) ResolveReferences(ctx context.Context, gender sizing.Gender, refs []sizing.ReferenceGarment) ([]sizing.ResolvedReference, error) {
	out := make([]sizing.ResolvedReference, 0, len(refs))
	charts := make(map[string][]sizing.SizeChartEntry)
	for _, ref := range refs {
		key := sizing.NormalizeBrand(ref.Brand)
		rows, seen := charts[key]
		if !seen {
			_, loaded, err := s.BrandChart(ctx, ref.Brand)
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("resolve reference %s: %w", ref.Brand, err)
			}
			rows = loaded
			charts[key] = rows
		}
		entry, found := matchReference(rows, gender, ref)
		out = append(out, sizing.ResolvedReference{Garment: ref, Entry: entry, Found: found})
	}
	return out, nil
}

// matchReference prefers rows for the user's gender, then unisex rows. Labels
// match exactly or, for letter sizes, by leading letter ("M" finds "M (38)").
func matchReference(rows []sizing.SizeChartEntry, gender sizing.Gender, ref sizing.ReferenceGarment) (sizing.SizeChartEntry, bool) {
	label := strings.ToUpper(strings.TrimSpace(ref.SizeLabel))
	if label == "" {
		return sizing.SizeChartEntry{}, false
	}
	refIdx, refLetter := -1, sizing.IsLetterLabel(label)
	if refLetter {
		refIdx, _ = sizing.OrderIndex(label)
	}
	var best sizing.SizeChartEntry
	bestRank := 0
	for _, row := range rows {
		if ref.Category != "" && row.Category != ref.Category {
			continue
		}
		rank := genderRank(row.Gender, gender)
		if rank == 0 {
			continue
		}
		rowLabel := strings.ToUpper(strings.TrimSpace(row.SizeLabel))
		switch {
		case rowLabel == label:
			rank += 2
		case refLetter && sizing.IsLetterLabel(rowLabel):
			if idx, _ := sizing.OrderIndex(rowLabel); idx != refIdx {
				continue
			}
		default:
			continue
		}
		if rank > bestRank {
			best, bestRank = row, rank
		}
	}
	return best, bestRank > 0
}

func genderRank(rowGender, want sizing.Gender) int {
	raw := strings.ToLower(strings.TrimSpace(string(rowGender)))
	switch {
	case raw == "" || raw == "unisex" || raw == "all":
		return 1
	case sizing.NormalizeGender(raw) == sizing.GenderUnisex:
		return 0
	case sizing.NormalizeGender(raw) == want:
		return 2
	default:
		return 0
	}
}

// Seed upserts every brand and row in seeds.
func (s *Service) Seed(ctx context.Context, seeds []BrandSeed) (SeedReport, error) {
	if s == nil || s.Repo == nil {
		return SeedReport{}, errors.New("catalog service not configured")
	}
	var report SeedReport
	for _, seed := range seeds {
		b, err := s.Repo.UpsertBrand(ctx, seed.Name, seed.WebsiteURL)
		if err != nil {
			return report, err
		}
		n, err := s.Repo.UpsertRows(ctx, b.ID, seed.Rows)
		if err != nil {
			return report, err
		}
		report.Brands++
		report.Rows += n
	}
	telemetry.Info("catalog.seeded", map[string]any{"brands": report.Brands, "rows": report.Rows})
	return report, nil
}

// EnsureSeeded loads the bundled charts when the catalog holds no brands.
func (s *Service) EnsureSeeded(ctx context.Context) (SeedReport, error) {
	brands, err := s.ListBrands(ctx)
	if err != nil {
		return SeedReport{}, err
	}
	if len(brands) > 0 {
		return SeedReport{}, nil
	}
	seeds, err := DefaultSeeds()
	if err != nil {
		return SeedReport{}, err
	}
	return s.Seed(ctx, seeds)
}
