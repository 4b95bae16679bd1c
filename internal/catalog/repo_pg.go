package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fitable-backend/internal/sizing"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) FindBrand(ctx context.Context, name string) (Brand, error) {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return Brand{}, ErrNotFound
	}
	row := r.DB.QueryRowContext(ctx, `
SELECT id, name, website_url
FROM brands
WHERE name ILIKE $1
   OR website_url ILIKE $1
   OR regexp_replace(lower(name), '[^a-z0-9]', '', 'g') = $2
ORDER BY length(name), id
LIMIT 1`, likePattern(query), compactName(query))
	b, err := scanBrand(row)
	if err != nil {
		return Brand{}, fmt.Errorf("find brand: %w", err)
	}
	return b, nil
}

func (r *PGRepo) GetBrand(ctx context.Context, id int64) (Brand, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT id, name, website_url FROM brands WHERE id = $1`, id)
	b, err := scanBrand(row)
	if err != nil {
		return Brand{}, fmt.Errorf("get brand: %w", err)
	}
	return b, nil
}

func (r *PGRepo) ListBrands(ctx context.Context) ([]Brand, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, website_url FROM brands ORDER BY lower(name)`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var out []Brand
	for rows.Next() {
		var (
			b   Brand
			url sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Name, &url); err != nil {
			return nil, err
		}
		b.WebsiteURL = url.String
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PGRepo) Chart(ctx context.Context, brandID int64, category sizing.Category) ([]sizing.SizeChartEntry, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT brand_id, category, gender, size_label,
  min_chest, max_chest, min_waist, max_waist, min_hips, max_hips, min_shoulder, max_shoulder
FROM size_catalogs
WHERE brand_id = $1 AND ($2 = '' OR category = $2)
ORDER BY id`, brandID, string(category))
	if err != nil {
		return nil, fmt.Errorf("load size chart: %w", err)
	}
	defer rows.Close()

	var out []sizing.SizeChartEntry
	for rows.Next() {
		var (
			e                            sizing.SizeChartEntry
			category, gender             string
			minChest, maxChest, minWaist sql.NullFloat64
			maxWaist, minHips, maxHips   sql.NullFloat64
			minShoulder, maxShoulder     sql.NullFloat64
		)
		if err := rows.Scan(&e.BrandID, &category, &gender, &e.SizeLabel,
			&minChest, &maxChest, &minWaist, &maxWaist, &minHips, &maxHips, &minShoulder, &maxShoulder); err != nil {
			return nil, err
		}
		e.Category = sizing.Category(category)
		e.Gender = sizing.Gender(gender)
		e.Chest = sizing.Range{Min: minChest.Float64, Max: maxChest.Float64}
		e.Waist = sizing.Range{Min: minWaist.Float64, Max: maxWaist.Float64}
		e.Hip = sizing.Range{Min: minHips.Float64, Max: maxHips.Float64}
		e.Shoulder = sizing.Range{Min: minShoulder.Float64, Max: maxShoulder.Float64}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *PGRepo) UpsertBrand(ctx context.Context, name, websiteURL string) (Brand, error) {
	b := Brand{Name: name, WebsiteURL: websiteURL}
	err := r.DB.QueryRowContext(ctx, `
INSERT INTO brands (name, website_url)
VALUES ($1, $2)
ON CONFLICT (name) DO UPDATE SET website_url = EXCLUDED.website_url
RETURNING id`, name, nullableString(websiteURL)).Scan(&b.ID)
	if err != nil {
		return Brand{}, fmt.Errorf("upsert brand: %w", err)
	}
	return b, nil
}

func (r *PGRepo) UpsertRows(ctx context.Context, brandID int64, rows []sizing.SizeChartEntry) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	const query = `
INSERT INTO size_catalogs (brand_id, category, gender, size_label,
  min_chest, max_chest, min_waist, max_waist, min_hips, max_hips, min_shoulder, max_shoulder)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (brand_id, category, gender, size_label) DO UPDATE SET
  min_chest = EXCLUDED.min_chest,
  max_chest = EXCLUDED.max_chest,
  min_waist = EXCLUDED.min_waist,
  max_waist = EXCLUDED.max_waist,
  min_hips = EXCLUDED.min_hips,
  max_hips = EXCLUDED.max_hips,
  min_shoulder = EXCLUDED.min_shoulder,
  max_shoulder = EXCLUDED.max_shoulder`
	for _, row := range rows {
		chestMin, chestMax := rangeArgs(row.Chest)
		waistMin, waistMax := rangeArgs(row.Waist)
		hipMin, hipMax := rangeArgs(row.Hip)
		shoulderMin, shoulderMax := rangeArgs(row.Shoulder)
		if _, err := tx.ExecContext(ctx, query, brandID, string(row.Category), string(row.Gender), row.SizeLabel,
			chestMin, chestMax, waistMin, waistMax, hipMin, hipMax, shoulderMin, shoulderMax); err != nil {
			return 0, fmt.Errorf("upsert chart row %s: %w", row.SizeLabel, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(rows), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBrand(row rowScanner) (Brand, error) {
	var (
		b   Brand
		url sql.NullString
	)
	if err := row.Scan(&b.ID, &b.Name, &url); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Brand{}, ErrNotFound
		}
		return Brand{}, err
	}
	b.WebsiteURL = url.String
	return b, nil
}

// rangeArgs stores absent ranges as NULL.
func rangeArgs(r sizing.Range) (any, any) {
	if !r.Present() {
		return nil, nil
	}
	return r.Min, r.Max
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
