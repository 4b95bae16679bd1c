package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"fitable-backend/internal/sizing"
)

type rowKey struct {
	brandID  int64
	category sizing.Category
	gender   sizing.Gender
	label    string
}

type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	brands map[int64]Brand
	rows   map[rowKey]sizing.SizeChartEntry
	order  []rowKey
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		brands: make(map[int64]Brand),
		rows:   make(map[rowKey]sizing.SizeChartEntry),
	}
}

func (r *MemoryRepo) FindBrand(ctx context.Context, name string) (Brand, error) {
	if err := ctx.Err(); err != nil {
		return Brand{}, err
	}
	query := strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	defer r.mu.RUnlock()
	var (
		best  Brand
		found bool
	)
	for _, b := range r.brands {
		if !brandMatches(b, query) {
			continue
		}
		if !found || len(b.Name) < len(best.Name) || (len(b.Name) == len(best.Name) && b.ID < best.ID) {
			best, found = b, true
		}
	}
	if !found {
		return Brand{}, ErrNotFound
	}
	return best, nil
}

func (r *MemoryRepo) GetBrand(ctx context.Context, id int64) (Brand, error) {
	if err := ctx.Err(); err != nil {
		return Brand{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.brands[id]
	if !ok {
		return Brand{}, ErrNotFound
	}
	return b, nil
}

func (r *MemoryRepo) ListBrands(ctx context.Context) ([]Brand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Brand, 0, len(r.brands))
	for _, b := range r.brands {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, nil
}

func (r *MemoryRepo) Chart(ctx context.Context, brandID int64, category sizing.Category) ([]sizing.SizeChartEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []sizing.SizeChartEntry
	for _, key := range r.order {
		if key.brandID != brandID || (category != "" && key.category != category) {
			continue
		}
		out = append(out, r.rows[key])
	}
	return out, nil
}

func (r *MemoryRepo) UpsertBrand(ctx context.Context, name, websiteURL string) (Brand, error) {
	if err := ctx.Err(); err != nil {
		return Brand{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, b := range r.brands {
		if b.Name == name {
			b.WebsiteURL = websiteURL
			r.brands[id] = b
			return b, nil
		}
	}
	r.nextID++
	b := Brand{ID: r.nextID, Name: name, WebsiteURL: websiteURL}
	r.brands[b.ID] = b
	return b, nil
}

func (r *MemoryRepo) UpsertRows(ctx context.Context, brandID int64, rows []sizing.SizeChartEntry) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.brands[brandID]; !ok {
		return 0, ErrNotFound
	}
	for _, row := range rows {
		row.BrandID = brandID
		key := rowKey{brandID: brandID, category: row.Category, gender: row.Gender, label: row.SizeLabel}
		if _, exists := r.rows[key]; !exists {
			r.order = append(r.order, key)
		}
		r.rows[key] = row
	}
	return len(rows), nil
}
