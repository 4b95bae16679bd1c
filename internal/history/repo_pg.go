package history

import (
	"context"
	"database/sql"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, item Item) error {
	const query = `
INSERT INTO recommendation_history (id, user_id, product_name, brand, product_url, image_url, price,
  recommended_size, confidence_score, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.DB.ExecContext(ctx, query,
		item.ID,
		item.UserID,
		item.ProductName,
		nullableString(item.Brand),
		nullableString(item.ProductURL),
		nullableString(item.ImageURL),
		nullableString(item.Price),
		item.RecommendedSize,
		item.ConfidenceScore,
		item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// ListByUser lists history ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Item, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, product_name, brand, product_url, image_url, price, recommended_size, confidence_score, created_at
FROM recommendation_history
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var (
			item                               Item
			brand, productURL, imageURL, price sql.NullString
		)
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.ProductName,
			&brand,
			&productURL,
			&imageURL,
			&price,
			&item.RecommendedSize,
			&item.ConfidenceScore,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		item.Brand = brand.String
		item.ProductURL = productURL.String
		item.ImageURL = imageURL.String
		item.Price = price.String
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM recommendation_history WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete history: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, userID string) (int, error) {
	res, err := r.DB.ExecContext(ctx, `UPDATE recommendation_history SET user_id = $1 WHERE user_id = $2`, userID, guestUserID)
	if err != nil {
		return 0, fmt.Errorf("claim history: %w", err)
	}
	moved, _ := res.RowsAffected()
	return int(moved), nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
