package references

import (
	"context"
	"database/sql"
	"fmt"

	"fitable-backend/internal/sizing"
)

type PGRepo struct {
	DB *sql.DB
}

// Create takes a per-user advisory lock so concurrent inserts cannot pass the cap.
func (r *PGRepo) Create(ctx context.Context, ref Reference) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reference insert: %w", err)
	}
	defer tx.Rollback()

	if err := lockUser(ctx, tx, ref.UserID); err != nil {
		return err
	}
	var count int
	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM user_references WHERE user_id = $1`, ref.UserID).Scan(&count); err != nil {
		return fmt.Errorf("count references: %w", err)
	}
	if count >= MaxPerUser {
		return ErrLimitReached
	}

	const query = `
INSERT INTO user_references (id, user_id, brand, size_label, category, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	var category any
	if ref.Category != "" {
		category = string(ref.Category)
	}
	if _, err := tx.ExecContext(ctx, query, ref.ID, ref.UserID, ref.Brand, ref.SizeLabel, category, ref.CreatedAt); err != nil {
		return fmt.Errorf("insert reference: %w", err)
	}
	return tx.Commit()
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Reference, error) {
	const query = `
SELECT id, user_id, brand, size_label, category, created_at
FROM user_references
WHERE user_id = $1
ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	defer rows.Close()

	var out []Reference
	for rows.Next() {
		var (
			ref      Reference
			category sql.NullString
		)
		if err := rows.Scan(&ref.ID, &ref.UserID, &ref.Brand, &ref.SizeLabel, &category, &ref.CreatedAt); err != nil {
			return nil, err
		}
		ref.Category = sizing.Category(category.String)
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM user_references WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete reference: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, userID string) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin reference claim: %w", err)
	}
	defer tx.Rollback()

	moved, err := ClaimGuestTx(ctx, tx, guestUserID, userID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return moved, nil
}

// ClaimGuestTx moves the guest's rows to the user inside tx and drops the
// oldest rows beyond MaxPerUser.
func ClaimGuestTx(ctx context.Context, tx *sql.Tx, guestUserID, userID string) (int, error) {
	if err := lockUser(ctx, tx, userID); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `UPDATE user_references SET user_id = $1 WHERE user_id = $2`, userID, guestUserID)
	if err != nil {
		return 0, fmt.Errorf("claim references: %w", err)
	}
	moved, _ := res.RowsAffected()

	const trim = `
DELETE FROM user_references
WHERE id IN (
  SELECT id FROM user_references
  WHERE user_id = $1
  ORDER BY created_at DESC, id DESC
  OFFSET $2
)`
	if _, err := tx.ExecContext(ctx, trim, userID, MaxPerUser); err != nil {
		return 0, fmt.Errorf("trim references: %w", err)
	}
	return int(moved), nil
}

func lockUser(ctx context.Context, tx *sql.Tx, userID string) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext('user_references:' || $1))`, userID); err != nil {
		return fmt.Errorf("lock references: %w", err)
	}
	return nil
}
