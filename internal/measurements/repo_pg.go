package measurements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitable-backend/internal/sizing"
)

type PGRepo struct {
	DB *sql.DB
}

const measurementColumns = `user_id, height_cm, weight_kg, chest_cm, waist_cm, hips_cm, shoulder_cm,
  arm_length_cm, inseam_cm, hand_span_cm, garment_width_spans, gender, body_shape,
  reference_brand, reference_size, created_at, updated_at`

func (r *PGRepo) Upsert(ctx context.Context, m Measurements) (Measurements, error) {
	const query = `
INSERT INTO user_measurements (user_id, height_cm, weight_kg, chest_cm, waist_cm, hips_cm, shoulder_cm,
  arm_length_cm, inseam_cm, hand_span_cm, garment_width_spans, gender, body_shape,
  reference_brand, reference_size, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now(), now())
ON CONFLICT (user_id) DO UPDATE SET
  height_cm = EXCLUDED.height_cm,
  weight_kg = EXCLUDED.weight_kg,
  chest_cm = EXCLUDED.chest_cm,
  waist_cm = EXCLUDED.waist_cm,
  hips_cm = EXCLUDED.hips_cm,
  shoulder_cm = EXCLUDED.shoulder_cm,
  arm_length_cm = EXCLUDED.arm_length_cm,
  inseam_cm = EXCLUDED.inseam_cm,
  hand_span_cm = EXCLUDED.hand_span_cm,
  garment_width_spans = EXCLUDED.garment_width_spans,
  gender = EXCLUDED.gender,
  body_shape = EXCLUDED.body_shape,
  reference_brand = EXCLUDED.reference_brand,
  reference_size = EXCLUDED.reference_size,
  updated_at = now()
RETURNING created_at, updated_at`
	p := m.Profile
	err := r.DB.QueryRowContext(ctx, query,
		m.UserID,
		p.HeightCM,
		p.WeightKG,
		nullableFloat(p.ChestCM),
		nullableFloat(p.WaistCM),
		nullableFloat(p.HipsCM),
		nullableFloat(p.ShoulderCM),
		nullableFloat(p.ArmLengthCM),
		nullableFloat(p.InseamCM),
		nullableFloat(p.HandSpanCM),
		nullableFloat(p.GarmentWidthSpans),
		string(p.Gender),
		nullableString(string(p.BodyShape)),
		nullableString(p.ReferenceBrand),
		nullableString(p.ReferenceSize),
	).Scan(&m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return Measurements{}, fmt.Errorf("upsert measurements: %w", err)
	}
	return m, nil
}

func (r *PGRepo) Latest(ctx context.Context, userID string) (Measurements, error) {
	query := `
SELECT ` + measurementColumns + `
FROM user_measurements
WHERE user_id = $1
ORDER BY updated_at DESC
LIMIT 1`
	var (
		m                                         Measurements
		chest, waist, hips, shoulder, arm, inseam sql.NullFloat64
		handSpan, spans                           sql.NullFloat64
		gender                                    string
		bodyShape, referenceBrand, referenceSize  sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&m.UserID,
		&m.HeightCM,
		&m.WeightKG,
		&chest,
		&waist,
		&hips,
		&shoulder,
		&arm,
		&inseam,
		&handSpan,
		&spans,
		&gender,
		&bodyShape,
		&referenceBrand,
		&referenceSize,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Measurements{}, ErrNotFound
		}
		return Measurements{}, fmt.Errorf("load measurements: %w", err)
	}
	m.ChestCM = chest.Float64
	m.WaistCM = waist.Float64
	m.HipsCM = hips.Float64
	m.ShoulderCM = shoulder.Float64
	m.ArmLengthCM = arm.Float64
	m.InseamCM = inseam.Float64
	m.HandSpanCM = handSpan.Float64
	m.GarmentWidthSpans = spans.Float64
	m.Gender = sizing.NormalizeGender(gender)
	m.BodyShape = sizing.BodyShape(bodyShape.String)
	m.ReferenceBrand = referenceBrand.String
	m.ReferenceSize = referenceSize.String
	return m, nil
}

func (r *PGRepo) ClaimGuest(ctx context.Context, guestUserID, userID string) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE user_measurements SET user_id = $1, updated_at = now()
WHERE user_id = $2
  AND NOT EXISTS (SELECT 1 FROM user_measurements WHERE user_id = $1)`, userID, guestUserID)
	if err != nil {
		return 0, fmt.Errorf("claim measurements: %w", err)
	}
	moved, _ := res.RowsAffected()
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_measurements WHERE user_id = $1`, guestUserID); err != nil {
		return 0, fmt.Errorf("drop guest measurements: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return int(moved), nil
}

func nullableFloat(value float64) any {
	if value == 0 {
		return nil
	}
	return value
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
