package account

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"fitable-backend/internal/history"
	"fitable-backend/internal/measurements"
	"fitable-backend/internal/references"
	"fitable-backend/internal/shared/telemetry"
	"fitable-backend/internal/shared/util"
)

type Service struct {
	Measurements measurements.Repo
	References   references.Repo
	History      history.Repo
}

type ClaimResult struct {
	MigratedMeasurements int `json:"migratedMeasurements"`
	MigratedReferences   int `json:"migratedReferences"`
	MigratedHistory      int `json:"migratedHistory"`
}

func NewService(measurementRepo measurements.Repo, referenceRepo references.Repo, historyRepo history.Repo) *Service {
	return &Service{Measurements: measurementRepo, References: referenceRepo, History: historyRepo}
}

// ClaimGuest moves everything a guest saved to the signed-in user. An existing
// profile on the user wins over the guest's; references and history merge.
func (s *Service) ClaimGuest(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	if strings.TrimSpace(guestUserID) == "" || strings.TrimSpace(authedUserID) == "" {
		return ClaimResult{}, errors.New("guestUserID and authedUserID are required")
	}
	if s.Measurements == nil || s.References == nil || s.History == nil {
		return ClaimResult{}, errors.New("account service not configured")
	}

	var (
		result ClaimResult
		err    error
	)
	if db := sharedDB(s); db != nil {
		result, err = claimWithTx(ctx, db, guestUserID, authedUserID)
	} else {
		result, err = s.claimEach(ctx, guestUserID, authedUserID)
	}
	if err != nil {
		return ClaimResult{}, err
	}
	telemetry.Info("account.claimed_guest", map[string]any{
		"user":         util.HashUserKey(authedUserID),
		"measurements": result.MigratedMeasurements,
		"references":   result.MigratedReferences,
		"history":      result.MigratedHistory,
	})
	return result, nil
}

// sharedDB returns the database when every repo is Postgres-backed on the same pool.
func sharedDB(s *Service) *sql.DB {
	m, ok := s.Measurements.(*measurements.PGRepo)
	if !ok || m == nil || m.DB == nil {
		return nil
	}
	r, ok := s.References.(*references.PGRepo)
	if !ok || r == nil || r.DB != m.DB {
		return nil
	}
	h, ok := s.History.(*history.PGRepo)
	if !ok || h == nil || h.DB != m.DB {
		return nil
	}
	return m.DB
}

func (s *Service) claimEach(ctx context.Context, guestUserID, authedUserID string) (ClaimResult, error) {
	var (
		result ClaimResult
		err    error
	)
	if result.MigratedMeasurements, err = s.Measurements.ClaimGuest(ctx, guestUserID, authedUserID); err != nil {
		return ClaimResult{}, err
	}
	if result.MigratedReferences, err = s.References.ClaimGuest(ctx, guestUserID, authedUserID); err != nil {
		return ClaimResult{}, err
	}
	if result.MigratedHistory, err = s.History.ClaimGuest(ctx, guestUserID, authedUserID); err != nil {
		return ClaimResult{}, err
	}
	return result, nil
}

func claimWithTx(ctx context.Context, db *sql.DB, guestUserID, authedUserID string) (ClaimResult, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return ClaimResult{}, err
	}
	defer tx.Rollback()

	profileRes, err := tx.ExecContext(ctx, `
UPDATE user_measurements SET user_id = $1, updated_at = now()
WHERE user_id = $2
  AND NOT EXISTS (SELECT 1 FROM user_measurements WHERE user_id = $1)`, authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	profileCount, _ := profileRes.RowsAffected()
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_measurements WHERE user_id = $1`, guestUserID); err != nil {
		return ClaimResult{}, err
	}

	refCount, err := references.ClaimGuestTx(ctx, tx, guestUserID, authedUserID)
	if err != nil {
		return ClaimResult{}, err
	}

	historyRes, err := tx.ExecContext(ctx, `UPDATE recommendation_history SET user_id = $1 WHERE user_id = $2`, authedUserID, guestUserID)
	if err != nil {
		return ClaimResult{}, err
	}
	historyCount, _ := historyRes.RowsAffected()

	if err := tx.Commit(); err != nil {
		return ClaimResult{}, err
	}
	return ClaimResult{
		MigratedMeasurements: int(profileCount),
		MigratedReferences:   refCount,
		MigratedHistory:      int(historyCount),
	}, nil
}
