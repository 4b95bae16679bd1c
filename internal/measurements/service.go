package measurements

import (
	"context"
	"errors"
	"strings"

	"fitable-backend/internal/shared/validation"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Update validates and stores the user's profile, replacing any previous one.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (Measurements, error) {
	if s == nil || s.Repo == nil {
		return Measurements{}, errors.New("measurements service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Measurements{}, errors.New("user id is required")
	}
	if err := validation.Struct(req); err != nil {
		return Measurements{}, err
	}
	return s.Repo.Upsert(ctx, Measurements{UserID: userID, Profile: req.Profile()})
}

// Latest returns the user's current profile or ErrNotFound.
func (s *Service) Latest(ctx context.Context, userID string) (Measurements, error) {
	if s == nil || s.Repo == nil {
		return Measurements{}, errors.New("measurements service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Measurements{}, errors.New("user id is required")
	}
	return s.Repo.Latest(ctx, userID)
}
