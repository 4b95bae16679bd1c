package references

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitable-backend/internal/shared/validation"
	"fitable-backend/internal/sizing"
)

type Service struct {
	Repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (Reference, error) {
	if s == nil || s.Repo == nil {
		return Reference{}, errors.New("references service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Reference{}, errors.New("user id is required")
	}
	req = req.normalized()
	if err := validation.Struct(req); err != nil {
		return Reference{}, err
	}
	ref := Reference{
		ID:        uuid.NewString(),
		UserID:    userID,
		Brand:     req.Brand,
		SizeLabel: req.SizeLabel,
		Category:  sizing.Category(req.Category),
		CreatedAt: s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, ref); err != nil {
		return Reference{}, err
	}
	return ref, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Reference, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("references service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Garments returns the user's references in engine form.
func (s *Service) Garments(ctx context.Context, userID string) ([]sizing.ReferenceGarment, error) {
	refs, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]sizing.ReferenceGarment, len(refs))
	for i, ref := range refs {
		out[i] = ref.Garment()
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if s == nil || s.Repo == nil {
		return errors.New("references service not configured")
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, userID, id)
}
