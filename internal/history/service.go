package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"fitable-backend/internal/shared/validation"
)

type Service struct {
	Repo Repo
	now  func() time.Time
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo, now: time.Now}
}

func (s *Service) Save(ctx context.Context, userID string, req CreateRequest) (Item, error) {
	if s == nil || s.Repo == nil {
		return Item{}, errors.New("history service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Item{}, errors.New("user id is required")
	}
	req.ProductName = strings.TrimSpace(req.ProductName)
	req.RecommendedSize = strings.TrimSpace(req.RecommendedSize)
	if err := validation.Struct(req); err != nil {
		return Item{}, err
	}
	item := Item{
		ID:              uuid.NewString(),
		UserID:          userID,
		ProductName:     req.ProductName,
		Brand:           strings.TrimSpace(req.Brand),
		ProductURL:      req.ProductURL,
		ImageURL:        req.ImageURL,
		Price:           strings.TrimSpace(req.Price),
		RecommendedSize: req.RecommendedSize,
		ConfidenceScore: req.ConfidenceScore,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, item); err != nil {
		return Item{}, err
	}
	return item, nil
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Item, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("history service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if s == nil || s.Repo == nil {
		return errors.New("history service not configured")
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.Repo.Delete(ctx, userID, id)
}
