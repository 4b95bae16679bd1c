package measurements

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]Measurements
	now  func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: make(map[string]Measurements), now: time.Now}
}

func (r *MemoryRepo) Upsert(ctx context.Context, m Measurements) (Measurements, error) {
	if err := ctx.Err(); err != nil {
		return Measurements{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	if existing, ok := r.rows[m.UserID]; ok {
		m.CreatedAt = existing.CreatedAt
	} else {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	r.rows[m.UserID] = m
	return m, nil
}

func (r *MemoryRepo) Latest(ctx context.Context, userID string) (Measurements, error) {
	if err := ctx.Err(); err != nil {
		return Measurements{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.rows[userID]
	if !ok {
		return Measurements{}, ErrNotFound
	}
	return m, nil
}

func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	guest, ok := r.rows[guestUserID]
	if !ok {
		return 0, nil
	}
	delete(r.rows, guestUserID)
	if _, exists := r.rows[userID]; exists {
		return 0, nil
	}
	guest.UserID = userID
	r.rows[userID] = guest
	return 1, nil
}
