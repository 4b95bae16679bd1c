package references

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string][]Reference // userId -> references
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string][]Reference)}
}

func (r *MemoryRepo) Create(ctx context.Context, ref Reference) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.data[ref.UserID]) >= MaxPerUser {
		return ErrLimitReached
	}
	r.data[ref.UserID] = append(r.data[ref.UserID], ref)
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Reference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := append([]Reference(nil), r.data[userID]...)
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	refs := r.data[userID]
	for i := range refs {
		if refs[i].ID == id {
			r.data[userID] = append(refs[:i:i], refs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *MemoryRepo) ClaimGuest(ctx context.Context, guestUserID, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	refs := r.data[guestUserID]
	delete(r.data, guestUserID)
	for i := range refs {
		refs[i].UserID = userID
	}
	merged := append(r.data[userID], refs...)
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].CreatedAt.Before(merged[j].CreatedAt) })
	if len(merged) > MaxPerUser {
		merged = merged[len(merged)-MaxPerUser:]
	}
	r.data[userID] = merged
	return len(refs), nil
}
