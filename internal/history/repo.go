package history

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "history item not found" }

type Repo interface {
	Create(ctx context.Context, item Item) error
	// ListByUser returns items newest first, honoring limit/offset.
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Item, error)
	Delete(ctx context.Context, userID, id string) error
	ClaimGuest(ctx context.Context, guestUserID, userID string) (int, error)
}
