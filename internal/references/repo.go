package references

import (
	"context"
	"errors"
)

// MaxPerUser bounds how many reference garments feed one recommendation.
const MaxPerUser = 20

var ErrNotFound = errNotFound{}

var ErrLimitReached = errors.New("reference limit reached")

type errNotFound struct{}

func (errNotFound) Error() string { return "reference not found" }

type Repo interface {
	// Create returns ErrLimitReached once the user holds MaxPerUser references.
	Create(ctx context.Context, ref Reference) error
	// ListByUser returns the user's references, oldest first.
	ListByUser(ctx context.Context, userID string) ([]Reference, error)
	Delete(ctx context.Context, userID, id string) error
	// ClaimGuest merges the guest's references into the user's, keeping the
	// newest MaxPerUser.
	ClaimGuest(ctx context.Context, guestUserID, userID string) (int, error)
}
