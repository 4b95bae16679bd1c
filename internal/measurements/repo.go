package measurements

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "measurements not found" }

type Repo interface {
	// Upsert replaces the user's profile, keeping a single row per user.
	Upsert(ctx context.Context, m Measurements) (Measurements, error)
	// Latest returns the most recently updated profile for the user.
	Latest(ctx context.Context, userID string) (Measurements, error)
	// ClaimGuest moves a guest profile to userID unless userID already has one.
	ClaimGuest(ctx context.Context, guestUserID, userID string) (int, error)
}
