// Package product fetches scraped product attributes from the external
// scraper service.
package product

import (
	"context"
	"errors"

	"fitable-backend/internal/sizing"
)

// ErrUnavailable marks a product that could not be fetched. The scraper may
// be down, slow, or rejected by the circuit breaker.
var ErrUnavailable = errors.New("product source unavailable")

// Source provides ProductAttributes for a product page URL.
type Source interface {
	Fetch(ctx context.Context, url string) (sizing.ProductAttributes, error)
}
