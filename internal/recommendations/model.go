package recommendations

import "fitable-backend/internal/sizing"

// Request asks for a size for a product page or an already scraped product.
type Request struct {
	URL     string                    `json:"url" validate:"omitempty,http_url,max=2048"`
	Product *sizing.ProductAttributes `json:"product" validate:"-"`
}

// Outcome pairs the product that was sized with the engine's result.
type Outcome struct {
	Product        sizing.ProductAttributes `json:"product"`
	Recommendation sizing.Result            `json:"recommendation"`
}
