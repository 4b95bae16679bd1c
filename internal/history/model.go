package history

import "time"

// Item is a recommendation the user chose to keep.
type Item struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	ProductName     string    `json:"productName"`
	Brand           string    `json:"brand,omitempty"`
	ProductURL      string    `json:"productUrl,omitempty"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Price           string    `json:"price,omitempty"`
	RecommendedSize string    `json:"recommendedSize"`
	ConfidenceScore int       `json:"confidenceScore"`
	CreatedAt       time.Time `json:"createdAt"`
}

type CreateRequest struct {
	ProductName     string `json:"productName" validate:"required,max=300"`
	Brand           string `json:"brand" validate:"max=100"`
	ProductURL      string `json:"productUrl" validate:"omitempty,http_url"`
	ImageURL        string `json:"imageUrl" validate:"omitempty,http_url"`
	Price           string `json:"price" validate:"max=50"`
	RecommendedSize string `json:"recommendedSize" validate:"required,max=32"`
	ConfidenceScore int    `json:"confidenceScore" validate:"gte=0,lte=100"`
}
