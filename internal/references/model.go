package references

import (
	"strings"
	"time"

	"fitable-backend/internal/sizing"
)

// Reference is a garment the user confirmed fits them.
type Reference struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Brand     string          `json:"brand"`
	SizeLabel string          `json:"sizeLabel"`
	Category  sizing.Category `json:"category,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Garment returns the reference as engine input.
func (r Reference) Garment() sizing.ReferenceGarment {
	return sizing.ReferenceGarment{Brand: r.Brand, SizeLabel: r.SizeLabel, Category: r.Category}
}

type CreateRequest struct {
	Brand     string `json:"brand" validate:"required,max=100"`
	SizeLabel string `json:"sizeLabel" validate:"required,max=32"`
	Category  string `json:"category" validate:"omitempty,oneof=top bottom"`
}

func (r CreateRequest) normalized() CreateRequest {
	return CreateRequest{
		Brand:     strings.TrimSpace(r.Brand),
		SizeLabel: strings.TrimSpace(r.SizeLabel),
		Category:  strings.ToLower(strings.TrimSpace(r.Category)),
	}
}
