package measurements

import (
	"time"

	"fitable-backend/internal/sizing"
)

// Measurements is a user's stored body profile. One row per user.
type Measurements struct {
	UserID string `json:"userId"`
	sizing.Profile
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateRequest is the body of PUT /measurements. Zero means "not provided".
type UpdateRequest struct {
	Gender            string  `json:"gender" validate:"required,oneof=male female unisex"`
	HeightCM          float64 `json:"heightCm" validate:"gte=0,lte=260"`
	WeightKG          float64 `json:"weightKg" validate:"gte=0,lte=400"`
	ChestCM           float64 `json:"chestCm" validate:"gte=0,lte=250"`
	WaistCM           float64 `json:"waistCm" validate:"gte=0,lte=250"`
	HipsCM            float64 `json:"hipsCm" validate:"gte=0,lte=250"`
	ShoulderCM        float64 `json:"shoulderCm" validate:"gte=0,lte=100"`
	ArmLengthCM       float64 `json:"armLengthCm" validate:"gte=0,lte=120"`
	InseamCM          float64 `json:"inseamCm" validate:"gte=0,lte=130"`
	HandSpanCM        float64 `json:"handSpanCm" validate:"gte=0,lte=40"`
	GarmentWidthSpans float64 `json:"garmentWidthSpans" validate:"gte=0,lte=20"`
	BodyShape         string  `json:"bodyShape" validate:"omitempty,oneof=rectangular triangle inverted_triangle oval hourglass"`
	ReferenceBrand    string  `json:"referenceBrand" validate:"max=100"`
	ReferenceSize     string  `json:"referenceSizeLabel" validate:"max=40"`
}

// Profile converts the request into the engine's profile type.
func (r UpdateRequest) Profile() sizing.Profile {
	return sizing.Profile{
		HeightCM:          r.HeightCM,
		WeightKG:          r.WeightKG,
		ChestCM:           r.ChestCM,
		WaistCM:           r.WaistCM,
		HipsCM:            r.HipsCM,
		ShoulderCM:        r.ShoulderCM,
		ArmLengthCM:       r.ArmLengthCM,
		InseamCM:          r.InseamCM,
		HandSpanCM:        r.HandSpanCM,
		GarmentWidthSpans: r.GarmentWidthSpans,
		Gender:            sizing.NormalizeGender(r.Gender),
		BodyShape:         sizing.BodyShape(r.BodyShape),
		ReferenceBrand:    r.ReferenceBrand,
		ReferenceSize:     r.ReferenceSize,
	}
}
