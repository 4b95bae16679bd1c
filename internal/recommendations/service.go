package recommendations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"fitable-backend/internal/catalog"
	"fitable-backend/internal/measurements"
	"fitable-backend/internal/product"
	"fitable-backend/internal/shared/metrics"
	"fitable-backend/internal/shared/telemetry"
	"fitable-backend/internal/shared/util"
	"fitable-backend/internal/shared/validation"
	"fitable-backend/internal/sizing"
)

type ProfileReader interface {
	Latest(ctx context.Context, userID string) (measurements.Measurements, error)
}

type ReferenceReader interface {
	Garments(ctx context.Context, userID string) ([]sizing.ReferenceGarment, error)
}

type ChartReader interface {
	BrandChart(ctx context.Context, brand string) (catalog.Brand, []sizing.SizeChartEntry, error)
	ResolveReferences(ctx context.Context, gender sizing.Gender, refs []sizing.ReferenceGarment) ([]sizing.ResolvedReference, error)
}

type Service struct {
	Profiles   ProfileReader
	References ReferenceReader
	Charts     ChartReader
	// Products may be nil when no scraper is configured; requests must then
	// carry the product inline.
	Products product.Source
	Engine   *sizing.Engine
}

// Recommend gathers every input for userID, then runs the engine once.
// Engine failures come back inside the outcome; the error is reserved for
// storage failures and invalid requests.
func (s *Service) Recommend(ctx context.Context, userID string, req Request) (Outcome, error) {
	if s == nil || s.Profiles == nil || s.References == nil || s.Charts == nil || s.Engine == nil {
		return Outcome{}, errors.New("recommendations service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Outcome{}, errors.New("user id is required")
	}
	req.URL = strings.TrimSpace(req.URL)
	if err := validateRequest(req); err != nil {
		return Outcome{}, err
	}

	var (
		profile  *sizing.Profile
		garments []sizing.ReferenceGarment
		attrs    sizing.ProductAttributes
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.Profiles.Latest(gctx, userID)
		if errors.Is(err, measurements.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load measurements: %w", err)
		}
		profile = &m.Profile
		return nil
	})
	g.Go(func() error {
		refs, err := s.References.Garments(gctx, userID)
		if err != nil {
			return fmt.Errorf("load references: %w", err)
		}
		garments = refs
		return nil
	})
	g.Go(func() error {
		attrs = s.product(gctx, req)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}

	in := sizing.Input{Profile: profile, Product: attrs}
	// Chart and reference lookups only matter once the engine can get past
	// its early exits.
	if profile != nil && strings.TrimSpace(attrs.Error) == "" {
		garments = withProfileReference(garments, *profile)
		_, rows, err := s.Charts.BrandChart(ctx, attrs.Brand)
		if err != nil && !errors.Is(err, catalog.ErrNotFound) {
			return Outcome{}, fmt.Errorf("load size chart: %w", err)
		}
		in.BrandChart = rows
		if len(garments) > 0 {
			resolved, err := s.Charts.ResolveReferences(ctx, sizing.NormalizeGender(string(profile.Gender)), garments)
			if err != nil {
				return Outcome{}, err
			}
			in.References = resolved
		}
	}

	start := time.Now()
	res := s.Engine.Recommend(in)
	took := time.Since(start)
	s.observe(ctx, userID, in, res, took)
	return Outcome{Product: attrs, Recommendation: res}, nil
}

func validateRequest(req Request) error {
	if req.URL == "" && req.Product == nil {
		return &validation.Error{Fields: []validation.FieldError{{
			Field: "url", Tag: "required_without", Message: "url or product is required",
		}}}
	}
	if err := validation.Struct(req); err != nil {
		return err
	}
	if req.Product != nil && strings.TrimSpace(req.Product.Error) == "" {
		return validation.Struct(req.Product)
	}
	return nil
}

// product resolves the product payload. Scraper failures become a product
// carrying an error, which the engine reports as an upstream failure.
func (s *Service) product(ctx context.Context, req Request) sizing.ProductAttributes {
	if req.Product != nil {
		attrs := *req.Product
		if attrs.ProductURL == "" {
			attrs.ProductURL = req.URL
		}
		return attrs
	}
	if s.Products == nil {
		return sizing.ProductAttributes{ProductURL: req.URL, Error: "product scraper not configured"}
	}
	attrs, err := s.Products.Fetch(ctx, req.URL)
	if err != nil {
		return sizing.ProductAttributes{ProductURL: req.URL, Error: err.Error()}
	}
	return attrs
}

// withProfileReference adds the garment recorded on the profile itself,
// unless the user already listed it.
func withProfileReference(refs []sizing.ReferenceGarment, p sizing.Profile) []sizing.ReferenceGarment {
	brand, label := strings.TrimSpace(p.ReferenceBrand), strings.TrimSpace(p.ReferenceSize)
	if brand == "" || label == "" {
		return refs
	}
	for _, r := range refs {
		if sizing.NormalizeBrand(r.Brand) == sizing.NormalizeBrand(brand) && strings.EqualFold(r.SizeLabel, label) {
			return refs
		}
	}
	return append(append([]sizing.ReferenceGarment(nil), refs...), sizing.ReferenceGarment{Brand: brand, SizeLabel: label})
}

func (s *Service) observe(ctx context.Context, userID string, in sizing.Input, res sizing.Result, took time.Duration) {
	outcome := "ok"
	if res.Failure != nil {
		outcome = string(res.Failure.Kind)
	}
	category := string(res.Category)
	if category == "" {
		category = "unknown"
	}
	gender := ""
	if in.Profile != nil {
		gender = string(sizing.NormalizeGender(string(in.Profile.Gender)))
	}
	metrics.ObserveRecommendation(outcome, category, took, res.IsFallback, gender)

	fingerprint, err := util.Fingerprint(in)
	if err != nil {
		fingerprint = "unavailable"
	}
	telemetry.Ctx(ctx).Info().
		Str("user", util.HashUserKey(userID)).
		Str("input", fingerprint).
		Str("brand", in.Product.Brand).
		Str("outcome", outcome).
		Str("size", res.RecommendedSize).
		Int("confidence", res.Confidence).
		Bool("fallback", res.IsFallback).
		Dur("took", took).
		Msg("recommendation.computed")
}
