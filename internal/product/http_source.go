package product

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"fitable-backend/internal/shared/metrics"
	"fitable-backend/internal/shared/telemetry"
	"fitable-backend/internal/sizing"
)

const (
	breakerName     = "product-scraper"
	maxResponseSize = 1 << 20
	defaultTimeout  = 30 * time.Second
)

// errRejected is a 4xx from the scraper: the request was bad, the scraper is healthy.
var errRejected = errors.New("scraper rejected request")

// HTTPSource calls the scraper's POST /scrape endpoint.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	cb      *gobreaker.CircuitBreaker[sizing.ProductAttributes]
}

// BreakerSettings tunes the circuit breaker around scraper calls.
type BreakerSettings struct {
	// ConsecutiveFailures opens the circuit.
	ConsecutiveFailures uint32
	// OpenFor is how long the circuit stays open before a trial request.
	OpenFor time.Duration
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{ConsecutiveFailures: 5, OpenFor: 30 * time.Second}
}

// NewHTTPSource returns a scraper client for baseURL.
func NewHTTPSource(baseURL string, timeout time.Duration, bs BreakerSettings) *HTTPSource {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if bs.ConsecutiveFailures == 0 {
		bs.ConsecutiveFailures = DefaultBreakerSettings().ConsecutiveFailures
	}
	metrics.ScraperBreakerState.Set(0)
	cb := gobreaker.NewCircuitBreaker[sizing.ProductAttributes](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     bs.OpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errRejected) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			telemetry.Warn("scraper.breaker", map[string]any{"from": from.String(), "to": to.String()})
			metrics.ScraperBreakerState.Set(stateValue(to))
		},
	})
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		cb:      cb,
	}
}

func (s *HTTPSource) Fetch(ctx context.Context, url string) (sizing.ProductAttributes, error) {
	attrs, err := s.cb.Execute(func() (sizing.ProductAttributes, error) {
		return s.scrape(ctx, url)
	})
	switch {
	case err == nil:
		metrics.ScraperRequestsTotal.WithLabelValues("ok").Inc()
		return attrs, nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.ScraperRequestsTotal.WithLabelValues("rejected").Inc()
	default:
		metrics.ScraperRequestsTotal.WithLabelValues("error").Inc()
	}
	telemetry.Ctx(ctx).Warn().Err(err).Str("url", url).Msg("scraper.fetch_failed")
	return sizing.ProductAttributes{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func (s *HTTPSource) scrape(ctx context.Context, url string) (sizing.ProductAttributes, error) {
	body, err := json.Marshal(map[string]string{"url": url})
	if err != nil {
		return sizing.ProductAttributes{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/scrape", bytes.NewReader(body))
	if err != nil {
		return sizing.ProductAttributes{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := telemetry.RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return sizing.ProductAttributes{}, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return sizing.ProductAttributes{}, err
	}
	switch {
	case resp.StatusCode >= 500:
		return sizing.ProductAttributes{}, fmt.Errorf("scraper status %d", resp.StatusCode)
	case resp.StatusCode >= 400:
		return sizing.ProductAttributes{}, fmt.Errorf("%w: status %d", errRejected, resp.StatusCode)
	}

	var attrs sizing.ProductAttributes
	if err := json.Unmarshal(payload, &attrs); err != nil {
		return sizing.ProductAttributes{}, fmt.Errorf("decode scraper response: %w", err)
	}
	if attrs.ProductURL == "" {
		attrs.ProductURL = url
	}
	return attrs, nil
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
