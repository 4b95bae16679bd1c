package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RecommendationsTotal counts recommendation requests by outcome: "ok" or a failure kind.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitable_recommendations_total",
			Help: "Size recommendations computed, by outcome",
		},
		[]string{"outcome", "category"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fitable_recommendation_duration_seconds",
			Help:    "Time spent in the size engine",
			Buckets: []float64{.0005, .001, .0025, .005, .01, .025, .05, .1},
		},
	)

	FallbackChartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitable_fallback_charts_total",
			Help: "Recommendations that used the universal chart because the brand had none",
		},
		[]string{"gender", "category"},
	)

	ScraperRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitable_scraper_requests_total",
			Help: "Product scraper calls, by result",
		},
		[]string{"result"},
	)

	// ScraperBreakerState is 0 closed, 1 half-open, 2 open.
	ScraperBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fitable_scraper_breaker_state",
			Help: "Circuit breaker state of the product scraper client",
		},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fitable_rate_limited_total",
			Help: "Requests rejected with 429, by rate limit group",
		},
		[]string{"group"},
	)

	PanicsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fitable_http_panics_total",
			Help: "Handler panics recovered by the server",
		},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fitable_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveRecommendation records one engine run.
func ObserveRecommendation(outcome, category string, took time.Duration, fallback bool, gender string) {
	RecommendationsTotal.WithLabelValues(outcome, category).Inc()
	RecommendationDuration.Observe(took.Seconds())
	if fallback {
		FallbackChartsTotal.WithLabelValues(gender, category).Inc()
	}
}

// Handler exposes the default registry in Prometheus text format.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
