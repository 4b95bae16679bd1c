package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveRecommendationCountsFallback(t *testing.T) {
	before := testutil.ToFloat64(FallbackChartsTotal.WithLabelValues("female", "bottom"))
	ObserveRecommendation("ok", "bottom", 2*time.Millisecond, true, "female")
	ObserveRecommendation("ok", "bottom", time.Millisecond, false, "female")
	after := testutil.ToFloat64(FallbackChartsTotal.WithLabelValues("female", "bottom"))
	if after-before != 1 {
		t.Fatalf("expected one fallback, got %v", after-before)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ObserveRecommendation("NON_CLOTHING_PRODUCT", "", time.Millisecond, false, "")

	r := gin.New()
	r.GET("/metrics", Handler())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "fitable_recommendations_total") {
		t.Fatalf("missing recommendation counter in output")
	}
}
