package bootstrap

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fitable-backend/internal/shared/config"
)

const guestID = "6f1c2a9e-4b7d-4c3e-9a51-2f8d0e7b1c44"

func buildApp(t *testing.T) *App {
	t.Helper()
	app, err := Build(context.Background(), config.Config{Env: "test", RateLimitRPS: 100, RateLimitBurst: 100})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.DB != nil {
		t.Fatalf("expected memory storage without DATABASE_URL")
	}
	return app
}

func do(app *App, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	return resp
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	_, err := Build(context.Background(), config.Config{Env: "production", JWTSecret: "secret"})
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("expected DATABASE_URL error, got %v", err)
	}
}

func TestBuildRejectsMissingTablesFile(t *testing.T) {
	_, err := Build(context.Background(), config.Config{Env: "dev", SizingTablesPath: t.TempDir() + "/missing.yaml"})
	if err == nil {
		t.Fatalf("expected an error for a missing tables file")
	}
}

func TestPublicAndProtectedRoutes(t *testing.T) {
	app := buildApp(t)

	if resp := do(app, http.MethodGet, "/api/v1/health", "", nil); resp.Code != http.StatusOK {
		t.Fatalf("health expected 200, got %d", resp.Code)
	}
	if resp := do(app, http.MethodGet, "/metrics", "", nil); resp.Code != http.StatusOK {
		t.Fatalf("metrics expected 200, got %d", resp.Code)
	}
	if resp := do(app, http.MethodGet, "/api/v1/brands", "", nil); resp.Code != http.StatusUnauthorized {
		t.Fatalf("brands without identity expected 401, got %d", resp.Code)
	}

	resp := do(app, http.MethodGet, "/api/v1/brands", "", map[string]string{"X-Guest-Id": guestID})
	if resp.Code != http.StatusOK {
		t.Fatalf("brands expected 200, got %d", resp.Code)
	}
	var brands struct {
		Items []json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &brands); err != nil {
		t.Fatalf("decode brands: %v", err)
	}
	if len(brands.Items) != 4 {
		t.Fatalf("expected the seeded catalog, got %d brands", len(brands.Items))
	}
}

func TestGuestFlowThenClaim(t *testing.T) {
	app := buildApp(t)
	guest := map[string]string{"X-Guest-Id": guestID}

	resp := do(app, http.MethodPut, "/api/v1/measurements",
		`{"gender":"male","heightCm":180,"weightKg":78,"chestCm":100,"waistCm":84}`, guest)
	if resp.Code != http.StatusOK {
		t.Fatalf("save measurements expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = do(app, http.MethodPost, "/api/v1/recommendations",
		`{"product":{"brand":"Zara","product_name":"Oxford Shirt","description":"Regular fit shirt"}}`, guest)
	if resp.Code != http.StatusOK {
		t.Fatalf("recommendation expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var outcome struct {
		Recommendation struct {
			RecommendedSize string `json:"recommended_size"`
			IsFallback      bool   `json:"is_fallback"`
		} `json:"recommendation"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("decode recommendation: %v", err)
	}
	if outcome.Recommendation.RecommendedSize == "" || outcome.Recommendation.IsFallback {
		t.Fatalf("expected a brand-chart recommendation, got %+v", outcome.Recommendation)
	}

	resp = do(app, http.MethodPost, "/api/v1/recommendations",
		`{"url":"https://www.zara.com/p"}`, guest)
	if resp.Code != http.StatusOK || !strings.Contains(resp.Body.String(), "UPSTREAM_PRODUCT_UNAVAILABLE") {
		t.Fatalf("without a scraper a url request reports an upstream failure, got %d: %s", resp.Code, resp.Body.String())
	}

	token, err := app.Tokens.Sign("user-1", "user@example.com", "User")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	signedIn := map[string]string{"Authorization": "Bearer " + token}
	if resp := do(app, http.MethodGet, "/api/v1/measurements", "", signedIn); resp.Code != http.StatusNotFound {
		t.Fatalf("new user has no measurements yet, got %d", resp.Code)
	}

	claim := map[string]string{"Authorization": "Bearer " + token, "X-Guest-Id": guestID}
	resp = do(app, http.MethodPost, "/api/v1/account/claim-guest", "", claim)
	if resp.Code != http.StatusOK {
		t.Fatalf("claim expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if resp := do(app, http.MethodGet, "/api/v1/measurements", "", signedIn); resp.Code != http.StatusOK {
		t.Fatalf("claimed measurements expected 200, got %d", resp.Code)
	}
}
