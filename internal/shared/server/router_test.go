package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitable-backend/internal/services/health"
	"fitable-backend/internal/shared/auth"
	"fitable-backend/internal/shared/config"
	"fitable-backend/internal/shared/server/middleware"
)

func newTestDeps(t *testing.T, cfg config.Config) *RouterDeps {
	t.Helper()
	tokens, err := auth.NewTokens("test-secret", "test")
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	return &RouterDeps{
		Config:      cfg,
		Tokens:      tokens,
		Health:      health.NewHandler(health.NewService(nil)),
		RateLimiter: middleware.NewRateLimiter(func() time.Time { return now }),
	}
}

func TestHealthIsPublic(t *testing.T) {
	deps := newTestDeps(t, config.Config{})
	r := NewRouter(*deps)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestMeReportsIdentity(t *testing.T) {
	deps := newTestDeps(t, config.Config{})
	r := NewRouter(*deps)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", resp.Code)
	}

	token, err := deps.Tokens.Sign("user-7", "", "")
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var me struct {
		UserID  string `json:"userId"`
		IsGuest bool   `json:"isGuest"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if me.UserID != "user-7" || me.IsGuest {
		t.Fatalf("unexpected identity %+v", me)
	}
}

func TestRateLimitAppliesToAuthenticatedRoutes(t *testing.T) {
	deps := newTestDeps(t, config.Config{RateLimitRPS: 1, RateLimitBurst: 1})
	r := NewRouter(*deps)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
		req.Header.Set("X-Guest-Id", "guest-1")
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		codes = append(codes, resp.Code)
	}
	// READ routes get three times the burst.
	want := []int{200, 200, 200, 429}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("request codes %v, want %v", codes, want)
		}
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Errorf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
