package references

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(repo Repo, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("isGuest", strings.HasPrefix(userID, "guest:"))
		c.Next()
	})
	NewHandler(NewService(repo)).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postReference(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/references", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestReferenceLifecycle(t *testing.T) {
	repo := NewMemoryRepo()
	router := newTestRouter(repo, "user-1")

	resp := postReference(t, router, `{"brand":" Zara ","sizeLabel":"M","category":"TOP"}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created Reference
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == "" || created.Brand != "Zara" || created.Category != "top" || created.UserID != "user-1" {
		t.Fatalf("unexpected reference %+v", created)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/references", nil))
	var list struct {
		Items []Reference `json:"items"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].ID != created.ID {
		t.Fatalf("unexpected list %+v", list.Items)
	}

	other := newTestRouter(repo, "user-2")
	resp = httptest.NewRecorder()
	other.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/references/"+created.ID, nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("another user must not delete the reference, got %d", resp.Code)
	}

	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/references/"+created.ID, nil))
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/api/v1/references/"+created.ID, nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", resp.Code)
	}
}

func TestCreateReferenceValidation(t *testing.T) {
	router := newTestRouter(NewMemoryRepo(), "user-1")
	cases := map[string]string{
		"missing brand": `{"sizeLabel":"M"}`,
		"missing size":  `{"brand":"Zara","sizeLabel":"   "}`,
		"bad category":  `{"brand":"Zara","sizeLabel":"M","category":"shoes"}`,
		"bad json":      `{"brand":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := postReference(t, router, body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
			}
		})
	}
}

func TestCreateReferenceLimit(t *testing.T) {
	router := newTestRouter(NewMemoryRepo(), "user-1")
	for i := 0; i < MaxPerUser; i++ {
		if resp := postReference(t, router, `{"brand":"Zara","sizeLabel":"M"}`); resp.Code != http.StatusCreated {
			t.Fatalf("create %d: expected 201, got %d", i, resp.Code)
		}
	}
	if resp := postReference(t, router, `{"brand":"Zara","sizeLabel":"L"}`); resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 past the limit, got %d", resp.Code)
	}
}
