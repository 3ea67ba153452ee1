package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sukkarlab/sweetshop-backend/pkg/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "router-test-secret", Issuer: "sweetshop", ExpirationMinutes: 60},
	}
}

func TestRouterHealthLive(t *testing.T) {
	router := NewRouter(testConfig(), nil, nil, nil, nil, nil, Services{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", w.Code)
	}
	if got := w.Header().Get("X-Sweetshop-Env"); got != "test" {
		t.Fatalf("expected env header test but got %q", got)
	}
}

func TestRouterAdminRequiresToken(t *testing.T) {
	router := NewRouter(testConfig(), nil, nil, nil, nil, nil, Services{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 but got %d", w.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := NewRouter(testConfig(), nil, nil, nil, nil, nil, Services{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 but got %d", w.Code)
	}
}
