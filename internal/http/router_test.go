package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/hearth/internal/http/auth"
	"github.com/MrJamesThe3rd/hearth/internal/http/budget"
	"github.com/MrJamesThe3rd/hearth/internal/http/family"
	"github.com/MrJamesThe3rd/hearth/internal/identity"
	"github.com/MrJamesThe3rd/hearth/internal/metrics"
)

func newTestRouter() http.Handler {
	return New(Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		Tokens:         identity.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour),
		Metrics:        metrics.New(),
	}, auth.NewHandler(nil), family.NewHandler(nil, nil), budget.NewHandler(nil))
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{"/api/v1/profile", "/api/v1/group/members", "/api/v1/categories", "/api/v1/goals"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestRouter_Metrics(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/profile", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_AuthRequiresJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("alice"))
	req.Header.Set("Content-Type", "text/plain")

	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}
