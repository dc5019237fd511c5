package middlewares

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c14220110/poliklinik-triage/pkg/utils"
)

var secret = []byte("test-secret")

func bearer(t *testing.T, role string) string {
	t.Helper()
	token, err := utils.GenerateJWTToken(secret, "petugas", role, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(h echo.HandlerFunc, authHeader string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	e := echo.New()
	e.GET("/", h, mws...)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func okHandler(c echo.Context) error {
	claims, _ := ClaimsFrom(c)
	return c.String(http.StatusOK, claims.Role)
}

func TestJWTMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"valid token", bearer(t, RoleDoctor), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(okHandler, tt.header, JWTMiddleware(secret))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		wantStatus int
	}{
		{"allowed role", RoleReception, http.StatusOK},
		{"admin bypass", RoleAdmin, http.StatusOK},
		{"other role", RoleDoctor, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(okHandler, bearer(t, tt.role), JWTMiddleware(secret), RequireRole(RoleReception))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRequireRole_WithoutClaims(t *testing.T) {
	rec := serve(okHandler, "", RequireRole(RoleReception))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestLoggerAndRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	rec := serve(func(c echo.Context) error {
		panic("boom")
	}, "", RequestLogger(logger), Recovery(logger))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), `"status":500`)
}
