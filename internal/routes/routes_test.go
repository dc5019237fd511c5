package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/c14220110/poliklinik-triage/config"
	"github.com/c14220110/poliklinik-triage/internal/common/metrics"
	"github.com/c14220110/poliklinik-triage/internal/triage/services"
)

var secret = []byte("routes-secret")

func newTestApp(t *testing.T) *echo.Echo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		TokenTTL: time.Hour,
		StaffAccounts: []config.StaffAccount{
			{Username: "rina", Role: "reception", PasswordHash: string(hash)},
			{Username: "drbudi", Role: "doctor", PasswordHash: string(hash)},
		},
	}
	reg := prometheus.NewRegistry()
	triage := services.NewTriageService(
		services.NewRegistry([]string{"Cardiology", "Neurology"}, 50, 1001),
		services.NewHistoryLog(),
		services.WithMetrics(metrics.NewTriageMetrics(reg)),
	)

	e := echo.New()
	Init(e, Deps{
		Config:    cfg,
		JWTSecret: secret,
		Triage:    triage,
		Gatherer:  reg,
		Logger:    zerolog.Nop(),
	})
	return e
}

func call(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func loginAs(t *testing.T, e *echo.Echo, username string) string {
	t.Helper()
	rec := call(e, http.MethodPost, "/api/auth/login", "", `{"username":"`+username+`","password":"rahasia"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Data.Token
}

func TestInit_ReceptionAndDoctorFlow(t *testing.T) {
	e := newTestApp(t)
	reception := loginAs(t, e, "rina")
	doctor := loginAs(t, e, "drbudi")

	rec := call(e, http.MethodPost, "/api/clinics/1/patients", reception, `{"name":"Sari","age":61,"priority":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	// Pasien bisa cek posisi tanpa login
	rec = call(e, http.MethodGet, "/api/patients/1001/position", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = call(e, http.MethodPost, "/api/clinics/1/call", doctor, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Sari"`)

	rec = call(e, http.MethodGet, "/api/history", reception, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"clinic":"Neurology"`)
}

func TestInit_RoleEnforcement(t *testing.T) {
	e := newTestApp(t)
	reception := loginAs(t, e, "rina")
	doctor := loginAs(t, e, "drbudi")

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       string
		wantStatus int
	}{
		{"admit without token", http.MethodPost, "/api/clinics/0/patients", "", `{"name":"A","age":1,"priority":3}`, http.StatusUnauthorized},
		{"doctor cannot admit", http.MethodPost, "/api/clinics/0/patients", doctor, `{"name":"A","age":1,"priority":3}`, http.StatusForbidden},
		{"reception cannot call", http.MethodPost, "/api/clinics/0/call", reception, "", http.StatusForbidden},
		{"reception cannot skip", http.MethodPost, "/api/clinics/0/skip", reception, "", http.StatusForbidden},
		{"queues need login", http.MethodGet, "/api/queues", "", "", http.StatusUnauthorized},
		{"status for staff", http.MethodGet, "/api/clinics/0/status", doctor, "", http.StatusOK},
		{"public clinic list", http.MethodGet, "/api/clinics", "", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
		})
	}
}

func TestInit_HealthAndMetrics(t *testing.T) {
	e := newTestApp(t)

	rec := call(e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	reception := loginAs(t, e, "rina")
	call(e, http.MethodPost, "/api/clinics/0/patients", reception, `{"name":"Tono","age":40,"priority":2}`)

	rec = call(e, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "poliklinik_triage_admissions_total")
}
