package routes

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/c14220110/poliklinik-triage/config"
	"github.com/c14220110/poliklinik-triage/internal/common/middlewares"
	"github.com/c14220110/poliklinik-triage/internal/triage/controllers"
	triageRoutes "github.com/c14220110/poliklinik-triage/internal/triage/routes"
	"github.com/c14220110/poliklinik-triage/internal/triage/services"
	"github.com/c14220110/poliklinik-triage/ws"
)

// Deps adalah dependensi yang dibutuhkan Init.
type Deps struct {
	Config    *config.Config
	JWTSecret []byte
	Triage    *services.TriageService
	Hub       *ws.Hub
	Gatherer  prometheus.Gatherer
	Logger    zerolog.Logger
}

// Init menginisialisasi semua routes menggunakan Echo framework
func Init(e *echo.Echo, d Deps) {
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middlewares.RequestLogger(d.Logger))
	e.Use(middlewares.Recovery(d.Logger))
	e.Use(echomw.CORS())

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "ok"})
	})
	if d.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}
	if d.Hub != nil {
		e.GET("/ws", ws.ServeWS(d.Hub))
	}

	// Inisialisasi controller
	antrianController := controllers.NewAntrianController(d.Triage)
	authController := controllers.NewAuthController(d.Config.StaffAccounts, d.JWTSecret, d.Config.TokenTTL)

	// Grup API utama
	api := e.Group("/api")
	triageRoutes.RegisterTriageRoutes(api, antrianController, authController, d.JWTSecret)
}
