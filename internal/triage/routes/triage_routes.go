package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-triage/internal/common/middlewares"
	"github.com/c14220110/poliklinik-triage/internal/triage/controllers"
)

// RegisterTriageRoutes menghubungkan endpoint antrian triase ke grup /api.
func RegisterTriageRoutes(api *echo.Group, ac *controllers.AntrianController, auth *controllers.AuthController, secret []byte) {
	jwt := middlewares.JWTMiddleware(secret)
	staff := middlewares.RequireRole(middlewares.RoleReception, middlewares.RoleDoctor)
	reception := middlewares.RequireRole(middlewares.RoleReception)
	doctor := middlewares.RequireRole(middlewares.RoleDoctor)

	api.POST("/auth/login", auth.Login) // Tidak pakai JWT

	// Layar pasien, tanpa login
	api.GET("/clinics", ac.GetClinicsHandler)
	api.GET("/patients/:id/position", ac.GetPosisiPasienHandler)

	clinics := api.Group("/clinics/:id", jwt)
	clinics.GET("/status", ac.GetClinicStatusHandler, staff)
	clinics.POST("/patients", ac.RegisterPasienHandler, reception)
	clinics.POST("/call", ac.PanggilPasienHandler, doctor)
	clinics.POST("/skip", ac.LewatiPasienHandler, doctor)

	api.GET("/queues", ac.ListAntrianHandler, jwt, staff)
	api.GET("/history", ac.ListRiwayatHandler, jwt, staff)
}
