package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/poliklinik-triage/internal/triage/models"
	"github.com/c14220110/poliklinik-triage/internal/triage/services"
)

type AntrianController struct {
	Service *services.TriageService
}

func NewAntrianController(service *services.TriageService) *AntrianController {
	return &AntrianController{Service: service}
}

func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, map[string]interface{}{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// statusFor memetakan error service ke kode HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidClinic), errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrQueueFull),
		errors.Is(err, services.ErrAllEmpty),
		errors.Is(err, services.ErrNothingToSkip):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidName),
		errors.Is(err, models.ErrInvalidAge),
		errors.Is(err, models.ErrInvalidPriority):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func clinicParam(c echo.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}

// GetClinicsHandler mengembalikan daftar poliklinik.
func (ac *AntrianController) GetClinicsHandler(c echo.Context) error {
	return respond(c, http.StatusOK, "Clinics retrieved successfully", ac.Service.Clinics())
}

// GetClinicStatusHandler mengembalikan jumlah pasien per antrian prioritas.
func (ac *AntrianController) GetClinicStatusHandler(c echo.Context) error {
	idx, err := clinicParam(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "clinic id must be a number", nil)
	}
	status, err := ac.Service.ClinicStatus(idx)
	if err != nil {
		return respond(c, statusFor(err), err.Error(), nil)
	}
	return respond(c, http.StatusOK, "Queue status retrieved successfully", status)
}

// RegisterPasienHandler mendaftarkan pasien baru ke antrian poliklinik.
func (ac *AntrianController) RegisterPasienHandler(c echo.Context) error {
	idx, err := clinicParam(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "clinic id must be a number", nil)
	}

	var req models.PatientInput
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request payload", nil)
	}

	p, err := ac.Service.RegisterPatient(c.Request().Context(), idx, req)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, services.ErrQueueFull) {
			msg = "Patient not added. The selected priority queue is full"
		}
		return respond(c, statusFor(err), msg, nil)
	}
	return respond(c, http.StatusCreated, "Patient added", p)
}

// PanggilPasienHandler memanggil pasien berikutnya sesuai prioritas.
func (ac *AntrianController) PanggilPasienHandler(c echo.Context) error {
	idx, err := clinicParam(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "clinic id must be a number", nil)
	}

	entry, err := ac.Service.CallNextPatient(c.Request().Context(), idx)
	if err != nil {
		return respond(c, statusFor(err), err.Error(), nil)
	}
	return respond(c, http.StatusOK, "Calling patient", entry)
}

// LewatiPasienHandler memindahkan pasien terdepan ke belakang kelasnya.
func (ac *AntrianController) LewatiPasienHandler(c echo.Context) error {
	idx, err := clinicParam(c)
	if err != nil {
		return respond(c, http.StatusBadRequest, "clinic id must be a number", nil)
	}

	p, err := ac.Service.SkipPatient(c.Request().Context(), idx)
	if err != nil {
		return respond(c, statusFor(err), err.Error(), nil)
	}
	return respond(c, http.StatusOK, "Patient skipped", p)
}

func (ac *AntrianController) ListAntrianHandler(c echo.Context) error {
	return respond(c, http.StatusOK, "Queues retrieved successfully", ac.Service.ListQueues())
}

func (ac *AntrianController) ListRiwayatHandler(c echo.Context) error {
	return respond(c, http.StatusOK, "Patient history retrieved successfully", ac.Service.ListHistory())
}

// GetPosisiPasienHandler dipakai layar pasien untuk melihat posisi antrian.
func (ac *AntrianController) GetPosisiPasienHandler(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return respond(c, http.StatusBadRequest, "patient id must be a number", nil)
	}

	loc, err := ac.Service.FindPatient(id)
	if err != nil {
		return respond(c, statusFor(err), err.Error(), nil)
	}
	return respond(c, http.StatusOK, "Patient found", loc)
}
